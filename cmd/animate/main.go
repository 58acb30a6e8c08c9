// Copyright 2022 DoltHub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command animate builds a sum segment tree over a list of leaf values
// and writes a JSON trace of its final structure, one entry per node.
// It stands in for the animation collaborator named informatively in
// the window-aggregation core's external interfaces: instead of an
// animated rendering of the build, it emits the static frame a renderer
// would draw from.
package main

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	dbsql "github.com/dolthub/windowq/sql"
	"github.com/dolthub/windowq/sql/expression/function/aggregation"
)

var (
	outfile string
	fanout  int
	leaves  []int64
)

var rootCmd = &cobra.Command{
	Use:   "animate",
	Short: "Trace a segment-tree build over a list of leaf values",
	Long: `animate builds a sum segment tree over the values given with
repeated --leaf flags and writes a JSON trace of the tree's final
structure to --outfile (or stdout, if omitted).`,
	RunE: runAnimate,
}

func init() {
	rootCmd.Flags().StringVar(&outfile, "outfile", "", "path to write the JSON trace to (default: stdout)")
	rootCmd.Flags().IntVar(&fanout, "fanout", aggregation.DefaultFanout, "segment tree fanout, must be >= 2")
	rootCmd.Flags().Int64SliceVar(&leaves, "leaf", nil, "a leaf value; repeat to supply more than one")
}

func runAnimate(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	if fanout < 2 {
		return dbsql.ErrInvalidFrame.New("fanout must be at least 2")
	}
	if len(leaves) == 0 {
		return dbsql.ErrInvalidFrame.New("at least one --leaf is required")
	}

	leafArgs := make([][]dbsql.Value, len(leaves))
	for i, v := range leaves {
		leafArgs[i] = []dbsql.Value{v}
	}

	log.WithFields(logrus.Fields{"leaves": len(leaves), "fanout": fanout}).Debug("building segment tree")
	tree := aggregation.NewSegmentTree(leafArgs, aggregation.NewSum(), fanout)

	trace := tree.Trace()
	body, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return err
	}

	if outfile == "" {
		_, err = os.Stdout.Write(append(body, '\n'))
		return err
	}
	return os.WriteFile(outfile, append(body, '\n'), 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("animate: command failed")
		os.Exit(1)
	}
}
