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

package aggregation

import dbsql "github.com/dolthub/windowq/sql"

// Compute runs the window driver over rows: partition,
// stable-sort each partition by the window definition's ORDER BY,
// instantiate the right aggregator per partition, and return one value
// per row of rows, in rows' original order.
//
// rows is conceptually teed into two passes: the partitioning/sorting
// pass never mutates the slice the caller passed in, and the output
// pass below walks it again to preserve the caller's original order.
func Compute(ctx *dbsql.Context, rows []dbsql.Row, spec FunctionSpec) []dbsql.Value {
	if len(rows) == 0 {
		return nil
	}

	partitions := buildPartitions(rows, spec.Definition)
	logger := ctx.Logger()
	if logger != nil {
		logger.Debugf("aggregation: built %d partition(s) over %d row(s)", len(partitions), len(rows))
	}

	blocks := make(map[*WindowPartition]*block, len(partitions))
	for _, p := range partitions {
		blocks[p] = buildBlock(spec, p)
	}

	results := make([]dbsql.Value, len(rows))
	for i, row := range rows {
		key := partitionKey(row, spec.Definition.PartitionBy)
		partition := partitions[key]
		results[i] = blocks[partition].value(spec, row)
	}
	return results
}
