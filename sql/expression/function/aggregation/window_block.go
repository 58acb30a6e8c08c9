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

// AggregateKind selects which of the three evaluation strategies a
// FunctionSpec's aggregate is computed through.
type AggregateKind int

const (
	// AssociativeAggregateKind is evaluated through a segment tree.
	AssociativeAggregateKind AggregateKind = iota
	// NavigationAggregateKind is evaluated through a NavigationAggregator
	// (first/last/nth/lead/lag).
	NavigationAggregateKind
	// RankingAggregateKind is evaluated through a RankingAggregator
	// (row_number/rank/dense_rank).
	RankingAggregateKind
)

// FunctionSpec fully describes one window function evaluation: its
// frame, its partition/order keys, and which of the three aggregator
// kinds to build.
type FunctionSpec struct {
	Definition dbsql.WindowDefinition
	Frame      FrameResolver
	Kind       AggregateKind
	Args       []dbsql.Getter

	// AssociativeFactory and Fanout are used when Kind ==
	// AssociativeAggregateKind.
	AssociativeFactory AggregateFactory
	Fanout             int

	// NewNavigation is used when Kind == NavigationAggregateKind. It
	// receives one input column per entry in Args, each the length of
	// the partition, in Args order.
	NewNavigation func(argColumns [][]dbsql.Value) NavigationAggregator

	// NewRanking is used when Kind == RankingAggregateKind. It receives
	// one order-key tuple per partition row, built from Definition.OrderBy.
	NewRanking func(orderKeys [][]dbsql.Value) RankingAggregator
}

// block is a built partition paired with the aggregator queries against
// it resolve to, plus for cursor-driven aggregators the sorted-order
// results precomputed up front to satisfy the "execute once per row in
// sorted order" invariant navigation and ranking aggregators rely on.
type block struct {
	partition *WindowPartition
	tree      *SegmentTree
	sorted    []dbsql.Value // precomputed results, indexed by sorted position
}

func buildBlock(spec FunctionSpec, partition *WindowPartition) *block {
	b := &block{partition: partition}
	n := len(partition.Rows)

	switch spec.Kind {
	case AssociativeAggregateKind:
		leafArgs := make([][]dbsql.Value, n)
		for i, row := range partition.Rows {
			args := make([]dbsql.Value, len(spec.Args))
			for j, getter := range spec.Args {
				args[j] = getter(row)
			}
			leafArgs[i] = args
		}
		fanout := spec.Fanout
		if fanout == 0 {
			fanout = DefaultFanout
		}
		b.tree = NewSegmentTree(leafArgs, spec.AssociativeFactory, fanout)

	case NavigationAggregateKind:
		columns := make([][]dbsql.Value, len(spec.Args))
		for j, getter := range spec.Args {
			col := make([]dbsql.Value, n)
			for i, row := range partition.Rows {
				col[i] = getter(row)
			}
			columns[j] = col
		}
		nav := spec.NewNavigation(columns)
		b.sorted = make([]dbsql.Value, n)
		for i := range partition.Rows {
			interval := spec.Frame.Frame(partition.Rows, i)
			b.sorted[i] = nav.Execute(interval.Start, interval.End)
		}

	case RankingAggregateKind:
		keys := make([][]dbsql.Value, n)
		for i, row := range partition.Rows {
			tuple := make([]dbsql.Value, len(spec.Definition.OrderBy))
			for j, field := range spec.Definition.OrderBy {
				tuple[j] = field.Column(row)
			}
			keys[i] = tuple
		}
		rank := spec.NewRanking(keys)
		b.sorted = make([]dbsql.Value, n)
		for i := range partition.Rows {
			interval := spec.Frame.Frame(partition.Rows, i)
			b.sorted[i] = rank.Execute(interval.Start, interval.End)
		}
	}
	return b
}

// value returns the precomputed or queried result for row, which must
// be a member of this block's partition.
func (b *block) value(spec FunctionSpec, row dbsql.Row) dbsql.Value {
	i := b.partition.IndexOf(row)
	if b.tree != nil {
		interval := spec.Frame.Frame(b.partition.Rows, i)
		return b.tree.Query(interval.Start, interval.End)
	}
	return b.sorted[i]
}
