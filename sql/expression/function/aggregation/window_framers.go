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

// Named framer constructors for the frame shapes a SQL OVER clause
// commonly spells out. Each is a thin convenience wrapper building the
// general-purpose FrameResolver with the right Preceding/Following
// DeltaFuncs; none of these carry state of their own beyond the
// general resolver's pure per-row Frame computation.

// NewPartitionFramer returns a resolver whose frame is always the whole
// partition, used for aggregates with no explicit window frame.
func NewPartitionFramer(def dbsql.WindowDefinition) FrameResolver {
	resolver, _ := NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RowsMode,
		Definition: def,
	})
	return resolver
}

// NewRowsUnboundedPrecedingToCurrentRowFramer returns ROWS BETWEEN
// UNBOUNDED PRECEDING AND CURRENT ROW: the running frame.
func NewRowsUnboundedPrecedingToCurrentRowFramer(def dbsql.WindowDefinition) FrameResolver {
	resolver, _ := NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RowsMode,
		Definition: def,
		Following:  dbsql.ConstantRows(0),
	})
	return resolver
}

// NewRowsNPrecedingToNFollowingFramer returns ROWS BETWEEN N PRECEDING
// AND M FOLLOWING.
func NewRowsNPrecedingToNFollowingFramer(def dbsql.WindowDefinition, preceding, following int64) FrameResolver {
	resolver, _ := NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RowsMode,
		Definition: def,
		Preceding:  dbsql.ConstantRows(preceding),
		Following:  dbsql.ConstantRows(following),
	})
	return resolver
}

// NewRowsCurrentRowToCurrentRowFramer returns ROWS BETWEEN CURRENT ROW
// AND CURRENT ROW: each row is its own frame.
func NewRowsCurrentRowToCurrentRowFramer(def dbsql.WindowDefinition) FrameResolver {
	resolver, _ := NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RowsMode,
		Definition: def,
		Preceding:  dbsql.ConstantRows(0),
		Following:  dbsql.ConstantRows(0),
	})
	return resolver
}

// NewRangeUnboundedPrecedingToCurrentRowFramer returns RANGE BETWEEN
// UNBOUNDED PRECEDING AND CURRENT ROW over the single ORDER BY column in
// def. It returns an error if def does not carry exactly one order
// column.
func NewRangeUnboundedPrecedingToCurrentRowFramer(def dbsql.WindowDefinition) (FrameResolver, error) {
	return NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RangeMode,
		Definition: def,
		Following:  dbsql.ConstantRows(0),
	})
}

// NewRangeNPrecedingToNFollowingFramer returns RANGE BETWEEN N
// PRECEDING AND M FOLLOWING over the single ORDER BY column in def.
func NewRangeNPrecedingToNFollowingFramer(def dbsql.WindowDefinition, preceding, following dbsql.Value) (FrameResolver, error) {
	return NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RangeMode,
		Definition: def,
		Preceding:  func(dbsql.Row) (dbsql.Value, bool) { return preceding, true },
		Following:  func(dbsql.Row) (dbsql.Value, bool) { return following, true },
	})
}
