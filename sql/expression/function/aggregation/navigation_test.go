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

import (
	"testing"

	dbsql "github.com/dolthub/windowq/sql"
	"github.com/stretchr/testify/require"
)

func vals(xs ...interface{}) []dbsql.Value {
	out := make([]dbsql.Value, len(xs))
	copy(out, xs)
	return out
}

func TestFirstSkipsLeadingNulls(t *testing.T) {
	agg := NewFirst(vals(nil, nil, "b", "c"))
	require.Equal(t, "b", agg.Execute(0, 4))
}

func TestFirstAllNullIsNull(t *testing.T) {
	agg := NewFirst(vals(nil, nil))
	require.Nil(t, agg.Execute(0, 2))
}

func TestLastSkipsTrailingNulls(t *testing.T) {
	agg := NewLast(vals("a", "b", nil, nil))
	require.Equal(t, "b", agg.Execute(0, 4))
}

func TestFirstCachesByRange(t *testing.T) {
	agg := NewFirst(vals("a", "b", "c"))
	require.Equal(t, "a", agg.Execute(0, 3))
	require.Equal(t, "b", agg.Execute(1, 3))
	// same range again hits the cache and returns the same value
	require.Equal(t, "a", agg.Execute(0, 3))
}

func TestNthWithinFrame(t *testing.T) {
	inputs := vals(int64(10), int64(20), int64(30), int64(40))
	offsets := vals(int64(1), int64(1), int64(1), int64(1))
	agg := NewNth(inputs, offsets)
	// frame [0,4), k=1 -> x[1] relative to partition indexing
	require.Equal(t, int64(20), agg.Execute(0, 4))
}

func TestNthWithinBoundedFrameIndexesPartitionNotFrame(t *testing.T) {
	// partition [10,20,30,40,50], first call (cursor 0, where k=1) over
	// frame [1,4): k must index the whole partition, not be offset by
	// the frame's begin.
	inputs := vals(int64(10), int64(20), int64(30), int64(40), int64(50))
	offsets := vals(int64(1), nil, nil, nil, nil)
	agg := NewNth(inputs, offsets)
	require.Equal(t, int64(20), agg.Execute(1, 4))
}

func TestNthNegativeOffsetWrapsWholePartition(t *testing.T) {
	// same fixture, k=-1: Python-style negative indexing wraps against
	// the whole partition's length, not the frame's width.
	inputs := vals(int64(10), int64(20), int64(30), int64(40), int64(50))
	offsets := vals(int64(-1), nil, nil, nil, nil)
	agg := NewNth(inputs, offsets)
	require.Equal(t, int64(50), agg.Execute(1, 4))
}

func TestNthOutOfRangeIsNull(t *testing.T) {
	inputs := vals(int64(10), int64(20))
	offsets := vals(int64(5))
	agg := NewNth(inputs, offsets)
	require.Nil(t, agg.Execute(0, 2))
}

func TestNthCursorAdvancesPerCall(t *testing.T) {
	// each call reads k at its own cursor position: k=0, then 1, then -1
	inputs := vals(int64(1), int64(2), int64(3))
	offsets := vals(int64(0), int64(1), int64(-1))
	agg := NewNth(inputs, offsets)
	require.Equal(t, int64(1), agg.Execute(0, 3))
	require.Equal(t, int64(2), agg.Execute(1, 3))
	require.Equal(t, int64(3), agg.Execute(2, 3))
}

func TestLeadWithinBounds(t *testing.T) {
	inputs := vals(int64(1), int64(2), int64(3), int64(4))
	offsets := vals(int64(1), int64(1), int64(1), int64(1))
	defaults := vals(int64(-1), int64(-1), int64(-1), int64(-1))
	agg := NewLead(inputs, offsets, defaults)
	require.Equal(t, int64(2), agg.Execute(0, 0))
	require.Equal(t, int64(3), agg.Execute(0, 0))
	require.Equal(t, int64(4), agg.Execute(0, 0))
	require.Equal(t, int64(-1), agg.Execute(0, 0))
}

func TestLagWithinBounds(t *testing.T) {
	inputs := vals(int64(1), int64(2), int64(3))
	offsets := vals(int64(1), int64(1), int64(1))
	defaults := vals(nil, nil, nil)
	agg := NewLag(inputs, offsets, defaults)
	require.Nil(t, agg.Execute(0, 0))
	require.Equal(t, int64(1), agg.Execute(0, 0))
	require.Equal(t, int64(2), agg.Execute(0, 0))
}

func TestLeadNullOffsetUsesDefault(t *testing.T) {
	inputs := vals(int64(1), int64(2))
	offsets := vals(nil, nil)
	defaults := vals(int64(99), int64(99))
	agg := NewLead(inputs, offsets, defaults)
	require.Equal(t, int64(99), agg.Execute(0, 0))
}
