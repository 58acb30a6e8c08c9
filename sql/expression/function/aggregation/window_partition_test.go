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

func TestBuildPartitionsGroupsByKey(t *testing.T) {
	rows := rowsFixture()
	def := dbsql.WindowDefinition{
		PartitionBy: []dbsql.Getter{dbsql.ColumnGetter("z")},
		OrderBy:     dbsql.SortFields{{Column: dbsql.ColumnGetter("e")}},
	}
	partitions := buildPartitions(rows, def)
	require.Len(t, partitions, 2)

	var aLen, bLen int
	for key, p := range partitions {
		_ = key
		switch p.Rows[0].Get("z") {
		case "a":
			aLen = len(p.Rows)
		case "b":
			bLen = len(p.Rows)
		}
	}
	require.Equal(t, 4, aLen)
	require.Equal(t, 3, bLen)
}

func TestBuildPartitionsSortsStably(t *testing.T) {
	mk := func(e int64) dbsql.Row { return dbsql.NewRow(map[string]dbsql.Value{"e": e}) }
	rows := []dbsql.Row{mk(3), mk(1), mk(2), mk(1)}
	def := dbsql.WindowDefinition{OrderBy: dbsql.SortFields{{Column: dbsql.ColumnGetter("e")}}}
	partitions := buildPartitions(rows, def)
	require.Len(t, partitions, 1)
	for _, p := range partitions {
		var es []int64
		for _, r := range p.Rows {
			es = append(es, r.Get("e").(int64))
		}
		require.Equal(t, []int64{1, 1, 2, 3}, es)
		// the two e=1 rows must keep their original relative order
		require.True(t, p.Rows[0].ID() == rows[1].ID())
		require.True(t, p.Rows[1].ID() == rows[3].ID())
	}
}

func TestBuildPartitionsNullsFirstVsLast(t *testing.T) {
	mk := func(v dbsql.Value) dbsql.Row { return dbsql.NewRow(map[string]dbsql.Value{"v": v}) }
	rows := []dbsql.Row{mk(int64(2)), mk(nil), mk(int64(1))}

	last := buildPartitions(rows, dbsql.WindowDefinition{
		OrderBy: dbsql.SortFields{{Column: dbsql.ColumnGetter("v"), Nulls: dbsql.NullsLast}},
	})
	first := buildPartitions(rows, dbsql.WindowDefinition{
		OrderBy: dbsql.SortFields{{Column: dbsql.ColumnGetter("v"), Nulls: dbsql.NullsFirst}},
	})

	for _, p := range last {
		require.Nil(t, p.Rows[2].Get("v"))
	}
	for _, p := range first {
		require.Nil(t, p.Rows[0].Get("v"))
	}
}

func TestBuildPartitionsDescendingOrder(t *testing.T) {
	mk := func(e int64) dbsql.Row { return dbsql.NewRow(map[string]dbsql.Value{"e": e}) }
	rows := []dbsql.Row{mk(1), mk(3), mk(2)}
	def := dbsql.WindowDefinition{
		OrderBy: dbsql.SortFields{{Column: dbsql.ColumnGetter("e"), Order: dbsql.Descending}},
	}
	partitions := buildPartitions(rows, def)
	for _, p := range partitions {
		var es []int64
		for _, r := range p.Rows {
			es = append(es, r.Get("e").(int64))
		}
		require.Equal(t, []int64{3, 2, 1}, es)
	}
}
