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
	"time"

	dbsql "github.com/dolthub/windowq/sql"
	"github.com/stretchr/testify/require"
)

// rowsFixture is a seven-row fixture: z in {a,a,a,a,b,b,b}, values a and
// order key e.
func rowsFixture() []dbsql.Row {
	mk := func(z string, a, e int64) dbsql.Row {
		return dbsql.NewRow(map[string]dbsql.Value{"z": z, "a": a, "e": e})
	}
	return []dbsql.Row{
		mk("a", 1, 1),
		mk("b", 2, 2),
		mk("a", 3, 3),
		mk("a", 4, 4),
		mk("a", 1, 5),
		mk("b", 2, 6),
		mk("b", 3, 7),
	}
}

func TestWindowSumRowsPrecedingTwoFollowingZero(t *testing.T) {
	rows := rowsFixture()
	def := dbsql.WindowDefinition{
		PartitionBy: []dbsql.Getter{dbsql.ColumnGetter("z")},
		OrderBy:     dbsql.SortFields{{Column: dbsql.ColumnGetter("e")}},
	}
	frame, err := NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RowsMode,
		Definition: def,
		Preceding:  dbsql.ConstantRows(2),
		Following:  dbsql.ConstantRows(0),
	})
	require.NoError(t, err)

	fn := NewSumFunction(def, frame, dbsql.ColumnGetter("a"))
	got := fn.Eval(dbsql.NewEmptyContext(), rows)

	// original row order: z=a e=1, z=b e=2, z=a e=3, z=a e=4, z=a e=5, z=b e=6, z=b e=7
	require.Equal(t, []dbsql.Value{int64(1), int64(2), int64(4), int64(8), int64(8), int64(4), int64(7)}, got)
}

func aliceRows() []dbsql.Row {
	date := func(day int) time.Time { return time.Date(2018, time.January, day, 0, 0, 0, 0, time.UTC) }
	mk := func(balance int64, day int) dbsql.Row {
		return dbsql.NewRow(map[string]dbsql.Value{"name": "alice", "balance": balance, "when": date(day)})
	}
	return []dbsql.Row{mk(2, 1), mk(4, 4), mk(-3, 6), mk(-3, 7)}
}

func TestWindowMeanRangeThreeDaysPreceding(t *testing.T) {
	rows := aliceRows()
	def := dbsql.WindowDefinition{
		PartitionBy: []dbsql.Getter{dbsql.ColumnGetter("name")},
		OrderBy:     dbsql.SortFields{{Column: dbsql.ColumnGetter("when")}},
	}
	frame, err := NewFrameResolver(dbsql.FrameSpec{
		Mode:       dbsql.RangeMode,
		Definition: def,
		Preceding:  func(dbsql.Row) (dbsql.Value, bool) { return 3 * 24 * time.Hour, true },
		Following:  dbsql.ConstantRows(0),
	})
	require.NoError(t, err)

	fn := NewMeanFunction(def, frame, dbsql.ColumnGetter("balance"))
	got := fn.Eval(dbsql.NewEmptyContext(), rows)

	want := []float64{2.0, 3.0, 0.5, -0.6666666666666666}
	require.Len(t, got, len(want))
	for i, w := range want {
		require.InDelta(t, w, got[i].(float64), 1e-9)
	}
}

func TestWindowNthOverAliceDates(t *testing.T) {
	rows := aliceRows()
	def := dbsql.WindowDefinition{
		PartitionBy: []dbsql.Getter{dbsql.ColumnGetter("name")},
		OrderBy:     dbsql.SortFields{{Column: dbsql.ColumnGetter("when")}},
	}
	frame := NewPartitionFramer(def)

	kOne := dbsql.ColumnGetter("k1")
	rowsK1 := withConstantColumn(rows, "k1", int64(1))
	fn := NewNthFunction(def, frame, dbsql.ColumnGetter("when"), kOne)
	got := fn.Eval(dbsql.NewEmptyContext(), rowsK1)
	want := time.Date(2018, time.January, 4, 0, 0, 0, 0, time.UTC)
	for _, v := range got {
		require.Equal(t, want, v)
	}

	rowsKBig := withConstantColumn(rows, "k1", int64(4000))
	got2 := fn.Eval(dbsql.NewEmptyContext(), rowsKBig)
	for _, v := range got2 {
		require.Nil(t, v)
	}
}

func withConstantColumn(rows []dbsql.Row, column string, value dbsql.Value) []dbsql.Row {
	out := make([]dbsql.Row, len(rows))
	for i, r := range rows {
		values := map[string]dbsql.Value{column: value}
		for _, c := range []string{"name", "balance", "when"} {
			values[c] = r.Get(c)
		}
		out[i] = dbsql.NewRowWithID(r.ID(), values)
	}
	return out
}

func TestWindowLeadLagOverAliceDates(t *testing.T) {
	rows := withConstantColumn(aliceRows(), "offset", int64(1))
	def := dbsql.WindowDefinition{
		PartitionBy: []dbsql.Getter{dbsql.ColumnGetter("name")},
		OrderBy:     dbsql.SortFields{{Column: dbsql.ColumnGetter("when")}},
	}
	frame := NewPartitionFramer(def)
	dflt := func(dbsql.Row) dbsql.Value { return nil }

	leadFn := NewLeadFunction(def, frame, dbsql.ColumnGetter("when"), dbsql.ColumnGetter("offset"), dflt)
	lagFn := NewLagFunction(def, frame, dbsql.ColumnGetter("when"), dbsql.ColumnGetter("offset"), dflt)

	lead := leadFn.Eval(dbsql.NewEmptyContext(), rows)
	lag := lagFn.Eval(dbsql.NewEmptyContext(), rows)

	date := func(day int) time.Time { return time.Date(2018, time.January, day, 0, 0, 0, 0, time.UTC) }
	require.Equal(t, []dbsql.Value{date(4), date(6), date(7), nil}, lead)
	require.Equal(t, []dbsql.Value{nil, date(1), date(4), date(6)}, lag)
}

func TestWindowRankOverNames(t *testing.T) {
	mk := func(name string) dbsql.Row { return dbsql.NewRow(map[string]dbsql.Value{"name": name}) }
	rows := []dbsql.Row{
		mk("apple"), mk("apple"), mk("grapes"), mk("grapes"), mk("orange"), mk("watermelon"),
	}
	def := dbsql.WindowDefinition{OrderBy: dbsql.SortFields{{Column: dbsql.ColumnGetter("name")}}}
	frame := NewPartitionFramer(def)

	rank := NewRankFunction(def, frame).Eval(dbsql.NewEmptyContext(), rows)
	dense := NewDenseRankFunction(def, frame).Eval(dbsql.NewEmptyContext(), rows)

	require.Equal(t, []dbsql.Value{int64(0), int64(0), int64(2), int64(2), int64(4), int64(5)}, rank)
	require.Equal(t, []dbsql.Value{int64(0), int64(0), int64(1), int64(1), int64(2), int64(3)}, dense)
}

func TestWindowDuplicateRowsResolvedByIdentity(t *testing.T) {
	// Two rows with identical column values must still be told apart by
	// the driver's identity-based position lookup.
	a := dbsql.NewRow(map[string]dbsql.Value{"g": "x", "v": int64(1)})
	b := dbsql.NewRow(map[string]dbsql.Value{"g": "x", "v": int64(1)})
	rows := []dbsql.Row{a, b}

	def := dbsql.WindowDefinition{
		PartitionBy: []dbsql.Getter{dbsql.ColumnGetter("g")},
		OrderBy:     dbsql.SortFields{{Column: dbsql.ColumnGetter("v")}},
	}
	frame := NewRowsUnboundedPrecedingToCurrentRowFramer(def)
	fn := NewSumFunction(def, frame, dbsql.ColumnGetter("v"))
	got := fn.Eval(dbsql.NewEmptyContext(), rows)
	require.Equal(t, []dbsql.Value{int64(1), int64(2)}, got)
}

func TestWindowEmptyInput(t *testing.T) {
	def := dbsql.WindowDefinition{}
	frame := NewPartitionFramer(def)
	fn := NewSumFunction(def, frame, dbsql.ColumnGetter("v"))
	got := fn.Eval(dbsql.NewEmptyContext(), nil)
	require.Nil(t, got)
}
