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
	"fmt"

	dbsql "github.com/dolthub/windowq/sql"
)

// RankingAggregator answers Execute(begin, end) driven entirely by the
// partition's order-key tuples; begin/end are accepted for interface
// symmetry with NavigationAggregator but ranking functions only ever
// look at the cursor.
type RankingAggregator interface {
	Execute(begin, end int) dbsql.Value
}

// orderKeyTuple is a comparable snapshot of one row's order-by values,
// with nulls normalized so two nulls compare equal.
type orderKeyTuple string

func tupleOf(values []dbsql.Value) orderKeyTuple {
	var b []byte
	for i, v := range values {
		if i > 0 {
			b = append(b, '\x1f')
		}
		if dbsql.IsNull(v) {
			b = append(b, '\x00')
			continue
		}
		b = append(b, []byte(fmt.Sprintf("%T:%v", v, v))...)
	}
	return orderKeyTuple(b)
}

// rowNumberAgg counts calls, 0-based.
type rowNumberAgg struct{ next int64 }

// NewRowNumber returns a ranking aggregator for row_number.
func NewRowNumber(orderKeys [][]dbsql.Value) RankingAggregator {
	return &rowNumberAgg{}
}

func (a *rowNumberAgg) Execute(int, int) dbsql.Value {
	n := a.next
	a.next++
	return n
}

// rankAgg repeats the previous rank while the order key hasn't changed,
// and jumps to the current row number otherwise.
type rankAgg struct {
	keys     []orderKeyTuple
	rowNum   int64
	prevRank dbsql.Value
	prevKey  orderKeyTuple
	havePrev bool
}

// NewRank returns a ranking aggregator for rank (non-dense).
func NewRank(orderKeys [][]dbsql.Value) RankingAggregator {
	keys := make([]orderKeyTuple, len(orderKeys))
	for i, k := range orderKeys {
		keys[i] = tupleOf(k)
	}
	return &rankAgg{keys: keys}
}

func (a *rankAgg) Execute(int, int) dbsql.Value {
	current := a.keys[a.rowNum]
	rowNumber := a.rowNum
	a.rowNum++

	if !a.havePrev || current != a.prevKey {
		a.prevRank = rowNumber
		a.prevKey = current
		a.havePrev = true
	}
	return a.prevRank
}

// denseRankAgg increments a counter, starting at -1, whenever the order
// key changes.
type denseRankAgg struct {
	keys     []orderKeyTuple
	index    int
	rank     int64
	prevKey  orderKeyTuple
	havePrev bool
}

// NewDenseRank returns a ranking aggregator for dense_rank.
func NewDenseRank(orderKeys [][]dbsql.Value) RankingAggregator {
	keys := make([]orderKeyTuple, len(orderKeys))
	for i, k := range orderKeys {
		keys[i] = tupleOf(k)
	}
	return &denseRankAgg{keys: keys, rank: -1}
}

func (a *denseRankAgg) Execute(int, int) dbsql.Value {
	current := a.keys[a.index]
	a.index++
	if !a.havePrev || current != a.prevKey {
		a.rank++
		a.prevKey = current
		a.havePrev = true
	}
	return a.rank
}
