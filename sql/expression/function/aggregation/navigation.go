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

// NavigationAggregator answers Execute(begin, end) over a frame that the
// window driver resolves per row. Unlike an AssociativeAggregate it owns
// the entire partition's input up front; its combine step, if any, isn't
// associative enough to live behind a segment tree.
type NavigationAggregator interface {
	Execute(begin, end int) dbsql.Value
}

type cacheKey struct{ begin, end int }

// firstLastAgg implements both first(x) and last(x): last is first over
// a view of the inputs reversed at construction time.
type firstLastAgg struct {
	inputs  []dbsql.Value
	reverse bool
	cache   map[cacheKey]dbsql.Value
}

// NewFirst returns a navigation aggregator for first(x) over inputs.
func NewFirst(inputs []dbsql.Value) NavigationAggregator {
	return &firstLastAgg{inputs: inputs, cache: map[cacheKey]dbsql.Value{}}
}

// NewLast returns a navigation aggregator for last(x) over inputs.
func NewLast(inputs []dbsql.Value) NavigationAggregator {
	return &firstLastAgg{inputs: inputs, reverse: true, cache: map[cacheKey]dbsql.Value{}}
}

func (a *firstLastAgg) Execute(begin, end int) dbsql.Value {
	key := cacheKey{begin, end}
	if v, ok := a.cache[key]; ok {
		return v
	}
	n := len(a.inputs)
	var value dbsql.Value
	for offset := begin; offset < end; offset++ {
		idx := offset
		if a.reverse {
			idx = n - 1 - offset
		}
		if idx < 0 || idx >= n {
			continue
		}
		if !dbsql.IsNull(a.inputs[idx]) {
			value = a.inputs[idx]
			break
		}
	}
	a.cache[key] = value
	return value
}

// nthAgg implements nth(x, k): k is read per call from the offsets
// sequence at the cursor's current position, then the cursor advances.
type nthAgg struct {
	inputs  []dbsql.Value
	offsets []dbsql.Value
	cursor  int
	cache   map[cacheKey]dbsql.Value
}

// NewNth returns a navigation aggregator for nth(x, k).
func NewNth(inputs, offsets []dbsql.Value) NavigationAggregator {
	return &nthAgg{inputs: inputs, offsets: offsets, cache: map[cacheKey]dbsql.Value{}}
}

func (a *nthAgg) Execute(begin, end int) dbsql.Value {
	key := cacheKey{begin, end}
	if v, ok := a.cache[key]; ok {
		a.cursor++
		return v
	}
	pos := a.cursor
	var result dbsql.Value
	if pos < len(a.offsets) {
		rawK := a.offsets[pos]
		if !dbsql.IsNull(rawK) {
			k, err := dbsql.ToInt64(rawK)
			if err != nil {
				panic(err)
			}
			width := int64(end - begin)
			if k >= -width && k < width {
				idx := int(k)
				if idx < 0 {
					idx += len(a.inputs)
				}
				if idx >= 0 && idx < len(a.inputs) {
					result = a.inputs[idx]
				}
			}
		}
	}
	a.cache[key] = result
	a.cursor++
	return result
}

// leadLagAgg implements lead(x, d, default) and lag(x, d, default). It
// ignores begin/end entirely: it looks d rows ahead of (lead) or behind
// (lag) the current cursor position in the whole partition, not the
// frame.
type leadLagAgg struct {
	inputs   []dbsql.Value
	offsets  []dbsql.Value
	defaults []dbsql.Value
	cursor   int
	negate   bool // true for lag, false for lead
}

// NewLead returns a navigation aggregator for lead(x, d, default).
func NewLead(inputs, offsets, defaults []dbsql.Value) NavigationAggregator {
	return &leadLagAgg{inputs: inputs, offsets: offsets, defaults: defaults}
}

// NewLag returns a navigation aggregator for lag(x, d, default).
func NewLag(inputs, offsets, defaults []dbsql.Value) NavigationAggregator {
	return &leadLagAgg{inputs: inputs, offsets: offsets, defaults: defaults, negate: true}
}

func (a *leadLagAgg) Execute(int, int) dbsql.Value {
	index := a.cursor
	a.cursor++

	rawOffset := a.offsets[index]
	var target int64 = -1
	offsetDefined := !dbsql.IsNull(rawOffset)
	if offsetDefined {
		d, err := dbsql.ToInt64(rawOffset)
		if err != nil {
			panic(err)
		}
		if a.negate {
			target = int64(index) - d
		} else {
			target = int64(index) + d
		}
	}

	n := int64(len(a.inputs))
	if target < 0 || target >= n {
		return a.defaults[index]
	}
	return a.inputs[target]
}
