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

// FrameResolver maps a row's position within its sorted partition to the
// half-open index range the window function should aggregate over.
type FrameResolver interface {
	Frame(partition []dbsql.Row, i int) dbsql.WindowInterval
}

// NewFrameResolver builds the FrameResolver for spec. RANGE mode
// requires exactly one ORDER BY column, since the order-value delta used
// to locate frame boundaries is only well defined for a single key.
func NewFrameResolver(spec dbsql.FrameSpec) (FrameResolver, error) {
	switch spec.Mode {
	case dbsql.RowsMode:
		return &rowsFrameResolver{spec: spec}, nil
	case dbsql.RangeMode:
		if len(spec.Definition.OrderBy) != 1 {
			return nil, dbsql.ErrRangeRequiresSingleOrderColumn.New(len(spec.Definition.OrderBy))
		}
		return &rangeFrameResolver{spec: spec}, nil
	default:
		return nil, dbsql.ErrInvalidFrame.New("unknown frame mode")
	}
}

// rowsFrameResolver implements ROWS mode framing:
//
//	start = max(0, i - preceding(row))        if preceding defined else 0
//	stop  = min(n, i + following(row) + 1)    if following defined else n
type rowsFrameResolver struct {
	spec dbsql.FrameSpec
}

func (r *rowsFrameResolver) Frame(partition []dbsql.Row, i int) dbsql.WindowInterval {
	n := len(partition)
	row := partition[i]

	start := 0
	if r.spec.Preceding != nil {
		if delta, ok := r.spec.Preceding(row); ok {
			n64, err := dbsql.ToInt64(delta)
			if err != nil {
				panic(err)
			}
			start = maxInt(0, i-int(n64))
		}
	}

	stop := n
	if r.spec.Following != nil {
		if delta, ok := r.spec.Following(row); ok {
			n64, err := dbsql.ToInt64(delta)
			if err != nil {
				panic(err)
			}
			stop = minInt(n, i+int(n64)+1)
		}
	}

	if start > stop {
		start = stop
	}
	return dbsql.WindowInterval{Start: start, End: stop}
}

// rangeFrameResolver implements RANGE mode framing, scanning outward
// from i along the single order column since the partition is already
// sorted by it.
type rangeFrameResolver struct {
	spec dbsql.FrameSpec
}

func (r *rangeFrameResolver) Frame(partition []dbsql.Row, i int) dbsql.WindowInterval {
	n := len(partition)
	orderBy := r.spec.Definition.OrderBy[0].Column
	row := partition[i]
	v := orderBy(row)

	start := 0
	if r.spec.Preceding != nil {
		delta, ok := r.spec.Preceding(row)
		start = i
		if ok {
			for start > 0 {
				diff, err := dbsql.Sub(v, orderBy(partition[start-1]))
				if err != nil {
					panic(err)
				}
				if !withinDelta(diff, delta) {
					break
				}
				start--
			}
		} else {
			start = 0
		}
	}

	stop := n
	if r.spec.Following != nil {
		delta, ok := r.spec.Following(row)
		end := i
		if ok {
			for end < n-1 {
				diff, err := dbsql.Sub(orderBy(partition[end+1]), v)
				if err != nil {
					panic(err)
				}
				if !withinDelta(diff, delta) {
					break
				}
				end++
			}
			stop = end + 1
		}
	}

	if start > stop {
		start = stop
	}
	return dbsql.WindowInterval{Start: start, End: stop}
}

// withinDelta reports whether diff <= delta, both coerced to float64 so
// that numeric deltas and time.Duration deltas compare uniformly.
func withinDelta(diff, delta dbsql.Value) bool {
	df, err := dbsql.ToFloat64(diff)
	if err != nil {
		panic(err)
	}
	dl, err := dbsql.ToFloat64(delta)
	if err != nil {
		panic(err)
	}
	return df <= dl
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
