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

// Package sql holds the row and value model that the window-aggregation
// core treats as an external collaborator: a row provider, a dynamic
// value type, and the getters the core uses to pull arguments, partition
// keys, and order keys out of a row.
package sql

import "github.com/google/uuid"

// RowID is a row's opaque stable identity. Two rows with identical
// column values but different RowIDs are distinct for partition-position
// lookup purposes (see aggregation.WindowPartition.IndexOf).
type RowID = uuid.UUID

// Value is the dynamic value carried in a row's column. Supported
// concrete types are int64, float64, string, time.Time, time.Duration,
// and nil (SQL NULL).
type Value = interface{}

// Row is an immutable labelled tuple mapping column names to Values. Its
// RowID is assigned once, at ingestion, and is never recomputed; it is
// the only thing position lookups in a sorted partition rely on.
type Row struct {
	id     RowID
	values map[string]Value
}

// NewRow builds a Row from a column map, assigning it a fresh identity.
func NewRow(values map[string]Value) Row {
	return Row{id: uuid.New(), values: values}
}

// NewRowWithID builds a Row with a caller-supplied identity. Used by
// tests that rebuild a row with extra columns while keeping its
// identity.
func NewRowWithID(id RowID, values map[string]Value) Row {
	return Row{id: id, values: values}
}

// ID returns the row's opaque stable identity.
func (r Row) ID() RowID { return r.id }

// Get returns the value of column, or nil if the column is absent.
func (r Row) Get(column string) Value {
	return r.values[column]
}

// Equal reports value equality over the column map; identity is not
// considered, per the data model's "equality is value-based" rule.
func (r Row) Equal(other Row) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		ov, ok := other.values[k]
		if !ok {
			return false
		}
		if !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	cmp, err := Compare(a, b)
	return err == nil && cmp == 0
}

// Getter extracts a single Value from a Row. Partition-key functions,
// order-key functions, and aggregate-argument extractors are all
// Getters.
type Getter func(Row) Value

// ColumnGetter builds a Getter that reads a fixed column by name.
func ColumnGetter(column string) Getter {
	return func(r Row) Value { return r.Get(column) }
}
