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
	"sort"

	dbsql "github.com/dolthub/windowq/sql"
)

// WindowPartition is one partition's rows, sorted stably by the window
// definition's ORDER BY, with an identity-keyed position index so the
// driver can find a row's sorted offset without relying on value
// equality: value-equal rows must still resolve to distinct positions.
type WindowPartition struct {
	Rows []dbsql.Row
	pos  map[dbsql.RowID]int
}

// IndexOf returns row's 0-based position within the sorted partition. It
// panics if row does not belong to this partition, which would indicate
// a driver bug rather than a data condition.
func (p *WindowPartition) IndexOf(row dbsql.Row) int {
	i, ok := p.pos[row.ID()]
	if !ok {
		panic("aggregation: row not found in its own partition")
	}
	return i
}

// partitionKey renders a row's partition-by values into a map key. The
// dynamic Value type has no native comparable form beyond Go's built-in
// equality, so components are rendered textually; this is adequate for
// partitioning (never for ordering, which always uses sql.Compare).
func partitionKey(row dbsql.Row, partitionBy []dbsql.Getter) string {
	if len(partitionBy) == 0 {
		return ""
	}
	key := make([]dbsql.Value, len(partitionBy))
	for i, getter := range partitionBy {
		key[i] = getter(row)
	}
	return fmt.Sprintf("%#v", key)
}

// buildPartitions buckets rows by partition key, preserving each
// bucket's row insertion order, then sorts every bucket stably by the
// ORDER BY clause.
func buildPartitions(rows []dbsql.Row, def dbsql.WindowDefinition) map[string]*WindowPartition {
	partitions := make(map[string]*WindowPartition)
	for _, row := range rows {
		key := partitionKey(row, def.PartitionBy)
		p, ok := partitions[key]
		if !ok {
			p = &WindowPartition{}
			partitions[key] = p
		}
		p.Rows = append(p.Rows, row)
	}
	for _, p := range partitions {
		sort.SliceStable(p.Rows, func(i, j int) bool {
			return lessRows(p.Rows[i], p.Rows[j], def.OrderBy)
		})
		p.pos = make(map[dbsql.RowID]int, len(p.Rows))
		for i, row := range p.Rows {
			p.pos[row.ID()] = i
		}
	}
	return partitions
}

// lessRows implements the partition's sort comparison: compare
// component-wise, two non-nulls use natural order, a null compared to a
// non-null orders per that field's Nulls setting, and two nulls compare
// equal (fall through to the next key).
func lessRows(a, b dbsql.Row, orderBy dbsql.SortFields) bool {
	for _, field := range orderBy {
		av, bv := field.Column(a), field.Column(b)
		aNull, bNull := dbsql.IsNull(av), dbsql.IsNull(bv)

		var cmp int
		switch {
		case aNull && bNull:
			cmp = 0
		case aNull:
			cmp = nullCompare(field.Nulls)
		case bNull:
			cmp = -nullCompare(field.Nulls)
		default:
			var err error
			cmp, err = dbsql.Compare(av, bv)
			if err != nil {
				panic(err)
			}
		}
		if field.Order == dbsql.Descending {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
	}
	return false
}

// nullCompare returns the sign a null sorts with respect to a non-null
// value under the given Nulls placement: negative (sorts first) or
// positive (sorts last).
func nullCompare(nulls dbsql.Nulls) int {
	if nulls == dbsql.NullsFirst {
		return -1
	}
	return 1
}
