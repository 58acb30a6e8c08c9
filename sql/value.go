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

package sql

import (
	"fmt"
	"time"
)

// Compare orders two non-nil Values of the same dynamic family (both
// numeric, both strings, or both time.Time). Numeric values may mix
// int64 and float64; the int64 operand is promoted.
func Compare(a, b Value) (int, error) {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return compareFloat(float64(av), float64(bv)), nil
		case float64:
			return compareFloat(float64(av), bv), nil
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return compareFloat(av, float64(bv)), nil
		case float64:
			return compareFloat(av, bv), nil
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1, nil
			case av > bv:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1, nil
			case av.After(bv):
				return 1, nil
			default:
				return 0, nil
			}
		}
	case time.Duration:
		if bv, ok := b.(time.Duration); ok {
			return compareFloat(float64(av), float64(bv)), nil
		}
	}
	return 0, fmt.Errorf("sql: cannot compare %T with %T", a, b)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsNull reports whether v represents SQL NULL.
func IsNull(v Value) bool { return v == nil }

// ToFloat64 coerces a numeric Value to float64.
func ToFloat64(v Value) (float64, error) {
	switch t := v.(type) {
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	case time.Duration:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("sql: cannot convert %T to float64", v)
	}
}

// ToInt64 coerces a numeric Value to int64, truncating floats.
func ToInt64(v Value) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case time.Duration:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("sql: cannot convert %T to int64", v)
	}
}

// Add returns a + b. A time.Time is added to the other operand read as
// a time.Duration (int64 and float64 operands count as nanoseconds).
func Add(a, b Value) (Value, error) {
	if at, ok := a.(time.Time); ok {
		bd, err := durationOf(b)
		if err != nil {
			return nil, err
		}
		return at.Add(bd), nil
	}
	if bt, ok := b.(time.Time); ok {
		ad, err := durationOf(a)
		if err != nil {
			return nil, err
		}
		return bt.Add(ad), nil
	}
	af, err := ToFloat64(a)
	if err != nil {
		return nil, err
	}
	bf, err := ToFloat64(b)
	if err != nil {
		return nil, err
	}
	if isIntLike(a) && isIntLike(b) {
		return int64(af) + int64(bf), nil
	}
	return af + bf, nil
}

// Sub returns a - b. Subtracting two time.Time values yields a
// time.Duration, matching RANGE mode's order-delta semantics.
func Sub(a, b Value) (Value, error) {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Sub(bt), nil
		}
		bd, err := durationOf(b)
		if err != nil {
			return nil, err
		}
		return at.Add(-bd), nil
	}
	af, err := ToFloat64(a)
	if err != nil {
		return nil, err
	}
	bf, err := ToFloat64(b)
	if err != nil {
		return nil, err
	}
	if isIntLike(a) && isIntLike(b) {
		return int64(af) - int64(bf), nil
	}
	return af - bf, nil
}

func durationOf(v Value) (time.Duration, error) {
	switch t := v.(type) {
	case time.Duration:
		return t, nil
	case int64:
		return time.Duration(t), nil
	case float64:
		return time.Duration(t), nil
	default:
		return 0, fmt.Errorf("sql: cannot convert %T to time.Duration", v)
	}
}

func isIntLike(v Value) bool {
	switch v.(type) {
	case int64, time.Duration:
		return true
	default:
		return false
	}
}

// DivScalar divides a numeric Value by a count, always returning a
// float64 (mean/variance finalizers never return an integral type).
func DivScalar(a Value, n int64) (float64, error) {
	af, err := ToFloat64(a)
	if err != nil {
		return 0, err
	}
	return af / float64(n), nil
}
