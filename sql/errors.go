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

import errors "gopkg.in/src-d/go-errors.v1"

// ErrInvalidFrame is returned when a frame specification cannot be
// resolved, e.g. an unknown frame mode. A RANGE boundary delta that
// cannot be compared against the order column is not reported through
// it: resolving such a frame panics with the conversion error.
var ErrInvalidFrame = errors.NewKind("invalid window frame: %s")

// ErrRangeRequiresSingleOrderColumn is returned when RANGE mode framing
// is requested over zero or more than one ORDER BY column.
var ErrRangeRequiresSingleOrderColumn = errors.NewKind("RANGE frame requires exactly one ORDER BY column, got %d")

// ErrUnsupportedAggregate describes a non-associative aggregate
// (first/last/nth/lead/lag, or a ranking function) routed through the
// segment tree instead of the navigation or ranking aggregator.
// NewSegmentTree accepts only AssociativeAggregate factories, so no code
// path in this module returns it.
var ErrUnsupportedAggregate = errors.NewKind("%s is not an associative aggregate and cannot be queried through a segment tree")

// ErrNegativeBitsetIndex is raised when a bit-set backing a segment-tree
// build is asked to record a negative node index, which cannot occur
// except from a programmer error in tree arithmetic.
var ErrNegativeBitsetIndex = errors.NewKind("bit-set index must be non-negative, got %d")
