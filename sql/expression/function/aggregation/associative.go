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

// Package aggregation implements the window-aggregation core: associative
// aggregates evaluated through a segment tree, non-associative navigation
// and ranking aggregators, ROWS/RANGE frame resolution, and the driver
// that stitches partitioning, sorting, and frame lookups together into a
// WindowFunction.
package aggregation

import (
	"math"

	dbsql "github.com/dolthub/windowq/sql"
)

// AssociativeAggregate is a step/combine/finalize state machine whose
// Combine is associative, making it eligible for O(log P) segment-tree
// evaluation. Implementations must start in their identity state, where
// Finalize reports the same value Finalize would report on a fresh
// identity state merged with nothing.
type AssociativeAggregate interface {
	// Step folds one row's argument(s) into the aggregate's state. A nil
	// argument (SQL NULL) must be ignored.
	Step(args ...dbsql.Value)
	// Combine merges other's state into the receiver in place. Combine
	// must be associative; it need not be commutative, though every
	// concrete aggregate below is.
	Combine(other AssociativeAggregate)
	// Finalize reads the aggregate's current state without consuming it.
	Finalize() dbsql.Value
}

// AggregateFactory produces a fresh identity-state AssociativeAggregate.
type AggregateFactory func() AssociativeAggregate

// countAgg counts non-null arguments.
type countAgg struct{ count int64 }

// NewCount returns a factory for the count aggregate.
func NewCount() AggregateFactory { return func() AssociativeAggregate { return &countAgg{} } }

func (a *countAgg) Step(args ...dbsql.Value) {
	if len(args) > 0 && !dbsql.IsNull(args[0]) {
		a.count++
	}
}

func (a *countAgg) Combine(other AssociativeAggregate) {
	a.count += other.(*countAgg).count
}

func (a *countAgg) Finalize() dbsql.Value { return a.count }

// sumAgg accumulates a running total and count, returning null when no
// non-null input was ever seen.
type sumAgg struct {
	total dbsql.Value
	count int64
}

// NewSum returns a factory for the sum aggregate: null on an empty frame.
func NewSum() AggregateFactory {
	return func() AssociativeAggregate { return &sumAgg{total: int64(0)} }
}

func (a *sumAgg) Step(args ...dbsql.Value) {
	if len(args) == 0 || dbsql.IsNull(args[0]) {
		return
	}
	sum, err := dbsql.Add(a.total, args[0])
	if err != nil {
		panic(err)
	}
	a.total = sum
	a.count++
}

func (a *sumAgg) Combine(other AssociativeAggregate) {
	o := other.(*sumAgg)
	sum, err := dbsql.Add(a.total, o.total)
	if err != nil {
		panic(err)
	}
	a.total = sum
	a.count += o.count
}

func (a *sumAgg) Finalize() dbsql.Value {
	if a.count == 0 {
		return nil
	}
	return a.total
}

// totalAgg is Sum but for an empty frame it returns 0 rather than null,
// matching SQLite's total().
type totalAgg struct{ sumAgg }

// NewTotal returns a factory for the total aggregate: 0 on an empty
// frame instead of null.
func NewTotal() AggregateFactory {
	return func() AssociativeAggregate { return &totalAgg{sumAgg{total: int64(0)}} }
}

func (a *totalAgg) Combine(other AssociativeAggregate) {
	a.sumAgg.Combine(&other.(*totalAgg).sumAgg)
}

func (a *totalAgg) Finalize() dbsql.Value {
	if a.count == 0 {
		return int64(0)
	}
	return a.total
}

// meanAgg is Sum with a finalize that divides by count.
type meanAgg struct{ sumAgg }

// NewMean returns a factory for the arithmetic mean aggregate.
func NewMean() AggregateFactory {
	return func() AssociativeAggregate { return &meanAgg{sumAgg{total: int64(0)}} }
}

func (a *meanAgg) Combine(other AssociativeAggregate) {
	a.sumAgg.Combine(&other.(*meanAgg).sumAgg)
}

func (a *meanAgg) Finalize() dbsql.Value {
	if a.count == 0 {
		return nil
	}
	mean, err := dbsql.DivScalar(a.total, a.count)
	if err != nil {
		panic(err)
	}
	return mean
}

// minMaxAgg tracks a running minimum or maximum, selected by lessThan,
// ordered with sql.Compare.
type minMaxAgg struct {
	current  dbsql.Value
	lessThan bool // true picks the smaller of two values, false the larger
}

// NewMin returns a factory for the min aggregate.
func NewMin() AggregateFactory {
	return func() AssociativeAggregate { return &minMaxAgg{lessThan: true} }
}

// NewMax returns a factory for the max aggregate.
func NewMax() AggregateFactory {
	return func() AssociativeAggregate { return &minMaxAgg{lessThan: false} }
}

func (a *minMaxAgg) pick(x, y dbsql.Value) dbsql.Value {
	cmp, err := dbsql.Compare(x, y)
	if err != nil {
		panic(err)
	}
	if (cmp <= 0) == a.lessThan {
		return x
	}
	return y
}

func (a *minMaxAgg) Step(args ...dbsql.Value) {
	if len(args) == 0 || dbsql.IsNull(args[0]) {
		return
	}
	if a.current == nil {
		a.current = args[0]
		return
	}
	a.current = a.pick(a.current, args[0])
}

func (a *minMaxAgg) Combine(other AssociativeAggregate) {
	o := other.(*minMaxAgg)
	if o.current == nil {
		return
	}
	if a.current == nil {
		a.current = o.current
		return
	}
	a.current = a.pick(a.current, o.current)
}

func (a *minMaxAgg) Finalize() dbsql.Value { return a.current }

// covarianceAgg computes a Welford-style online covariance, parallelized
// with the Chan et al. merge formula so that two partial states combine
// into the covariance of their union.
type covarianceAgg struct {
	meanX, meanY, cov float64
	count             int64
	ddof              int64
}

// NewSampleCovariance returns a factory for covariance with Bessel's
// correction (ddof=1).
func NewSampleCovariance() AggregateFactory {
	return func() AssociativeAggregate { return &covarianceAgg{ddof: 1} }
}

// NewPopulationCovariance returns a factory for uncorrected covariance
// (ddof=0).
func NewPopulationCovariance() AggregateFactory {
	return func() AssociativeAggregate { return &covarianceAgg{ddof: 0} }
}

func (a *covarianceAgg) Step(args ...dbsql.Value) {
	if len(args) < 2 || dbsql.IsNull(args[0]) || dbsql.IsNull(args[1]) {
		return
	}
	x, err := dbsql.ToFloat64(args[0])
	if err != nil {
		panic(err)
	}
	y, err := dbsql.ToFloat64(args[1])
	if err != nil {
		panic(err)
	}
	a.count++
	deltaX := x - a.meanX
	a.meanX += deltaX / float64(a.count)
	a.meanY += (y - a.meanY) / float64(a.count)
	a.cov += deltaX * (y - a.meanY)
}

func (a *covarianceAgg) Combine(other AssociativeAggregate) {
	o := other.(*covarianceAgg)
	if o.count == 0 {
		return
	}
	if a.count == 0 {
		*a = *o
		return
	}
	newCount := a.count + o.count
	a.cov += o.cov + (a.meanX-o.meanX)*(a.meanY-o.meanY)*
		float64(a.count)*float64(o.count)/float64(newCount)
	a.meanX = (float64(a.count)*a.meanX + float64(o.count)*o.meanX) / float64(newCount)
	a.meanY = (float64(a.count)*a.meanY + float64(o.count)*o.meanY) / float64(newCount)
	a.count = newCount
}

func (a *covarianceAgg) Finalize() dbsql.Value {
	denom := a.count - a.ddof
	if denom <= 0 {
		return nil
	}
	return a.cov / float64(denom)
}

// varianceAgg computes variance as the covariance of a column with
// itself.
type varianceAgg struct{ cov covarianceAgg }

// NewSampleVariance returns a factory for sample variance (ddof=1).
func NewSampleVariance() AggregateFactory {
	return func() AssociativeAggregate { return &varianceAgg{covarianceAgg{ddof: 1}} }
}

// NewPopulationVariance returns a factory for population variance (ddof=0).
func NewPopulationVariance() AggregateFactory {
	return func() AssociativeAggregate { return &varianceAgg{covarianceAgg{ddof: 0}} }
}

func (a *varianceAgg) Step(args ...dbsql.Value) {
	if len(args) == 0 {
		return
	}
	a.cov.Step(args[0], args[0])
}

func (a *varianceAgg) Combine(other AssociativeAggregate) {
	a.cov.Combine(&other.(*varianceAgg).cov)
}

func (a *varianceAgg) Finalize() dbsql.Value { return a.cov.Finalize() }

// stddevAgg finalizes variance through a square root.
type stddevAgg struct{ variance varianceAgg }

// NewSampleStandardDeviation returns a factory for sample standard
// deviation (ddof=1).
func NewSampleStandardDeviation() AggregateFactory {
	return func() AssociativeAggregate {
		return &stddevAgg{varianceAgg{covarianceAgg{ddof: 1}}}
	}
}

// NewPopulationStandardDeviation returns a factory for population
// standard deviation (ddof=0).
func NewPopulationStandardDeviation() AggregateFactory {
	return func() AssociativeAggregate {
		return &stddevAgg{varianceAgg{covarianceAgg{ddof: 0}}}
	}
}

func (a *stddevAgg) Step(args ...dbsql.Value) { a.variance.Step(args...) }

func (a *stddevAgg) Combine(other AssociativeAggregate) {
	a.variance.Combine(&other.(*stddevAgg).variance)
}

func (a *stddevAgg) Finalize() dbsql.Value {
	v := a.variance.Finalize()
	if v == nil {
		return nil
	}
	return math.Sqrt(v.(float64))
}
