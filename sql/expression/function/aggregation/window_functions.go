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

// WindowFunction evaluates one OVER-clause expression across an entire
// row set, respecting each row's partition and frame, and returns one
// result per input row in the input's original order.
type WindowFunction interface {
	Eval(ctx *dbsql.Context, rows []dbsql.Row) []dbsql.Value
}

// associativeFunction adapts an AggregateFactory to WindowFunction
// through the segment tree.
type associativeFunction struct {
	def     dbsql.WindowDefinition
	frame   FrameResolver
	args    []dbsql.Getter
	factory AggregateFactory
	fanout  int
}

func (f *associativeFunction) Eval(ctx *dbsql.Context, rows []dbsql.Row) []dbsql.Value {
	return Compute(ctx, rows, FunctionSpec{
		Definition:         f.def,
		Frame:              f.frame,
		Kind:               AssociativeAggregateKind,
		Args:               f.args,
		AssociativeFactory: f.factory,
		Fanout:             f.fanout,
	})
}

func newAssociativeFunction(def dbsql.WindowDefinition, frame FrameResolver, factory AggregateFactory, args ...dbsql.Getter) WindowFunction {
	return &associativeFunction{def: def, frame: frame, args: args, factory: factory}
}

// NewCountFunction returns a WindowFunction for count(arg).
func NewCountFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewCount(), arg)
}

// NewSumFunction returns a WindowFunction for sum(arg).
func NewSumFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewSum(), arg)
}

// NewTotalFunction returns a WindowFunction for total(arg): 0 instead of
// null on an empty frame.
func NewTotalFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewTotal(), arg)
}

// NewMeanFunction returns a WindowFunction for avg(arg).
func NewMeanFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewMean(), arg)
}

// NewMinFunction returns a WindowFunction for min(arg).
func NewMinFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewMin(), arg)
}

// NewMaxFunction returns a WindowFunction for max(arg).
func NewMaxFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewMax(), arg)
}

// NewSampleCovarianceFunction returns a WindowFunction for covar_samp(x, y).
func NewSampleCovarianceFunction(def dbsql.WindowDefinition, frame FrameResolver, x, y dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewSampleCovariance(), x, y)
}

// NewPopulationCovarianceFunction returns a WindowFunction for covar_pop(x, y).
func NewPopulationCovarianceFunction(def dbsql.WindowDefinition, frame FrameResolver, x, y dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewPopulationCovariance(), x, y)
}

// NewSampleVarianceFunction returns a WindowFunction for var_samp(arg).
func NewSampleVarianceFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewSampleVariance(), arg)
}

// NewPopulationVarianceFunction returns a WindowFunction for var_pop(arg).
func NewPopulationVarianceFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewPopulationVariance(), arg)
}

// NewSampleStandardDeviationFunction returns a WindowFunction for stddev_samp(arg).
func NewSampleStandardDeviationFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewSampleStandardDeviation(), arg)
}

// NewPopulationStandardDeviationFunction returns a WindowFunction for stddev_pop(arg).
func NewPopulationStandardDeviationFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return newAssociativeFunction(def, frame, NewPopulationStandardDeviation(), arg)
}

// navigationFunction adapts a NavigationAggregator constructor to
// WindowFunction.
type navigationFunction struct {
	def   dbsql.WindowDefinition
	frame FrameResolver
	args  []dbsql.Getter
	newer func(argColumns [][]dbsql.Value) NavigationAggregator
}

func (f *navigationFunction) Eval(ctx *dbsql.Context, rows []dbsql.Row) []dbsql.Value {
	return Compute(ctx, rows, FunctionSpec{
		Definition:    f.def,
		Frame:         f.frame,
		Kind:          NavigationAggregateKind,
		Args:          f.args,
		NewNavigation: f.newer,
	})
}

// NewFirstFunction returns a WindowFunction for first_value(arg).
func NewFirstFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return &navigationFunction{def: def, frame: frame, args: []dbsql.Getter{arg},
		newer: func(cols [][]dbsql.Value) NavigationAggregator { return NewFirst(cols[0]) }}
}

// NewLastFunction returns a WindowFunction for last_value(arg).
func NewLastFunction(def dbsql.WindowDefinition, frame FrameResolver, arg dbsql.Getter) WindowFunction {
	return &navigationFunction{def: def, frame: frame, args: []dbsql.Getter{arg},
		newer: func(cols [][]dbsql.Value) NavigationAggregator { return NewLast(cols[0]) }}
}

// NewNthFunction returns a WindowFunction for nth_value(arg, n).
func NewNthFunction(def dbsql.WindowDefinition, frame FrameResolver, arg, n dbsql.Getter) WindowFunction {
	return &navigationFunction{def: def, frame: frame, args: []dbsql.Getter{arg, n},
		newer: func(cols [][]dbsql.Value) NavigationAggregator { return NewNth(cols[0], cols[1]) }}
}

// NewLeadFunction returns a WindowFunction for lead(arg, offset, default).
func NewLeadFunction(def dbsql.WindowDefinition, frame FrameResolver, arg, offset, dflt dbsql.Getter) WindowFunction {
	return &navigationFunction{def: def, frame: frame, args: []dbsql.Getter{arg, offset, dflt},
		newer: func(cols [][]dbsql.Value) NavigationAggregator { return NewLead(cols[0], cols[1], cols[2]) }}
}

// NewLagFunction returns a WindowFunction for lag(arg, offset, default).
func NewLagFunction(def dbsql.WindowDefinition, frame FrameResolver, arg, offset, dflt dbsql.Getter) WindowFunction {
	return &navigationFunction{def: def, frame: frame, args: []dbsql.Getter{arg, offset, dflt},
		newer: func(cols [][]dbsql.Value) NavigationAggregator { return NewLag(cols[0], cols[1], cols[2]) }}
}

// rankingFunction adapts a RankingAggregator constructor to
// WindowFunction.
type rankingFunction struct {
	def   dbsql.WindowDefinition
	frame FrameResolver
	newer func(orderKeys [][]dbsql.Value) RankingAggregator
}

func (f *rankingFunction) Eval(ctx *dbsql.Context, rows []dbsql.Row) []dbsql.Value {
	return Compute(ctx, rows, FunctionSpec{
		Definition: f.def,
		Frame:      f.frame,
		Kind:       RankingAggregateKind,
		NewRanking: f.newer,
	})
}

// NewRowNumberFunction returns a WindowFunction for row_number().
func NewRowNumberFunction(def dbsql.WindowDefinition, frame FrameResolver) WindowFunction {
	return &rankingFunction{def: def, frame: frame, newer: NewRowNumber}
}

// NewRankFunction returns a WindowFunction for rank().
func NewRankFunction(def dbsql.WindowDefinition, frame FrameResolver) WindowFunction {
	return &rankingFunction{def: def, frame: frame, newer: NewRank}
}

// NewDenseRankFunction returns a WindowFunction for dense_rank().
func NewDenseRankFunction(def dbsql.WindowDefinition, frame FrameResolver) WindowFunction {
	return &rankingFunction{def: def, frame: frame, newer: NewDenseRank}
}
