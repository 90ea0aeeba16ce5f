package optimize

import (
	"errors"

	"github.com/wattsup/stonks/engine"
	"github.com/wattsup/stonks/strategies/base"
)

var (
	// ErrNoRanges occurs when a grid search is started with nothing to vary
	ErrNoRanges = errors.New("no parameter ranges to search")
	// ErrUnknownMetric occurs when results are ranked by an unsupported
	// metric
	ErrUnknownMetric = errors.New("unknown ranking metric")
	// ErrNoResults occurs when every combination in the grid failed to
	// produce a report
	ErrNoResults = errors.New("no simulation produced a result")
)

// Metric selects which report figure a grid search ranks by
type Metric string

// Supported ranking metrics
const (
	MetricSortino Metric = "sortino"
	MetricSharpe  Metric = "sharpe"
	MetricProfit  Metric = "profit"
)

// defaultTopN bounds how many ranked results a search returns
const defaultTopN = 5

// GridSearch runs one backtest per combination of the supplied parameter
// ranges and ranks the results. The embedded run config is copied for every
// combination; inner runs are always silent and never walk forward
type GridSearch struct {
	Config       engine.RunConfig
	Ranges       base.Ranges
	TargetMetric Metric
	TopN         int
	Workers      int
}

// testCase pairs one parameter combination with its display label
type testCase struct {
	label  string
	params base.Params
}
