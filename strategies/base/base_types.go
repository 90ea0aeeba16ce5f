package base

import (
	"context"
	"errors"
	"time"

	"github.com/wattsup/stonks/portfolio"
)

var (
	// ErrNoAdjustableParams occurs when a walk-forward or grid search is
	// requested for a strategy without parameter ranges
	ErrNoAdjustableParams = errors.New("strategy has no adjustable parameter ranges")
	// ErrUnknownParam occurs when a supplied parameter name is not known to
	// the strategy
	ErrUnknownParam = errors.New("unknown strategy parameter")
)

// Params holds a strategy's named tunable values
type Params map[string]float64

// Ranges holds the candidate values for each tunable parameter, the search
// space for grid optimisation
type Ranges map[string][]float64

// Optimiser re-runs a parameter search over a historical window and returns
// the winning parameter set. Implemented by the optimize package; declared
// here so strategies can trigger walk-forward re-optimisation without a
// dependency cycle
type Optimiser interface {
	BestParams(ctx context.Context, strategyName string, ranges Ranges, start, end time.Time) (Params, error)
}

// Strategy is the base implementation shared by all strategy handlers. It
// owns parameter plumbing, the bound portfolio and the walk-forward hook
type Strategy struct {
	name        string
	params      Params
	ranges      Ranges
	portfolio   portfolio.Handler
	timestamp   time.Time
	silent      bool
	walkForward bool
}
