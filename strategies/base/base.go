package base

import (
	"context"
	"fmt"
	"time"

	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/portfolio"
)

// ApplyDefaults installs a strategy's name, default parameters and search
// ranges. Called by concrete strategy constructors
func (s *Strategy) ApplyDefaults(name string, params Params, ranges Ranges) {
	s.name = name
	s.params = Params{}
	for k, v := range params {
		s.params[k] = v
	}
	s.ranges = ranges
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return s.name
}

// Setup binds the portfolio the strategy trades against
func (s *Strategy) Setup(p portfolio.Handler) error {
	if p == nil {
		return common.ErrNilPortfolio
	}
	s.portfolio = p
	return nil
}

// Portfolio returns the bound portfolio
func (s *Strategy) Portfolio() portfolio.Handler {
	return s.portfolio
}

// Params returns the current parameter values
func (s *Strategy) Params() Params {
	return s.params
}

// SetParams overrides parameter values by name. Unknown names are rejected
// so a mistyped config key cannot silently fall back to a default
func (s *Strategy) SetParams(p Params) error {
	for k, v := range p {
		if _, ok := s.params[k]; !ok {
			return fmt.Errorf("%w '%v' for %v", ErrUnknownParam, k, s.name)
		}
		s.params[k] = v
	}
	return nil
}

// Ranges returns the tunable parameter search space
func (s *Strategy) Ranges() Ranges {
	return s.ranges
}

// SetTimestamp records the simulation time for logging
func (s *Strategy) SetTimestamp(t time.Time) {
	s.timestamp = t
}

// Timestamp returns the current simulation time
func (s *Strategy) Timestamp() time.Time {
	return s.timestamp
}

// SetSilent suppresses strategy logging, used for optimiser inner runs
func (s *Strategy) SetSilent(silent bool) {
	s.silent = silent
}

// SetWalkForward toggles weekly walk-forward re-optimisation
func (s *Strategy) SetWalkForward(enabled bool) {
	s.walkForward = enabled
}

// Logf logs a strategy message stamped with the simulation time, unless the
// strategy has been silenced
func (s *Strategy) Logf(format string, v ...interface{}) {
	if s.silent {
		return
	}
	log.Infof(common.Strategy, "%v %v", s.timestamp.Format(time.RFC3339), fmt.Sprintf(format, v...))
}

// OnWeek performs walk-forward re-optimisation over the trailing two weeks
// of data and installs the winning parameter set for the coming week. It is
// a no-op unless walk-forward is enabled and an optimiser is supplied
func (s *Strategy) OnWeek(ctx context.Context, opt Optimiser, weekStart time.Time) error {
	if !s.walkForward || opt == nil {
		return nil
	}
	if len(s.ranges) == 0 {
		return fmt.Errorf("%w: %v", ErrNoAdjustableParams, s.name)
	}
	windowStart := weekStart.AddDate(0, 0, -14)
	best, err := opt.BestParams(ctx, s.name, s.ranges, windowStart, weekStart.AddDate(0, 0, -1))
	if err != nil {
		return fmt.Errorf("walk-forward for %v at %v: %w", s.name, weekStart.Format("2006-01-02"), err)
	}
	if err = s.SetParams(best); err != nil {
		return err
	}
	if !s.silent {
		log.Infof(common.Strategy, "%v walk-forward selected %v for week of %v",
			s.name, best, weekStart.Format("2006-01-02"))
	}
	return nil
}
