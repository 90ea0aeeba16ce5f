package strategies

import (
	"context"
	"errors"
	"time"

	"github.com/wattsup/stonks/portfolio"
	"github.com/wattsup/stonks/strategies/base"
)

// ErrStrategyNotFound occurs when a requested strategy is not registered
var ErrStrategyNotFound = errors.New("strategy not found")

// Handler is the decision procedure a simulation drives. OnMinute is called
// once per simulated minute after the portfolio has executed pending orders
// for the new bar; OnWeek fires before the first session of each new ISO
// week and defaults to a no-op
type Handler interface {
	Name() string
	Description() string
	Setup(p portfolio.Handler) error
	OnMinute(t time.Time) error
	OnWeek(ctx context.Context, opt base.Optimiser, weekStart time.Time) error
	Params() base.Params
	SetParams(base.Params) error
	Ranges() base.Ranges
	SetSilent(bool)
	SetWalkForward(bool)
}
