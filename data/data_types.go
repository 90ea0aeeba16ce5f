package data

import (
	"context"
	"errors"
	"time"

	"github.com/wattsup/stonks/data/candle"
)

// ErrNoData is the explicit signal that a symbol predates its first
// historical bar for the requested range
var ErrNoData = errors.New("no data for symbol in range")

// Source supplies minute and daily candles for a symbol over a closed date
// range. Implementations return bars ordered by time; alignment and gap
// filling to the trading calendar happens at series construction
type Source interface {
	Candles(ctx context.Context, symbol string, start, end time.Time) (minute, daily []candle.Candle, err error)
}

// LiveSource supplies the most recent completed minute bar for a symbol.
// ErrNoData means the bar has not been published yet and the caller may
// retry within its grace window
type LiveSource interface {
	LatestBar(ctx context.Context, symbol string, minute time.Time) (candle.Candle, error)
}
