package csvcandle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wattsup/stonks/data"
	"github.com/wattsup/stonks/data/candle"
)

// Replay serves recorded minute bars as if a live provider were publishing
// them, keyed by symbol and minute. Minutes with no recorded bar report
// data.ErrNoData, exercising the same grace and synthetic bar handling a
// real provider outage would
type Replay struct {
	bars map[string]map[int64]candle.Candle
}

// NewReplay preloads minute bars for the supplied symbols and window
func NewReplay(ctx context.Context, s *Source, symbols []string, start, end time.Time) (*Replay, error) {
	if s == nil {
		return nil, errEmptyDirectory
	}
	r := &Replay{bars: make(map[string]map[int64]candle.Candle, len(symbols))}
	for _, symbol := range symbols {
		symbol = strings.ToUpper(symbol)
		minute, _, err := s.Candles(ctx, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("replaying %v: %w", symbol, err)
		}
		indexed := make(map[int64]candle.Candle, len(minute))
		for i := range minute {
			indexed[minute[i].Time.Truncate(time.Minute).Unix()] = minute[i]
		}
		r.bars[symbol] = indexed
	}
	return r, nil
}

// LatestBar implements the data.LiveSource interface
func (r *Replay) LatestBar(_ context.Context, symbol string, minute time.Time) (candle.Candle, error) {
	indexed, ok := r.bars[strings.ToUpper(symbol)]
	if !ok {
		return candle.Candle{}, fmt.Errorf("%w for %v", data.ErrNoData, symbol)
	}
	bar, ok := indexed[minute.Truncate(time.Minute).Unix()]
	if !ok {
		return candle.Candle{}, fmt.Errorf("%w for %v at %v", data.ErrNoData, symbol, minute)
	}
	return bar, nil
}
