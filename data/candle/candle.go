package candle

import (
	"fmt"
	"time"

	"github.com/wattsup/stonks/common/math"
)

// NewSeries aligns candles onto the expected timestamp grid and fills any
// gap with a flat bar at the most recent close, volume zero. Grid entries
// before the first real candle are filled with the first candle's open so
// lookback arithmetic never encounters a hole
func NewSeries(symbol string, candles []Candle, grid []time.Time, daily bool) (*Series, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w for %v", ErrNoCandleData, symbol)
	}
	if len(grid) == 0 {
		filled := make([]Candle, len(candles))
		copy(filled, candles)
		return &Series{symbol: symbol, daily: daily, candles: filled}, nil
	}

	byTime := make(map[int64]Candle, len(candles))
	for i := range candles {
		byTime[candles[i].Time.Unix()] = candles[i]
	}

	firstOpen := candles[0].Open
	previousClose := firstOpen
	filled := make([]Candle, 0, len(grid))
	for i := range grid {
		c, ok := byTime[grid[i].Unix()]
		if !ok {
			c = syntheticBar(grid[i], previousClose)
		}
		previousClose = c.Close
		filled = append(filled, c)
	}
	return &Series{symbol: symbol, daily: daily, candles: filled}, nil
}

// NewFromAligned wraps candles already aligned and gap-filled to the
// calendar grid without copying. Each series owns its own cursor so
// concurrent simulations may share the backing array read-only
func NewFromAligned(symbol string, candles []Candle, daily bool) (*Series, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w for %v", ErrNoCandleData, symbol)
	}
	return &Series{symbol: symbol, daily: daily, candles: candles}, nil
}

// Candles returns the backing candle array
func (s *Series) Candles() []Candle {
	return s.candles
}

func syntheticBar(t time.Time, previousClose float64) Candle {
	return Candle{
		Time:   t,
		Open:   previousClose,
		High:   previousClose,
		Low:    previousClose,
		Close:  previousClose,
		Volume: 0,
	}
}

// Symbol returns the symbol the series belongs to
func (s *Series) Symbol() string {
	return s.symbol
}

// Len returns the number of candles held
func (s *Series) Len() int {
	return len(s.candles)
}

// Offset returns the cursor position
func (s *Series) Offset() int {
	return s.cursor
}

// Next advances the cursor by one bar
func (s *Series) Next() {
	s.cursor++
}

// Reset moves the cursor to the candle at t. A daily series resets to the
// session date regardless of the time component
func (s *Series) Reset(t time.Time) error {
	for i := range s.candles {
		ct := s.candles[i].Time
		if ct.Equal(t) || (s.daily && sameDate(ct, t)) {
			s.cursor = i
			return nil
		}
	}
	return fmt.Errorf("%w: %v in %v series for %v", ErrTimestampNotFound, t, kind(s.daily), s.symbol)
}

// ResetToLatest moves the cursor to the final candle, used by live trading
// where the present is the point of interest
func (s *Series) ResetToLatest() {
	s.cursor = len(s.candles) - 1
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func kind(daily bool) string {
	if daily {
		return "daily"
	}
	return "minute"
}

// Current returns the candle at the cursor
func (s *Series) Current() (Candle, error) {
	return s.Lookback(0)
}

// Lookback returns the candle offset bars behind the cursor. Offsets must be
// <= 0; zero is the current bar, -1 the one before it. On a daily series the
// index shifts one further back because today's session is incomplete
func (s *Series) Lookback(offset int) (Candle, error) {
	if offset > 0 {
		return Candle{}, fmt.Errorf("%w: offset %v must be <= 0", ErrOffsetOutOfRange, offset)
	}
	index := s.cursor + offset
	if s.daily {
		index--
	}
	if index < 0 || index >= len(s.candles) {
		return Candle{}, fmt.Errorf("%w: index %v with %v candles for %v", ErrOffsetOutOfRange, index, len(s.candles), s.symbol)
	}
	return s.candles[index], nil
}

// LastClose returns the final close held, the recoverable fallback for when
// a cursor has run past the end of data
func (s *Series) LastClose() float64 {
	if len(s.candles) == 0 {
		return 0
	}
	return s.candles[len(s.candles)-1].Close
}

// SimpleMovingAverage is the arithmetic mean of field over the duration
// candles ending at the cursor inclusive
func (s *Series) SimpleMovingAverage(duration int, field Field) (float64, error) {
	values, err := s.Values(duration, field)
	if err != nil {
		return 0, err
	}
	return math.ArithmeticAverage(values), nil
}

// Values returns the field values of the duration candles ending at the
// cursor inclusive, oldest first
func (s *Series) Values(duration int, field Field) ([]float64, error) {
	if duration < 1 {
		return nil, fmt.Errorf("%w, received %v", ErrInvalidDuration, duration)
	}
	start := s.cursor - duration + 1
	if start < 0 || s.cursor >= len(s.candles) {
		return nil, fmt.Errorf("%w: %v %v candles ending at offset %v for %v", ErrOffsetOutOfRange, duration, field, s.cursor, s.symbol)
	}
	values := make([]float64, 0, duration)
	for i := start; i <= s.cursor; i++ {
		switch field {
		case FieldOpen:
			values = append(values, s.candles[i].Open)
		case FieldHigh:
			values = append(values, s.candles[i].High)
		case FieldLow:
			values = append(values, s.candles[i].Low)
		case FieldClose:
			values = append(values, s.candles[i].Close)
		case FieldVolume:
			values = append(values, s.candles[i].Volume)
		}
	}
	return values, nil
}

// Append adds a new bar to the end of the series, used by live trading
func (s *Series) Append(c Candle) {
	s.candles = append(s.candles, c)
}

// AppendSynthetic adds a flat bar at the previous close with zero volume,
// substituted when a live minute's data never arrives
func (s *Series) AppendSynthetic(t time.Time) {
	s.Append(syntheticBar(t, s.LastClose()))
}
