package candle

import (
	"errors"
	"time"
)

var (
	// ErrNoCandleData occurs when a series is constructed without any candles
	ErrNoCandleData = errors.New("no candle data provided")
	// ErrOffsetOutOfRange occurs when a lookback reaches before the start of
	// available history or runs past its end
	ErrOffsetOutOfRange = errors.New("offset out of range")
	// ErrInvalidDuration occurs when an averaging window is below one
	ErrInvalidDuration = errors.New("duration must be >= 1")
	// ErrTimestampNotFound occurs when a cursor reset target is not on the grid
	ErrTimestampNotFound = errors.New("timestamp not found in series")
)

// Field selects which component of a candle a calculation runs over
type Field uint8

// Candle value fields
const (
	FieldOpen Field = iota
	FieldHigh
	FieldLow
	FieldClose
	FieldVolume
)

// String implements the stringer interface
func (f Field) String() string {
	switch f {
	case FieldOpen:
		return "open"
	case FieldHigh:
		return "high"
	case FieldLow:
		return "low"
	case FieldClose:
		return "close"
	case FieldVolume:
		return "volume"
	}
	return "unknown"
}

// Candle is a single OHLCV bar, immutable once produced
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered gap-filled candle sequence with a monotonic cursor.
// Lookbacks are relative to the cursor; daily series report one step behind
// the cursor because the in-progress session has not completed yet
type Series struct {
	symbol  string
	daily   bool
	candles []Candle
	cursor  int
}
