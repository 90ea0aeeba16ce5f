package calendar

import (
	"errors"
	"time"
)

var (
	// ErrInvalidDateRange occurs when the end of a range precedes its start
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrNoSessions occurs when a range contains no trading sessions
	ErrNoSessions = errors.New("no trading sessions in range")
)

// Session is one trading day with its opening and closing timestamps
type Session struct {
	Date  time.Time
	Open  time.Time
	Close time.Time
}

// Source supplies ordered trading sessions for a closed date range
type Source interface {
	Sessions(start, end time.Time) ([]Session, error)
}

// Weekdays is a calendar source of Monday to Friday sessions at fixed
// open and close times. It does not model exchange holidays; holiday bars
// are gap-filled by the candle series instead
type Weekdays struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
	Location    *time.Location
}
