package calendar

import (
	"fmt"
	"time"
)

// NewWeekdays returns a weekday calendar at regular US equity hours,
// 09:30 to 16:00 eastern
func NewWeekdays() (*Weekdays, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return &Weekdays{
		OpenHour:    9,
		OpenMinute:  30,
		CloseHour:   16,
		CloseMinute: 0,
		Location:    loc,
	}, nil
}

// Sessions implements the Source interface
func (w *Weekdays) Sessions(start, end time.Time) ([]Session, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v to %v", ErrInvalidDateRange, start, end)
	}
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	var sessions []Session
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	for !day.After(last) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			sessions = append(sessions, Session{
				Date:  day,
				Open:  time.Date(day.Year(), day.Month(), day.Day(), w.OpenHour, w.OpenMinute, 0, 0, loc),
				Close: time.Date(day.Year(), day.Month(), day.Day(), w.CloseHour, w.CloseMinute, 0, 0, loc),
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: %v to %v", ErrNoSessions, start, end)
	}
	return sessions, nil
}

// Minutes expands a session into its per-minute timestamps, open inclusive
// and close exclusive
func (s Session) Minutes() []time.Time {
	var minutes []time.Time
	for t := s.Open; t.Before(s.Close); t = t.Add(time.Minute) {
		minutes = append(minutes, t)
	}
	return minutes
}

// MinuteGrid expands every session into a single ordered timestamp grid,
// the alignment target for minute candle series
func MinuteGrid(sessions []Session) []time.Time {
	var grid []time.Time
	for i := range sessions {
		grid = append(grid, sessions[i].Minutes()...)
	}
	return grid
}

// DateGrid returns each session date, the alignment target for daily series
func DateGrid(sessions []Session) []time.Time {
	grid := make([]time.Time, len(sessions))
	for i := range sessions {
		grid[i] = sessions[i].Date
	}
	return grid
}
