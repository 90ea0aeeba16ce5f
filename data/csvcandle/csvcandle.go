// Package csvcandle loads candle data from csv files, one file per symbol
// and interval. Minute data lives in <symbol>.csv and daily data in
// <symbol>.daily.csv with rows of timestamp,open,high,low,close,volume
package csvcandle

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wattsup/stonks/data"
	"github.com/wattsup/stonks/data/candle"
)

var (
	// ErrBadRow occurs when a csv row cannot be parsed into a candle
	ErrBadRow = errors.New("malformed candle row")

	errEmptyDirectory = errors.New("csv data directory not set")
)

// Source implements data.Source over a directory of csv files
type Source struct {
	Directory string
}

// New returns a csv candle source rooted at dir
func New(dir string) (*Source, error) {
	if dir == "" {
		return nil, errEmptyDirectory
	}
	return &Source{Directory: dir}, nil
}

// Candles implements the data.Source interface
func (s *Source) Candles(_ context.Context, symbol string, start, end time.Time) (minute, daily []candle.Candle, err error) {
	minute, err = s.load(filepath.Join(s.Directory, strings.ToUpper(symbol)+".csv"), start, end)
	if err != nil {
		return nil, nil, err
	}
	daily, err = s.load(filepath.Join(s.Directory, strings.ToUpper(symbol)+".daily.csv"), start, end)
	if err != nil {
		return nil, nil, err
	}
	if len(minute) == 0 || len(daily) == 0 {
		return nil, nil, fmt.Errorf("%w: %v %v to %v", data.ErrNoData, symbol, start, end)
	}
	return minute, daily, nil
}

func (s *Source) load(path string, start, end time.Time) ([]candle.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", data.ErrNoData, path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	var candles []candle.Candle
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(record[0], "timestamp") {
			continue
		}
		c, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%v line %v: %w", path, line, err)
		}
		if c.Time.Before(start) || c.Time.After(end) {
			continue
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseRow(record []string) (candle.Candle, error) {
	if len(record) != 6 {
		return candle.Candle{}, fmt.Errorf("%w: expected 6 fields, received %v", ErrBadRow, len(record))
	}
	t, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return candle.Candle{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	values := make([]float64, 5)
	for i := range values {
		values[i], err = strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return candle.Candle{}, fmt.Errorf("%w: %v", ErrBadRow, err)
		}
	}
	return candle.Candle{
		Time:   t,
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}
