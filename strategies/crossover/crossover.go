// Package crossover is the reference moving average crossover strategy.
// It enters fully when the short window average of closing price rises
// above the long window average and exits fully when it falls below; equal
// averages are a no-op in both directions
package crossover

import (
	"fmt"
	"time"

	"github.com/thrasher-corp/gct-ta/indicators"
	"github.com/wattsup/stonks/data/candle"
	"github.com/wattsup/stonks/strategies/base"
)

const (
	// Name is the strategy name
	Name     = "crossover"
	longKey  = "long"
	shortKey = "short"

	description = `Crossover computes a short and a long simple moving average of closing price. A short average above the long average signals momentum worth holding; dropping back below signals the exit`
)

var errInvalidWindow = fmt.Errorf("crossover windows must be >= 1")

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
}

// New returns a crossover strategy with its default windows and the search
// ranges used for tuning
func New() *Strategy {
	s := &Strategy{}
	s.ApplyDefaults(Name,
		base.Params{longKey: 200, shortKey: 50},
		base.Ranges{
			longKey:  {10, 20, 30, 40, 50, 60, 70, 80, 90},
			shortKey: {1, 3, 5, 7, 9, 11, 13, 15, 17, 19},
		})
	return s
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnMinute assesses every tracked security against the new minute's close
func (s *Strategy) OnMinute(t time.Time) error {
	s.SetTimestamp(t)
	long := int(s.Params()[longKey])
	short := int(s.Params()[shortKey])
	if long < 1 || short < 1 {
		return fmt.Errorf("%w, received long %v short %v", errInvalidWindow, long, short)
	}

	p := s.Portfolio()
	for _, sec := range p.Securities() {
		// not enough history for the long window yet
		if sec.Minute.Offset()+1 < long {
			continue
		}
		closes, err := sec.Minute.Values(long, candle.FieldClose)
		if err != nil {
			return err
		}
		shortValues := indicators.SMA(closes, short)
		longValues := indicators.SMA(closes, long)
		shortMA := shortValues[len(shortValues)-1]
		longMA := longValues[len(longValues)-1]

		switch {
		case shortMA > longMA && sec.Shares().IsZero():
			if err = p.BuyValue(sec, p.AvailableFunds()); err != nil {
				return err
			}
			s.Logf("%v short %.4f crossed above long %.4f, entering", sec.Symbol(), shortMA, longMA)
		case shortMA < longMA && sec.Shares().IsPositive():
			if err = p.Sell(sec, sec.Shares()); err != nil {
				return err
			}
			s.Logf("%v short %.4f crossed below long %.4f, exiting", sec.Symbol(), shortMA, longMA)
		}
	}
	return nil
}
