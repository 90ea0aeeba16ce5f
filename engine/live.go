package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/data"
	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/portfolio"
)

// NewTrader validates the supplied config and returns a live trader ready
// to run
func NewTrader(cfg *TraderConfig) (*Trader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: trader config", errNilConfig)
	}
	if cfg.Strategy == nil {
		return nil, ErrNilStrategy
	}
	if cfg.Portfolio == nil {
		return nil, ErrNilLivePortfolio
	}
	if cfg.Source == nil {
		return nil, ErrNilLiveSource
	}
	if cfg.Calendar == nil {
		return nil, errNilCalendarSource
	}
	t := &Trader{
		strategy:      cfg.Strategy,
		portfolio:     cfg.Portfolio,
		source:        cfg.Source,
		calendar:      cfg.Calendar,
		optimiser:     cfg.Optimiser,
		gracePeriod:   cfg.GracePeriod,
		checkInterval: cfg.CheckInterval,
		minuteOffset:  cfg.MinuteOffset,
		shutdown:      make(chan struct{}),
	}
	if t.gracePeriod <= 0 {
		t.gracePeriod = defaultGracePeriod
	}
	if t.checkInterval <= 0 {
		t.checkInterval = defaultCheckInterval
	}
	if t.minuteOffset <= 0 {
		t.minuteOffset = defaultMinuteOffset
	}
	return t, nil
}

// Run drives the strategy once per market minute until the context is
// cancelled or Stop is called. A failure handling any single minute is
// logged and the loop carries on to the next one
func (t *Trader) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&t.started, 0, 1) {
		return ErrAlreadyRunning
	}
	defer atomic.StoreInt32(&t.started, 0)
	if err := t.strategy.Setup(t.portfolio); err != nil {
		return err
	}
	for _, sec := range t.portfolio.Securities() {
		sec.Minute.ResetToLatest()
		sec.Daily.ResetToLatest()
	}
	log.Infof(common.Livetrader, "running strategy %v against live data", t.strategy.Name())

	lastWeek := -1
	closedDate := time.Time{}
	for {
		minute, err := t.waitForMinute(ctx)
		if err != nil {
			if errors.Is(err, errShutdown) {
				log.Infoln(common.Livetrader, "trader stopped")
				return nil
			}
			return err
		}
		session, tradable, err := t.sessionFor(minute)
		if err != nil {
			log.Errorf(common.Livetrader, "could not resolve session for %v: %v", minute, err)
			continue
		}
		if !tradable {
			if session != nil && !minute.Before(session.Close) && !sameDay(closedDate, session.Date) {
				t.portfolio.MarketClose()
				closedDate = session.Date
				log.Infof(common.Livetrader, "market closed for %v", session.Date.Format("2006-01-02"))
			}
			continue
		}
		if _, week := minute.ISOWeek(); week != lastWeek {
			if lastWeek != -1 {
				if err = t.strategy.OnWeek(ctx, t.optimiser, mondayOf(session.Date)); err != nil {
					log.Errorf(common.Livetrader, "weekly handler failed for week of %v: %v", mondayOf(session.Date).Format("2006-01-02"), err)
				}
			}
			lastWeek = week
		}
		t.appendBars(ctx, minute)
		if err = t.strategy.OnMinute(minute); err != nil {
			log.Errorf(common.Livetrader, "strategy failed at %v: %v", minute, err)
		}
	}
}

// Stop signals the run loop to unwind. Safe to call repeatedly and from
// any goroutine
func (t *Trader) Stop() {
	t.stopOnce.Do(func() {
		close(t.shutdown)
	})
}

// HandleTradeUpdate folds a broker order update into the live portfolio.
// Intended to be called from the broker stream consumer
func (t *Trader) HandleTradeUpdate(update portfolio.TradeUpdate) {
	if err := t.portfolio.OnTradeUpdate(update); err != nil {
		log.Errorf(common.Livetrader, "could not apply %v update for order %v: %v", update.Event, update.OrderID, err)
		return
	}
	log.Debugf(common.Livetrader, "applied %v update for order %v", update.Event, update.OrderID)
}

// waitForMinute blocks until shortly after the next minute boundary and
// returns that boundary
func (t *Trader) waitForMinute(ctx context.Context) (time.Time, error) {
	minute := time.Now().Truncate(time.Minute).Add(time.Minute)
	timer := time.NewTimer(time.Until(minute.Add(t.minuteOffset)))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case <-t.shutdown:
		return time.Time{}, errShutdown
	case <-timer.C:
		return minute, nil
	}
}

// sessionFor returns the trading session containing the supplied minute, if
// any, and whether the minute falls within market hours
func (t *Trader) sessionFor(minute time.Time) (*calendar.Session, bool, error) {
	sessions, err := t.calendar.Sessions(minute, minute)
	if err != nil {
		if errors.Is(err, calendar.ErrNoSessions) {
			return nil, false, nil
		}
		return nil, false, err
	}
	s := sessions[0]
	tradable := !minute.Before(s.Open) && minute.Before(s.Close)
	return &s, tradable, nil
}

// appendBars fetches the bar for each security at the supplied minute,
// polling within the grace period and falling back to a synthetic flat bar
// when the provider never publishes one
func (t *Trader) appendBars(ctx context.Context, minute time.Time) {
	deadline := time.Now().Add(t.gracePeriod)
	for _, sec := range t.portfolio.Securities() {
		var appended bool
		for {
			bar, err := t.source.LatestBar(ctx, sec.Symbol(), minute)
			if err == nil {
				sec.Minute.Append(bar)
				appended = true
				break
			}
			if !errors.Is(err, data.ErrNoData) || time.Now().After(deadline) {
				if !errors.Is(err, data.ErrNoData) {
					log.Errorf(common.Livetrader, "could not fetch %v bar for %v: %v", sec.Symbol(), minute, err)
				}
				break
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(t.checkInterval):
			}
		}
		if !appended {
			log.Warnf(common.Livetrader, "no %v bar for %v within grace period, substituting flat bar", sec.Symbol(), minute)
			sec.Minute.AppendSynthetic(minute)
		}
		sec.NextMinute()
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
