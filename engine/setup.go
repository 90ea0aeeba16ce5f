package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/data/candle"
	"github.com/wattsup/stonks/portfolio"
	"github.com/wattsup/stonks/security"
	"github.com/wattsup/stonks/strategies"
)

// NewFromConfig loads candle data, builds fresh securities and a portfolio,
// and assembles a ready-to-run backtest. History is padded PreStartDays of
// calendar days before the simulated range so lookbacks are warm from the
// first minute; cursors start at the first simulated session
func NewFromConfig(ctx context.Context, cfg *RunConfig) (*BackTest, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	preStartDays := cfg.PreStartDays
	if preStartDays <= 0 {
		preStartDays = defaultPreStartDays
	}
	loadStart := cfg.Start.AddDate(0, 0, -preStartDays)

	allSessions, err := cfg.Calendar.Sessions(loadStart, cfg.End)
	if err != nil {
		return nil, err
	}
	simSessions, err := cfg.Calendar.Sessions(cfg.Start, cfg.End)
	if err != nil {
		return nil, err
	}

	securities, err := loadSecurities(ctx, cfg, loadStart, cfg.End, allSessions, simSessions)
	if err != nil {
		return nil, err
	}

	p, err := portfolio.New(cfg.InitialCash, securities, cfg.Callback)
	if err != nil {
		return nil, err
	}

	s, err := strategies.LoadStrategyByName(cfg.StrategyName)
	if err != nil {
		return nil, err
	}
	if len(cfg.Params) > 0 {
		if err = s.SetParams(cfg.Params); err != nil {
			return nil, err
		}
	}
	s.SetSilent(cfg.Silent)
	s.SetWalkForward(cfg.WalkForward)

	bt, err := New(s, p, simSessions)
	if err != nil {
		return nil, err
	}
	bt.SetOptimiser(cfg.Optimiser)
	bt.SetTestCase(cfg.TestCase)
	return bt, nil
}

// NewTraderFromConfig loads trailing history for each symbol, attaches the
// broker surfaces and returns a live trader ready to run. The run config's
// date range is ignored; history is loaded up to the present
func NewTraderFromConfig(ctx context.Context, cfg *LiveRunConfig) (*Trader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: live run config", errNilConfig)
	}
	if err := validateConfig(&cfg.RunConfig); err != nil {
		return nil, err
	}

	preStartDays := cfg.PreStartDays
	if preStartDays <= 0 {
		preStartDays = defaultPreStartDays
	}
	end := time.Now()
	loadStart := end.AddDate(0, 0, -preStartDays)
	sessions, err := cfg.Calendar.Sessions(loadStart, end)
	if err != nil {
		return nil, err
	}

	securities, err := loadSecurities(ctx, &cfg.RunConfig, loadStart, end, sessions, nil)
	if err != nil {
		return nil, err
	}

	p, err := portfolio.NewLive(ctx, cfg.Router, cfg.Account, securities, cfg.Callback, cfg.Margin)
	if err != nil {
		return nil, err
	}

	s, err := strategies.LoadStrategyByName(cfg.StrategyName)
	if err != nil {
		return nil, err
	}
	if len(cfg.Params) > 0 {
		if err = s.SetParams(cfg.Params); err != nil {
			return nil, err
		}
	}
	s.SetWalkForward(cfg.WalkForward)

	return NewTrader(&TraderConfig{
		Strategy:    s,
		Portfolio:   p,
		Source:      cfg.Bars,
		Calendar:    cfg.Calendar,
		Optimiser:   cfg.Optimiser,
		GracePeriod: cfg.GracePeriod,
	})
}

// loadSecurities builds a gap-filled security per symbol over the loaded
// session range. When simSessions is supplied, each series is rewound to
// the first simulated session; otherwise the cursors stay at the latest bar
func loadSecurities(ctx context.Context, cfg *RunConfig, loadStart, loadEnd time.Time, allSessions, simSessions []calendar.Session) (map[string]*security.Security, error) {
	minuteGrid := calendar.MinuteGrid(allSessions)
	dateGrid := calendar.DateGrid(allSessions)

	securities := make(map[string]*security.Security, len(cfg.Symbols))
	for _, symbol := range cfg.Symbols {
		symbol = strings.ToUpper(symbol)
		minuteCandles, dailyCandles, err := cfg.Source.Candles(ctx, symbol, loadStart, loadEnd)
		if err != nil {
			return nil, fmt.Errorf("loading %v: %w", symbol, err)
		}
		minuteSeries, err := candle.NewSeries(symbol, minuteCandles, minuteGrid, false)
		if err != nil {
			return nil, fmt.Errorf("loading %v: %w", symbol, err)
		}
		dailySeries, err := candle.NewSeries(symbol, dailyCandles, dateGrid, true)
		if err != nil {
			return nil, fmt.Errorf("loading %v: %w", symbol, err)
		}
		if len(simSessions) > 0 {
			if err = minuteSeries.Reset(simSessions[0].Open); err != nil {
				return nil, err
			}
			if err = dailySeries.Reset(simSessions[0].Date); err != nil {
				return nil, err
			}
		}
		sec, err := security.New(symbol, minuteSeries, dailySeries)
		if err != nil {
			return nil, err
		}
		securities[symbol] = sec
	}
	return securities, nil
}

func validateConfig(cfg *RunConfig) error {
	if cfg == nil {
		return errNilConfig
	}
	if cfg.Source == nil {
		return errNilDataSource
	}
	if cfg.Calendar == nil {
		return errNilCalendarSource
	}
	if len(cfg.Symbols) == 0 {
		return errNoSymbols
	}
	return nil
}
