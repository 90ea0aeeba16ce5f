package engine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/data"
	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/portfolio"
	"github.com/wattsup/stonks/strategies"
	"github.com/wattsup/stonks/strategies/base"
)

var (
	// ErrNilStrategy occurs when a backtest is built without a strategy
	ErrNilStrategy = errors.New("nil strategy received")
	// ErrNilPortfolio occurs when a backtest is built without a portfolio
	ErrNilPortfolio = errors.New("nil portfolio received")
	// ErrNoSessions occurs when a backtest is built without a calendar
	ErrNoSessions = errors.New("no trading sessions received")

	errNilConfig         = errors.New("nil run config received")
	errNilDataSource     = errors.New("nil data source received")
	errNilCalendarSource = errors.New("nil calendar source received")
	errNoSymbols         = errors.New("no symbols received")
)

// defaultPreStartDays pads the loaded history before the simulated range so
// moving average lookbacks are warm on the first simulated minute
const defaultPreStartDays = 50

// BackTest steps a portfolio and strategy pair across a calendar of trading
// sessions one minute at a time, then reduces the run to a report
type BackTest struct {
	strategy  strategies.Handler
	portfolio *portfolio.Portfolio
	sessions  []calendar.Session
	optimiser base.Optimiser
	testCase  string
}

// RunConfig describes everything needed to assemble a backtest from data
type RunConfig struct {
	Source       data.Source
	Calendar     calendar.Source
	Symbols      []string
	Start        time.Time
	End          time.Time
	PreStartDays int
	InitialCash  decimal.Decimal
	StrategyName string
	Params       base.Params
	WalkForward  bool
	Silent       bool
	Callback     portfolio.OrderCallback
	Optimiser    base.Optimiser
	TestCase     string
}
