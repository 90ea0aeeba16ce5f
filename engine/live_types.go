package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/wattsup/stonks/data"
	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/portfolio"
	"github.com/wattsup/stonks/strategies"
	"github.com/wattsup/stonks/strategies/base"
)

var (
	// ErrNilLivePortfolio occurs when a trader is built without a live portfolio
	ErrNilLivePortfolio = errors.New("nil live portfolio received")
	// ErrNilLiveSource occurs when a trader is built without a bar source
	ErrNilLiveSource = errors.New("nil live data source received")
	// ErrAlreadyRunning occurs when a trader is started twice
	ErrAlreadyRunning = errors.New("trader already running")

	errShutdown = errors.New("shutdown requested")
)

const (
	// defaultGracePeriod bounds how long a minute's bar is waited on before
	// a synthetic flat bar is substituted
	defaultGracePeriod = 30 * time.Second
	// defaultCheckInterval is how often the bar source is polled within the
	// grace period
	defaultCheckInterval = time.Second
	// defaultMinuteOffset delays the strategy invocation past the minute
	// boundary so the data provider has a chance to publish the bar
	defaultMinuteOffset = 5 * time.Second
)

// LiveRunConfig extends a run config with the broker surfaces a live
// session needs. Start and End are ignored; history is loaded trailing the
// present
type LiveRunConfig struct {
	RunConfig
	Bars        data.LiveSource
	Router      portfolio.OrderRouter
	Account     portfolio.AccountSource
	Margin      bool
	GracePeriod time.Duration
}

// TraderConfig assembles a live trading session
type TraderConfig struct {
	Strategy      strategies.Handler
	Portfolio     *portfolio.Live
	Source        data.LiveSource
	Calendar      calendar.Source
	Optimiser     base.Optimiser
	GracePeriod   time.Duration
	CheckInterval time.Duration
	MinuteOffset  time.Duration
}

// Trader runs a strategy against live minute bars. Failures are caught at
// the per-event boundary and logged; the loop only stops on shutdown
type Trader struct {
	strategy      strategies.Handler
	portfolio     *portfolio.Live
	source        data.LiveSource
	calendar      calendar.Source
	optimiser     base.Optimiser
	gracePeriod   time.Duration
	checkInterval time.Duration
	minuteOffset  time.Duration
	started       int32
	stopOnce      sync.Once
	shutdown      chan struct{}
}
