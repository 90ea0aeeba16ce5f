package config

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/strategies/base"
)

var (
	errNoStrategySet   = errors.New("no strategy set")
	errNoSymbols       = errors.New("no symbols set")
	errNoDataDirectory = errors.New("no data directory set")
	errBadDateRange    = errors.New("start date must precede end date")
	errBadInitialCash  = errors.New("initial cash must be positive")
	errBadGracePeriod  = errors.New("grace period must not be negative")
)

// Config defines one simulation or live trading run
type Config struct {
	StrategySettings  StrategySettings  `json:"strategy-settings"`
	DataSettings      DataSettings      `json:"data-settings"`
	PortfolioSettings PortfolioSettings `json:"portfolio-settings"`
	LiveSettings      LiveSettings      `json:"live-settings"`
}

// StrategySettings contains what strategy to load and how to parameterise
// it. CustomSettings overrides the strategy's defaults; Ranges overrides
// the grid searched by the optimiser and walk forward tuning
type StrategySettings struct {
	Name           string      `json:"name"`
	CustomSettings base.Params `json:"custom-settings,omitempty"`
	Ranges         base.Ranges `json:"ranges,omitempty"`
	WalkForward    bool        `json:"walk-forward"`
}

// DataSettings describes where candles come from and the simulated window
type DataSettings struct {
	CSVDirectory string    `json:"csv-directory"`
	Symbols      []string  `json:"symbols"`
	StartDate    time.Time `json:"start-date"`
	EndDate      time.Time `json:"end-date"`
}

// PortfolioSettings seeds the simulated account
type PortfolioSettings struct {
	InitialCash  decimal.Decimal `json:"initial-cash"`
	PreStartDays int             `json:"pre-start-days,omitempty"`
}

// LiveSettings only applies to live trading runs
type LiveSettings struct {
	Margin             bool `json:"margin"`
	GracePeriodSeconds int  `json:"grace-period-seconds,omitempty"`
}
