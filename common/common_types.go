package common

import (
	"errors"

	"github.com/wattsup/stonks/log"
)

// DecimalPlaces is the display precision for money amounts
const DecimalPlaces = 2

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilPortfolio occurs when a portfolio is required but not set
	ErrNilPortfolio = errors.New("nil portfolio received")
	// ErrUnknownSymbol occurs when a symbol is not held by the portfolio
	ErrUnknownSymbol = errors.New("unknown symbol")
)

var (
	// Backtest is the simulation driver sublogger
	Backtest *log.SubLogger
	// Portfolio is the portfolio sublogger
	Portfolio *log.SubLogger
	// Strategy is the strategy sublogger
	Strategy *log.SubLogger
	// Optimise is the grid search sublogger
	Optimise *log.SubLogger
	// Livetrader is the live trading sublogger
	Livetrader *log.SubLogger
	// Config is the configuration sublogger
	Config *log.SubLogger
	// Data is the candle loading sublogger
	Data *log.SubLogger
)
