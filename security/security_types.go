package security

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/data/candle"
)

var (
	// ErrNegativeHoldings occurs when a sell would drive held shares below
	// zero. It signals an order sizing bug and is never clamped
	ErrNegativeHoldings = errors.New("transaction would result in negative holdings")
	// ErrNilSeries occurs when a security is created without candle data
	ErrNilSeries = errors.New("nil candle series received")
)

// Security tracks the holdings, cost basis and realised profit of one
// symbol, bound to its minute and daily candle series. Owned exclusively by
// a single portfolio
type Security struct {
	symbol           string
	Minute           *candle.Series
	Daily            *candle.Series
	shares           decimal.Decimal
	cost             decimal.Decimal
	lifetimeProfit   decimal.Decimal
	dayTradeEligible bool
}
