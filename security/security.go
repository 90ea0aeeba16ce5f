package security

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/data/candle"
)

// New returns a security with no holdings bound to its candle series
func New(symbol string, minute, daily *candle.Series) (*Security, error) {
	if minute == nil || daily == nil {
		return nil, fmt.Errorf("%w for %v", ErrNilSeries, symbol)
	}
	return &Security{
		symbol:           symbol,
		Minute:           minute,
		Daily:            daily,
		dayTradeEligible: true,
	}, nil
}

// Symbol returns the symbol tracked
func (s *Security) Symbol() string {
	return s.symbol
}

// Shares returns the currently held share count
func (s *Security) Shares() decimal.Decimal {
	return s.shares
}

// CostBasis returns the cumulative cost of currently held shares
func (s *Security) CostBasis() decimal.Decimal {
	return s.cost
}

// LifetimeProfit returns the total realised profit across all exits
func (s *Security) LifetimeProfit() decimal.Decimal {
	return s.lifetimeProfit
}

// DayTradeEligible reports whether closing the position now would count as
// a day trade. It flips false once the position is carried across a session
// boundary and recovers when the position returns to zero shares
func (s *Security) DayTradeEligible() bool {
	return s.dayTradeEligible
}

// MarketValue is shares multiplied by the current minute close. A cursor
// past the end of data falls back to the last available close, a
// recoverable edge rather than a failure
func (s *Security) MarketValue() decimal.Decimal {
	if s.shares.IsZero() {
		return decimal.Zero
	}
	c, err := s.Minute.Current()
	if err != nil {
		return s.shares.Mul(decimal.NewFromFloat(s.Minute.LastClose()))
	}
	return s.shares.Mul(decimal.NewFromFloat(c.Close))
}

// ApplyTransaction folds an executed order into the ledger. Positive
// signedShares buy, accumulating cost basis and returning no profit.
// Negative signedShares sell, removing a pro-rata slice of the cost basis
// and returning the realised profit of the slice
func (s *Security) ApplyTransaction(signedShares, executedValue decimal.Decimal) (*decimal.Decimal, error) {
	if signedShares.IsZero() {
		return nil, nil
	}
	if signedShares.IsPositive() {
		s.cost = s.cost.Add(executedValue.Abs())
		s.shares = s.shares.Add(signedShares)
		return nil, nil
	}

	quantity := signedShares.Abs()
	if quantity.GreaterThan(s.shares) {
		return nil, fmt.Errorf("%w: selling %v of %v held %v", ErrNegativeHoldings, quantity, s.symbol, s.shares)
	}
	proRataCost := s.cost.Mul(quantity).Div(s.shares)
	s.cost = s.cost.Sub(proRataCost)
	profit := executedValue.Abs().Sub(proRataCost)
	s.lifetimeProfit = s.lifetimeProfit.Add(profit)
	s.shares = s.shares.Sub(quantity)
	if s.shares.IsZero() {
		s.dayTradeEligible = true
	}
	return &profit, nil
}

// NextMinute advances the minute cursor
func (s *Security) NextMinute() {
	s.Minute.Next()
}

// MarketClose advances the daily cursor. A position still open across the
// session boundary loses day-trade eligibility until it returns to flat
func (s *Security) MarketClose() {
	if !s.shares.IsZero() {
		s.dayTradeEligible = false
	}
	s.Daily.Next()
}
