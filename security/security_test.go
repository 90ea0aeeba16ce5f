package security

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/data/candle"
)

func testSecurity(t *testing.T) *Security {
	t.Helper()
	start := time.Date(2021, 6, 7, 9, 30, 0, 0, time.UTC)
	bars := []candle.Candle{
		{Time: start, Open: 100, High: 101, Low: 99, Close: 100, Volume: 10},
		{Time: start.Add(time.Minute), Open: 100, High: 111, Low: 100, Close: 110, Volume: 10},
	}
	minute, err := candle.NewFromAligned("TSLA", bars, false)
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	daily, err := candle.NewFromAligned("TSLA", bars, true)
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	sec, err := New("TSLA", minute, daily)
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	return sec
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New("TSLA", nil, nil)
	if !errors.Is(err, ErrNilSeries) {
		t.Errorf("received: %v, expected: %v", err, ErrNilSeries)
	}
	sec := testSecurity(t)
	if sec.Symbol() != "TSLA" {
		t.Errorf("received: %v, expected: %v", sec.Symbol(), "TSLA")
	}
	if !sec.DayTradeEligible() {
		t.Error("received: false, expected a fresh security to be day trade eligible")
	}
}

func TestApplyTransactionBuy(t *testing.T) {
	t.Parallel()
	sec := testSecurity(t)
	profit, err := sec.ApplyTransaction(decimal.NewFromInt(10), decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if profit != nil {
		t.Errorf("received: %v, expected no profit on a buy", profit)
	}
	if !sec.Shares().Equal(decimal.NewFromInt(10)) {
		t.Errorf("received: %v, expected: %v", sec.Shares(), 10)
	}
	if !sec.CostBasis().Equal(decimal.NewFromInt(1000)) {
		t.Errorf("received: %v, expected: %v", sec.CostBasis(), 1000)
	}
}

func TestApplyTransactionProRataSell(t *testing.T) {
	t.Parallel()
	sec := testSecurity(t)
	// two buys at different prices pool into one cost basis
	if _, err := sec.ApplyTransaction(decimal.NewFromInt(10), decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if _, err := sec.ApplyTransaction(decimal.NewFromInt(10), decimal.NewFromInt(1200)); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}

	// selling half removes half the pooled cost of 2200
	profit, err := sec.ApplyTransaction(decimal.NewFromInt(-10), decimal.NewFromInt(-1300))
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if profit == nil {
		t.Fatal("received: nil, expected realised profit")
	}
	if !profit.Equal(decimal.NewFromInt(200)) {
		t.Errorf("received: %v, expected: %v", profit, 200)
	}
	if !sec.CostBasis().Equal(decimal.NewFromInt(1100)) {
		t.Errorf("received: %v, expected: %v", sec.CostBasis(), 1100)
	}
	if !sec.Shares().Equal(decimal.NewFromInt(10)) {
		t.Errorf("received: %v, expected: %v", sec.Shares(), 10)
	}
	if !sec.LifetimeProfit().Equal(decimal.NewFromInt(200)) {
		t.Errorf("received: %v, expected: %v", sec.LifetimeProfit(), 200)
	}
}

func TestApplyTransactionOversell(t *testing.T) {
	t.Parallel()
	sec := testSecurity(t)
	if _, err := sec.ApplyTransaction(decimal.NewFromInt(5), decimal.NewFromInt(500)); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	_, err := sec.ApplyTransaction(decimal.NewFromInt(-6), decimal.NewFromInt(-600))
	if !errors.Is(err, ErrNegativeHoldings) {
		t.Errorf("received: %v, expected: %v", err, ErrNegativeHoldings)
	}
	// the failed sell must leave the ledger untouched
	if !sec.Shares().Equal(decimal.NewFromInt(5)) {
		t.Errorf("received: %v, expected: %v", sec.Shares(), 5)
	}
	if !sec.CostBasis().Equal(decimal.NewFromInt(500)) {
		t.Errorf("received: %v, expected: %v", sec.CostBasis(), 500)
	}
}

func TestDayTradeEligibility(t *testing.T) {
	t.Parallel()
	sec := testSecurity(t)
	if _, err := sec.ApplyTransaction(decimal.NewFromInt(1), decimal.NewFromInt(100)); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	sec.MarketClose()
	if sec.DayTradeEligible() {
		t.Error("received: true, expected carrying a position overnight to clear eligibility")
	}
	if _, err := sec.ApplyTransaction(decimal.NewFromInt(-1), decimal.NewFromInt(-110)); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if !sec.DayTradeEligible() {
		t.Error("received: false, expected a flat position to restore eligibility")
	}
}

func TestMarketValue(t *testing.T) {
	t.Parallel()
	sec := testSecurity(t)
	if !sec.MarketValue().IsZero() {
		t.Errorf("received: %v, expected: %v", sec.MarketValue(), 0)
	}
	if _, err := sec.ApplyTransaction(decimal.NewFromInt(2), decimal.NewFromInt(200)); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if !sec.MarketValue().Equal(decimal.NewFromInt(200)) {
		t.Errorf("received: %v, expected: %v", sec.MarketValue(), 200)
	}
	// cursor past the end of data falls back to the last close
	sec.NextMinute()
	sec.NextMinute()
	if !sec.MarketValue().Equal(decimal.NewFromInt(220)) {
		t.Errorf("received: %v, expected: %v", sec.MarketValue(), 220)
	}
}
