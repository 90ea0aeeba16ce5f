// Package engine drives simulations. The backtest half steps a portfolio
// and strategy across historical sessions minute by minute; the live half
// runs the same contract against a real-time event source
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/common/math"
	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/portfolio"
	"github.com/wattsup/stonks/report"
	"github.com/wattsup/stonks/strategies"
	"github.com/wattsup/stonks/strategies/base"
)

// New returns a backtest over the supplied sessions
func New(s strategies.Handler, p *portfolio.Portfolio, sessions []calendar.Session) (*BackTest, error) {
	if s == nil {
		return nil, ErrNilStrategy
	}
	if p == nil {
		return nil, ErrNilPortfolio
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	return &BackTest{
		strategy:  s,
		portfolio: p,
		sessions:  sessions,
	}, nil
}

// SetOptimiser wires the walk-forward optimiser. A nil optimiser leaves
// weekly re-optimisation as a no-op
func (bt *BackTest) SetOptimiser(o base.Optimiser) {
	bt.optimiser = o
}

// SetTestCase labels the resulting report, used by grid search output
func (bt *BackTest) SetTestCase(label string) {
	bt.testCase = label
}

// Run executes the simulation and reduces it to a report. A failure aborts
// the run with the simulation timestamp attached
func (bt *BackTest) Run(ctx context.Context) (*report.Report, error) {
	if err := bt.strategy.Setup(bt.portfolio); err != nil {
		return nil, err
	}
	start := time.Now()
	initialValue := bt.portfolio.TotalValue()

	var (
		dailyReturns  []float64
		closingValues []float64
		lastWeek      = -1
	)
	for i := range bt.sessions {
		session := bt.sessions[i]
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled at %v: %w", session.Date.Format("2006-01-02"), err)
		}
		if _, week := session.Date.ISOWeek(); week != lastWeek {
			monday := mondayOf(session.Date)
			if err := bt.strategy.OnWeek(ctx, bt.optimiser, monday); err != nil {
				return nil, fmt.Errorf("at %v: %w", session.Date.Format("2006-01-02"), err)
			}
			lastWeek = week
		}
		for _, minute := range session.Minutes() {
			if err := bt.portfolio.ProcessPendingOrders(); err != nil {
				return nil, fmt.Errorf("at %v: %w", minute, err)
			}
			if err := bt.strategy.OnMinute(minute); err != nil {
				return nil, fmt.Errorf("at %v: %w", minute, err)
			}
			bt.portfolio.NextMinute()
		}

		value, _ := bt.portfolio.TotalValue().Float64()
		if len(closingValues) > 0 {
			dailyReturns = append(dailyReturns, value/closingValues[len(closingValues)-1]-1)
		} else {
			dailyReturns = append(dailyReturns, 0)
		}
		closingValues = append(closingValues, value)
		bt.portfolio.MarketClose()
	}

	return bt.buildReport(start, initialValue, dailyReturns, closingValues)
}

func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func (bt *BackTest) buildReport(started time.Time, initialValue decimal.Decimal, dailyReturns, closingValues []float64) (*report.Report, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	finalValue := bt.portfolio.TotalValue()
	totalProfit := finalValue.Sub(initialValue)
	initial, _ := initialValue.Float64()
	profitPercent := 0.0
	if initial != 0 {
		profit, _ := totalProfit.Float64()
		profitPercent = profit / initial
	}

	r := &report.Report{
		ID:                      id,
		StrategyName:            bt.strategy.Name(),
		TestCase:                bt.testCase,
		Params:                  bt.strategy.Params(),
		Start:                   bt.sessions[0].Date,
		End:                     bt.sessions[len(bt.sessions)-1].Date,
		Duration:                time.Since(started),
		Sessions:                len(bt.sessions),
		DailyReturns:            dailyReturns,
		ClosingValues:           closingValues,
		SharpeRatio:             math.CalculateSharpeRatio(dailyReturns),
		SortinoRatio:            math.CalculateSortinoRatio(dailyReturns),
		TotalProfit:             totalProfit,
		ProfitPercent:           profitPercent,
		AnnualisedProfitPercent: math.CalculateAnnualisedReturn(profitPercent, len(closingValues)),
	}
	log.Debugf(common.Backtest, "run %v complete in %v, sharpe %.3f sortino %.3f",
		id, r.Duration, r.SharpeRatio, r.SortinoRatio)
	return r, nil
}
