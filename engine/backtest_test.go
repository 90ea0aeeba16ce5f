package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattsup/stonks/data/calendar"
	"github.com/wattsup/stonks/data/candle"
	"github.com/wattsup/stonks/strategies/base"
)

// flatSource serves a constant price across every calendar minute so a
// simulation's accounting can be asserted exactly
type flatSource struct {
	price float64
}

func (f *flatSource) Candles(_ context.Context, _ string, start, end time.Time) (minute, daily []candle.Candle, err error) {
	w, err := calendar.NewWeekdays()
	if err != nil {
		return nil, nil, err
	}
	sessions, err := w.Sessions(start, end)
	if err != nil {
		return nil, nil, err
	}
	for i := range sessions {
		for _, ts := range sessions[i].Minutes() {
			minute = append(minute, flatBar(ts, f.price))
		}
		daily = append(daily, flatBar(sessions[i].Date, f.price))
	}
	return minute, daily, nil
}

func flatBar(ts time.Time, price float64) candle.Candle {
	return candle.Candle{Time: ts, Open: price, High: price, Low: price, Close: price, Volume: 100}
}

type countingOptimiser struct {
	calls   int
	windows []time.Time
}

func (c *countingOptimiser) BestParams(_ context.Context, _ string, _ base.Ranges, start, _ time.Time) (base.Params, error) {
	c.calls++
	c.windows = append(c.windows, start)
	return base.Params{"long": 3, "short": 1}, nil
}

func testRunConfig() *RunConfig {
	return &RunConfig{
		Source:       &flatSource{price: 100},
		Calendar:     mustWeekdays(),
		Symbols:      []string{"tsla"},
		Start:        time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC),
		PreStartDays: 5,
		InitialCash:  decimal.NewFromInt(10000),
		StrategyName: "crossover",
		Params:       base.Params{"long": 3, "short": 1},
		Silent:       true,
	}
}

func mustWeekdays() *calendar.Weekdays {
	w, err := calendar.NewWeekdays()
	if err != nil {
		panic(err)
	}
	return w
}

func TestNewFromConfigValidation(t *testing.T) {
	t.Parallel()
	_, err := NewFromConfig(context.Background(), nil)
	assert.ErrorIs(t, err, errNilConfig)

	cfg := testRunConfig()
	cfg.Source = nil
	_, err = NewFromConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, errNilDataSource)

	cfg = testRunConfig()
	cfg.Calendar = nil
	_, err = NewFromConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, errNilCalendarSource)

	cfg = testRunConfig()
	cfg.Symbols = nil
	_, err = NewFromConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, errNoSymbols)

	cfg = testRunConfig()
	cfg.StrategyName = "missing"
	_, err = NewFromConfig(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunFlatMarket(t *testing.T) {
	t.Parallel()
	bt, err := NewFromConfig(context.Background(), testRunConfig())
	require.NoError(t, err)

	rep, err := bt.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, "crossover", rep.StrategyName)
	assert.Equal(t, 3, rep.Sessions)
	assert.Len(t, rep.DailyReturns, 3)
	assert.Len(t, rep.ClosingValues, 3)
	// a flat market never crosses, so the ledger never moves
	assert.True(t, rep.TotalProfit.IsZero(), "received %v, expected zero profit", rep.TotalProfit)
	for i := range rep.DailyReturns {
		assert.Zero(t, rep.DailyReturns[i])
	}
	assert.Zero(t, rep.SharpeRatio)
	assert.Zero(t, rep.SortinoRatio)
	assert.Zero(t, rep.AnnualisedProfitPercent)
	assert.False(t, rep.ID.IsNil())
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()
	bt, err := NewFromConfig(context.Background(), testRunConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bt.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWalkForward(t *testing.T) {
	t.Parallel()
	cfg := testRunConfig()
	// thursday through the following tuesday spans two ISO weeks
	cfg.Start = time.Date(2021, 6, 10, 0, 0, 0, 0, time.UTC)
	cfg.End = time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC)
	cfg.WalkForward = true
	opt := &countingOptimiser{}
	cfg.Optimiser = opt

	bt, err := NewFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	rep, err := bt.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Sessions)
	require.Equal(t, 2, opt.calls)
	// each tuning window starts two weeks before its monday; session dates
	// carry the exchange timezone
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	monday := time.Date(2021, 6, 14, 0, 0, 0, 0, loc)
	assert.True(t, opt.windows[1].Equal(monday.AddDate(0, 0, -14)),
		"received %v, expected %v", opt.windows[1], monday.AddDate(0, 0, -14))
}

func TestMondayOf(t *testing.T) {
	t.Parallel()
	wednesday := time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, mondayOf(wednesday))
	assert.Equal(t, monday, mondayOf(monday))
	sunday := time.Date(2021, 6, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, mondayOf(sunday))
}
