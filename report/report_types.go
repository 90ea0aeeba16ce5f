package report

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/strategies/base"
)

// ErrNilReport occurs when a nil report is handed to a sink
var ErrNilReport = errors.New("nil report received")

// Report is the immutable result of one completed simulation run
type Report struct {
	ID            uuid.UUID
	StrategyName  string
	TestCase      string
	Params        base.Params
	Start         time.Time
	End           time.Time
	Duration      time.Duration
	Sessions      int
	DailyReturns  []float64
	ClosingValues []float64
	SharpeRatio   float64
	SortinoRatio  float64
	TotalProfit   decimal.Decimal
	ProfitPercent float64
	// AnnualisedProfitPercent compounds ProfitPercent over a 252 session year
	AnnualisedProfitPercent float64
}

// Handler consumes completed reports and owns all presentation concerns;
// the simulation core never formats output itself
type Handler interface {
	Write(*Report) error
}
