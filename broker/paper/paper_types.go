package paper

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/portfolio"
)

var (
	// ErrNoPriceSource occurs when a broker is created without a way to
	// price fills
	ErrNoPriceSource = errors.New("no price source received")
	// ErrNoHandler occurs when an order is submitted before an update
	// handler is attached
	ErrNoHandler = errors.New("no trade update handler attached")
)

// PriceFunc resolves the current market price for a symbol
type PriceFunc func(symbol string) (float64, error)

// Broker simulates an execution venue in process. Market orders fill
// immediately and in full at the supplied price source; the resulting trade
// updates are delivered synchronously to the attached handler, mirroring
// how a real broker's order stream is consumed
type Broker struct {
	m       sync.Mutex
	cash    decimal.Decimal
	price   PriceFunc
	handler func(portfolio.TradeUpdate)
	counter int64
}
