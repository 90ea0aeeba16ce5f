package portfolio

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/order"
	"github.com/wattsup/stonks/security"
)

var (
	// ErrNegativeInitialCash occurs when a portfolio starts below zero
	ErrNegativeInitialCash = errors.New("initial cash cannot be negative")
	// ErrNoSecurities occurs when a portfolio is created without holdings to track
	ErrNoSecurities = errors.New("no securities provided")
)

// OrderCallback is invoked on every order state change, carrying fills,
// cancellations and partial-fill satellites to the reporting layer
type OrderCallback func(*order.Order)

// Handler is the portfolio surface a strategy trades against. Backtest and
// live portfolios differ only in execution policy behind it
type Handler interface {
	Buy(sec *security.Security, shares decimal.Decimal) error
	BuyValue(sec *security.Security, value decimal.Decimal) error
	Sell(sec *security.Security, shares decimal.Decimal) error
	SellValue(sec *security.Security, value decimal.Decimal) error
	AvailableFunds() decimal.Decimal
	TotalValue() decimal.Decimal
	Cash() decimal.Decimal
	Security(symbol string) (*security.Security, error)
	Securities() []*security.Security
}

// Portfolio is the backtest cash ledger with self-executing pending orders.
// One portfolio exists per strategy per simulation run, owned exclusively
// by the simulation driver
type Portfolio struct {
	m          sync.Mutex
	cash       decimal.Decimal
	securities map[string]*security.Security
	symbols    []string
	pending    []*order.Order
	callback   OrderCallback
	counter    int
}
