package order

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/security"
)

// Status describes where an order is in its lifecycle
type Status string

// Order lifecycle states. Placed orders either fill, possibly via partials,
// or cancel; both end states are terminal
const (
	Placed    Status = "PLACED"
	Partial   Status = "PARTIAL"
	Complete  Status = "COMPLETE"
	Cancelled Status = "CANCELLED"
)

var (
	// ErrNilSecurity occurs when an order is created without a security
	ErrNilSecurity = errors.New("nil security received")
	// ErrZeroShares occurs when an order is created for zero shares
	ErrZeroShares = errors.New("order for zero shares")
	// ErrInvalidTransition occurs when completing or cancelling an order
	// that already reached a terminal state
	ErrInvalidTransition = errors.New("order already in a terminal state")
)

// Order is a single buy or sell intent and its fill lifecycle. Shares are
// signed, positive to buy and negative to sell. Profit is nil until an exit
// slice realises one
type Order struct {
	id           string
	security     *security.Security
	shares       decimal.Decimal
	filledShares decimal.Decimal
	value        decimal.Decimal
	status       Status
	profit       *decimal.Decimal
}
