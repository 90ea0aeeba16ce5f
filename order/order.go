package order

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/security"
)

// New returns a placed order for signedShares of sec. The notional value is
// taken from the current minute close so pending buys can reserve cash
func New(id string, sec *security.Security, signedShares decimal.Decimal) (*Order, error) {
	if sec == nil {
		return nil, ErrNilSecurity
	}
	if signedShares.IsZero() {
		return nil, fmt.Errorf("%w for %v", ErrZeroShares, sec.Symbol())
	}
	close := sec.Minute.LastClose()
	if c, err := sec.Minute.Current(); err == nil {
		close = c.Close
	}
	return &Order{
		id:       id,
		security: sec,
		shares:   signedShares,
		value:    signedShares.Mul(decimal.NewFromFloat(close)),
		status:   Placed,
	}, nil
}

// ID returns the opaque order identifier
func (o *Order) ID() string {
	return o.id
}

// Security returns the security the order trades
func (o *Order) Security() *security.Security {
	return o.security
}

// Shares returns the signed share quantity
func (o *Order) Shares() decimal.Decimal {
	return o.shares
}

// FilledShares returns the signed quantity filled so far
func (o *Order) FilledShares() decimal.Decimal {
	return o.filledShares
}

// Value returns the order's notional value, replaced with the executed
// value once filled. Sells carry negative values
func (o *Order) Value() decimal.Decimal {
	return o.value
}

// Status returns the lifecycle state
func (o *Order) Status() Status {
	return o.status
}

// Profit returns the realised profit of the order, nil while a position is
// only being increased
func (o *Order) Profit() *decimal.Decimal {
	return o.profit
}

// Complete finalises the remaining unfilled shares at executedValue and
// applies the transaction to the security. executedValue is signed the same
// way as the shares, positive for buys and negative for sells
func (o *Order) Complete(executedValue decimal.Decimal) error {
	if o.status == Complete || o.status == Cancelled {
		return fmt.Errorf("%w: %v is %v", ErrInvalidTransition, o.id, o.status)
	}
	if o.status == Partial {
		o.shares = o.shares.Sub(o.filledShares)
	}
	o.filledShares = o.shares
	profit, err := o.security.ApplyTransaction(o.shares, executedValue)
	if err != nil {
		return err
	}
	o.profit = profit
	o.value = executedValue
	o.status = Complete
	return nil
}

// PartialFill finalises a slice of the order without closing it. The
// returned satellite order carries only the filled portion and exists to
// report the slice's value and profit through the order callback; the
// original order remains pending with its filled quantity accumulated
func (o *Order) PartialFill(executedValue, qty decimal.Decimal) (*Order, error) {
	if o.status == Complete || o.status == Cancelled {
		return nil, fmt.Errorf("%w: %v is %v", ErrInvalidTransition, o.id, o.status)
	}
	profit, err := o.security.ApplyTransaction(qty, executedValue)
	if err != nil {
		return nil, err
	}
	o.status = Partial
	o.filledShares = o.filledShares.Add(qty)
	return &Order{
		id:           o.id,
		security:     o.security,
		shares:       qty,
		filledShares: qty,
		value:        executedValue,
		status:       Partial,
		profit:       profit,
	}, nil
}

// Cancel marks the order dead with no transaction applied
func (o *Order) Cancel() error {
	if o.status == Complete || o.status == Cancelled {
		return fmt.Errorf("%w: %v is %v", ErrInvalidTransition, o.id, o.status)
	}
	o.status = Cancelled
	return nil
}
