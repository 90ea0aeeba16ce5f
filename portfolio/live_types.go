package portfolio

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/order"
)

var (
	// ErrUnknownOrderID occurs when a trade update references an order the
	// ledger has never seen
	ErrUnknownOrderID = errors.New("unknown order id")
	// ErrNilRouter occurs when a live portfolio is created without a router
	ErrNilRouter = errors.New("nil order router received")
	// ErrNilAccountSource occurs when a live portfolio is created without
	// an account source
	ErrNilAccountSource = errors.New("nil account source received")
)

// OrderType is the execution style requested from the order router
type OrderType string

// Supported order types
const (
	Market OrderType = "MARKET"
	Limit  OrderType = "LIMIT"
)

// TradeEvent is the kind of asynchronous order update a broker reports
type TradeEvent string

// Trade update events, mirroring the broker's order stream
const (
	TradeNew         TradeEvent = "new"
	TradePartialFill TradeEvent = "partial_fill"
	TradeFill        TradeEvent = "fill"
	TradeCancelled   TradeEvent = "canceled"
	TradeExpired     TradeEvent = "expired"
)

// TradeUpdate is one asynchronous order event keyed by the broker's opaque
// order identifier. SignedShares are positive for buys, negative for sells.
// Price is per share
type TradeUpdate struct {
	Event        TradeEvent
	OrderID      string
	Symbol       string
	SignedShares decimal.Decimal
	Price        decimal.Decimal
}

// OrderRouter is the live order submission sink. Fills, partial fills and
// cancellations are reported back asynchronously as TradeUpdates
type OrderRouter interface {
	SubmitOrder(ctx context.Context, symbol string, signedShares decimal.Decimal, orderType OrderType, limitPrice *decimal.Decimal) (string, error)
}

// AccountSource reports broker account state for live trading
type AccountSource interface {
	Cash(ctx context.Context) (decimal.Decimal, error)
	BuyingPower(ctx context.Context) (decimal.Decimal, error)
}

// Live executes through an external order router instead of self-filling.
// The accounting contract is identical to the backtest portfolio; fills
// arrive asynchronously and are folded in atomically per event
type Live struct {
	Portfolio
	router  OrderRouter
	account AccountSource
	margin  bool
	orders  map[string]*order.Order
}
