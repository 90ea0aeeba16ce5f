package portfolio

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/order"
	"github.com/wattsup/stonks/security"
)

// NewLive returns a live portfolio seeded with the broker's reported cash.
// With margin enabled, buys are not constrained by cash on hand and
// AvailableFunds reports broker buying power
func NewLive(ctx context.Context, router OrderRouter, account AccountSource, securities map[string]*security.Security, callback OrderCallback, margin bool) (*Live, error) {
	if router == nil {
		return nil, ErrNilRouter
	}
	if account == nil {
		return nil, ErrNilAccountSource
	}
	if len(securities) == 0 {
		return nil, ErrNoSecurities
	}
	cash, err := account.Cash(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(securities))
	for symbol := range securities {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return &Live{
		Portfolio: Portfolio{
			cash:       cash,
			securities: securities,
			symbols:    symbols,
			callback:   callback,
		},
		router:  router,
		account: account,
		margin:  margin,
		orders:  make(map[string]*order.Order),
	}, nil
}

// AvailableFunds reports broker buying power when margin trading, otherwise
// the cash-only reservation formula
func (l *Live) AvailableFunds() decimal.Decimal {
	if l.margin {
		bp, err := l.account.BuyingPower(context.TODO())
		if err != nil {
			log.Errorf(common.Portfolio, "buying power unavailable: %v", err)
			return l.Portfolio.AvailableFunds()
		}
		return bp
	}
	return l.Portfolio.AvailableFunds()
}

// Buy submits a whole-share market buy to the order router. Without margin,
// a buy that would drive cash negative is dropped with a warning
func (l *Live) Buy(sec *security.Security, shares decimal.Decimal) error {
	return l.submit(sec, shares.Abs().Floor())
}

// BuyValue submits a buy sized by dollar value at the current minute close
func (l *Live) BuyValue(sec *security.Security, value decimal.Decimal) error {
	return l.submit(sec, sharesForValue(sec, value))
}

// Sell submits a whole-share market sell, clamped to the held share count
func (l *Live) Sell(sec *security.Security, shares decimal.Decimal) error {
	return l.submit(sec, clampToHeld(sec, shares.Abs().Floor()).Neg())
}

// SellValue submits a sell sized by dollar value at the current minute
// close, clamped to the held share count
func (l *Live) SellValue(sec *security.Security, value decimal.Decimal) error {
	return l.submit(sec, clampToHeld(sec, sharesForValue(sec, value)).Neg())
}

func clampToHeld(sec *security.Security, shares decimal.Decimal) decimal.Decimal {
	if sec == nil {
		return decimal.Zero
	}
	if shares.GreaterThan(sec.Shares()) {
		return sec.Shares()
	}
	return shares
}

func (l *Live) submit(sec *security.Security, signedShares decimal.Decimal) error {
	if sec == nil {
		return common.ErrNilArguments
	}
	if signedShares.IsZero() {
		return nil
	}
	if signedShares.IsPositive() && !l.margin {
		close := sec.Minute.LastClose()
		if c, err := sec.Minute.Current(); err == nil {
			close = c.Close
		}
		value := signedShares.Mul(decimal.NewFromFloat(close))
		l.m.Lock()
		insufficient := l.cash.Sub(value).IsNegative()
		l.m.Unlock()
		if insufficient {
			log.Warnf(common.Portfolio, "not submitting %v buy for %v shares, would drive cash negative",
				sec.Symbol(), signedShares)
			return nil
		}
	}
	_, err := l.router.SubmitOrder(context.TODO(), sec.Symbol(), signedShares, Market, nil)
	return err
}

// OnTradeUpdate folds one asynchronous broker order event into the ledger.
// Each update is applied atomically; a failure leaves the ledger untouched
// and is reported to the caller for per-event logging. The order callback
// fires after the mutex is released so it may read portfolio state
func (l *Live) OnTradeUpdate(update TradeUpdate) error {
	sec, err := l.Security(update.Symbol)
	if err != nil {
		return fmt.Errorf("trade update %v: %w", update.OrderID, err)
	}
	o, err := l.applyTradeUpdate(sec, update)
	if err != nil {
		return err
	}
	if o != nil {
		l.notify(o)
	}
	return nil
}

// applyTradeUpdate mutates the ledger under the mutex and returns the
// order to report through the callback once the mutex is released
func (l *Live) applyTradeUpdate(sec *security.Security, update TradeUpdate) (*order.Order, error) {
	l.m.Lock()
	defer l.m.Unlock()

	switch update.Event {
	case TradeNew:
		o, err := order.New(update.OrderID, sec, update.SignedShares)
		if err != nil {
			return nil, fmt.Errorf("trade update %v: %w", update.OrderID, err)
		}
		l.orders[update.OrderID] = o
		return o, nil
	case TradePartialFill:
		o, ok := l.orders[update.OrderID]
		if !ok {
			return nil, fmt.Errorf("%w '%v'", ErrUnknownOrderID, update.OrderID)
		}
		executedValue := update.Price.Mul(update.SignedShares)
		satellite, err := o.PartialFill(executedValue, update.SignedShares)
		if err != nil {
			return nil, fmt.Errorf("trade update %v: %w", update.OrderID, err)
		}
		l.cash = l.cash.Sub(satellite.Value())
		return satellite, nil
	case TradeFill:
		o, ok := l.orders[update.OrderID]
		if !ok {
			return nil, fmt.Errorf("%w '%v'", ErrUnknownOrderID, update.OrderID)
		}
		executedValue := update.Price.Mul(update.SignedShares)
		if err := o.Complete(executedValue); err != nil {
			return nil, fmt.Errorf("trade update %v: %w", update.OrderID, err)
		}
		l.cash = l.cash.Sub(o.Value())
		delete(l.orders, update.OrderID)
		return o, nil
	case TradeCancelled, TradeExpired:
		o, ok := l.orders[update.OrderID]
		if !ok {
			return nil, fmt.Errorf("%w '%v'", ErrUnknownOrderID, update.OrderID)
		}
		if err := o.Cancel(); err != nil {
			return nil, fmt.Errorf("trade update %v: %w", update.OrderID, err)
		}
		delete(l.orders, update.OrderID)
		return o, nil
	default:
		log.Warnf(common.Portfolio, "unhandled trade event '%v' for order %v", update.Event, update.OrderID)
		return nil, nil
	}
}

// OpenOrders returns the broker order identifiers still pending
func (l *Live) OpenOrders() []string {
	l.m.Lock()
	defer l.m.Unlock()
	ids := make([]string, 0, len(l.orders))
	for id := range l.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
