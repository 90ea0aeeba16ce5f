package paper

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/portfolio"
)

// New returns a paper broker holding the supplied cash balance
func New(initialCash decimal.Decimal, price PriceFunc) (*Broker, error) {
	if price == nil {
		return nil, ErrNoPriceSource
	}
	return &Broker{
		cash:  initialCash,
		price: price,
	}, nil
}

// SetUpdateHandler attaches the consumer of the simulated order stream.
// Must be called before the first order is submitted
func (b *Broker) SetUpdateHandler(fn func(portfolio.TradeUpdate)) {
	b.m.Lock()
	b.handler = fn
	b.m.Unlock()
}

// SubmitOrder implements the order router. Limit orders fill at their limit
// price, market orders at the price source's current quote. The new and
// fill events are delivered before SubmitOrder returns
func (b *Broker) SubmitOrder(ctx context.Context, symbol string, signedShares decimal.Decimal, orderType portfolio.OrderType, limitPrice *decimal.Decimal) (string, error) {
	b.m.Lock()
	handler := b.handler
	b.counter++
	id := fmt.Sprintf("paper-%d", b.counter)
	b.m.Unlock()
	if handler == nil {
		return "", ErrNoHandler
	}

	var fillPrice decimal.Decimal
	if orderType == portfolio.Limit && limitPrice != nil {
		fillPrice = *limitPrice
	} else {
		quote, err := b.price(symbol)
		if err != nil {
			return "", fmt.Errorf("pricing %v: %w", symbol, err)
		}
		fillPrice = decimal.NewFromFloat(quote)
	}

	handler(portfolio.TradeUpdate{
		Event:        portfolio.TradeNew,
		OrderID:      id,
		Symbol:       symbol,
		SignedShares: signedShares,
	})
	handler(portfolio.TradeUpdate{
		Event:        portfolio.TradeFill,
		OrderID:      id,
		Symbol:       symbol,
		SignedShares: signedShares,
		Price:        fillPrice,
	})

	b.m.Lock()
	b.cash = b.cash.Sub(signedShares.Mul(fillPrice))
	b.m.Unlock()
	return id, nil
}

// Cash implements the account source
func (b *Broker) Cash(ctx context.Context) (decimal.Decimal, error) {
	b.m.Lock()
	defer b.m.Unlock()
	return b.cash, nil
}

// BuyingPower reports the cash balance; the paper venue extends no margin
func (b *Broker) BuyingPower(ctx context.Context) (decimal.Decimal, error) {
	return b.Cash(ctx)
}
