package paper

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/portfolio"
)

func fixedPrice(price float64) PriceFunc {
	return func(string) (float64, error) {
		return price, nil
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(decimal.NewFromInt(1000), nil)
	if !errors.Is(err, ErrNoPriceSource) {
		t.Errorf("received: %v, expected: %v", err, ErrNoPriceSource)
	}
	b, err := New(decimal.NewFromInt(1000), fixedPrice(10))
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	cash, err := b.Cash(context.Background())
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if !cash.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("received: %v, expected: %v", cash, 1000)
	}
}

func TestSubmitOrderRequiresHandler(t *testing.T) {
	t.Parallel()
	b, err := New(decimal.NewFromInt(1000), fixedPrice(10))
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	_, err = b.SubmitOrder(context.Background(), "TSLA", decimal.NewFromInt(1), portfolio.Market, nil)
	if !errors.Is(err, ErrNoHandler) {
		t.Errorf("received: %v, expected: %v", err, ErrNoHandler)
	}
}

func TestSubmitOrder(t *testing.T) {
	t.Parallel()
	b, err := New(decimal.NewFromInt(1000), fixedPrice(10))
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	var updates []portfolio.TradeUpdate
	b.SetUpdateHandler(func(u portfolio.TradeUpdate) {
		updates = append(updates, u)
	})

	id, err := b.SubmitOrder(context.Background(), "TSLA", decimal.NewFromInt(5), portfolio.Market, nil)
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if id == "" {
		t.Fatal("received empty order id")
	}
	// a market order fills in full immediately: one new, one fill
	if len(updates) != 2 {
		t.Fatalf("received: %v updates, expected: %v", len(updates), 2)
	}
	if updates[0].Event != portfolio.TradeNew || updates[1].Event != portfolio.TradeFill {
		t.Errorf("received: %v then %v, expected new then fill", updates[0].Event, updates[1].Event)
	}
	if updates[1].OrderID != id {
		t.Errorf("received: %v, expected: %v", updates[1].OrderID, id)
	}
	if !updates[1].Price.Equal(decimal.NewFromInt(10)) {
		t.Errorf("received: %v, expected: %v", updates[1].Price, 10)
	}

	cash, err := b.Cash(context.Background())
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if !cash.Equal(decimal.NewFromInt(950)) {
		t.Errorf("received: %v, expected: %v", cash, 950)
	}

	// sells return cash to the account
	if _, err = b.SubmitOrder(context.Background(), "TSLA", decimal.NewFromInt(-5), portfolio.Market, nil); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	cash, err = b.Cash(context.Background())
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if !cash.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("received: %v, expected: %v", cash, 1000)
	}
}

func TestSubmitOrderLimit(t *testing.T) {
	t.Parallel()
	b, err := New(decimal.NewFromInt(1000), fixedPrice(10))
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	var fillPrice decimal.Decimal
	b.SetUpdateHandler(func(u portfolio.TradeUpdate) {
		if u.Event == portfolio.TradeFill {
			fillPrice = u.Price
		}
	})
	limit := decimal.NewFromInt(9)
	if _, err = b.SubmitOrder(context.Background(), "TSLA", decimal.NewFromInt(1), portfolio.Limit, &limit); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if !fillPrice.Equal(limit) {
		t.Errorf("received: %v, expected: %v", fillPrice, limit)
	}
}
