package portfolio

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wattsup/stonks/common"
	"github.com/wattsup/stonks/log"
	"github.com/wattsup/stonks/order"
	"github.com/wattsup/stonks/security"
)

// New returns a portfolio holding initialCash and the supplied securities.
// The callback may be nil when nobody is listening for order updates
func New(initialCash decimal.Decimal, securities map[string]*security.Security, callback OrderCallback) (*Portfolio, error) {
	if initialCash.IsNegative() {
		return nil, fmt.Errorf("%w, received %v", ErrNegativeInitialCash, initialCash)
	}
	if len(securities) == 0 {
		return nil, ErrNoSecurities
	}
	symbols := make([]string, 0, len(securities))
	for symbol := range securities {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return &Portfolio{
		cash:       initialCash,
		securities: securities,
		symbols:    symbols,
		callback:   callback,
	}, nil
}

// Cash returns uncommitted funds
func (p *Portfolio) Cash() decimal.Decimal {
	p.m.Lock()
	defer p.m.Unlock()
	return p.cash
}

// Security returns the tracked security for symbol
func (p *Portfolio) Security(symbol string) (*security.Security, error) {
	s, ok := p.securities[symbol]
	if !ok {
		return nil, fmt.Errorf("%w '%v'", common.ErrUnknownSymbol, symbol)
	}
	return s, nil
}

// Securities returns every tracked security in symbol order
func (p *Portfolio) Securities() []*security.Security {
	out := make([]*security.Security, len(p.symbols))
	for i := range p.symbols {
		out[i] = p.securities[p.symbols[i]]
	}
	return out
}

// Buy enqueues a buy order for whole shares of sec. A zero share request
// after flooring is dropped silently
func (p *Portfolio) Buy(sec *security.Security, shares decimal.Decimal) error {
	return p.place(sec, shares.Abs().Floor())
}

// BuyValue enqueues a buy order sized by dollar value at the current minute
// close, floored to whole shares
func (p *Portfolio) BuyValue(sec *security.Security, value decimal.Decimal) error {
	return p.place(sec, sharesForValue(sec, value))
}

// Sell enqueues a sell order for whole shares of sec
func (p *Portfolio) Sell(sec *security.Security, shares decimal.Decimal) error {
	return p.place(sec, shares.Abs().Floor().Neg())
}

// SellValue enqueues a sell order sized by dollar value at the current
// minute close, floored to whole shares
func (p *Portfolio) SellValue(sec *security.Security, value decimal.Decimal) error {
	return p.place(sec, sharesForValue(sec, value).Neg())
}

func sharesForValue(sec *security.Security, value decimal.Decimal) decimal.Decimal {
	if sec == nil {
		return decimal.Zero
	}
	close := sec.Minute.LastClose()
	if c, err := sec.Minute.Current(); err == nil {
		close = c.Close
	}
	if close == 0 {
		return decimal.Zero
	}
	return value.Abs().Div(decimal.NewFromFloat(close)).Floor()
}

func (p *Portfolio) place(sec *security.Security, signedShares decimal.Decimal) error {
	if sec == nil {
		return common.ErrNilArguments
	}
	if signedShares.IsZero() {
		return nil
	}
	p.m.Lock()
	p.counter++
	id := fmt.Sprintf("sim-%d", p.counter)
	o, err := order.New(id, sec, signedShares)
	if err != nil {
		p.m.Unlock()
		return err
	}
	p.pending = append(p.pending, o)
	p.m.Unlock()
	p.notify(o)
	return nil
}

func (p *Portfolio) notify(o *order.Order) {
	if p.callback != nil {
		p.callback(o)
	}
}

// ProcessPendingOrders executes every pending order against the opening
// price of the bar at the cursor, the first price after the order was
// placed. A buy whose notional cost reaches available cash is cancelled
// rather than allowing the ledger to go negative
func (p *Portfolio) ProcessPendingOrders() error {
	p.m.Lock()
	pending := p.pending
	p.pending = nil
	p.m.Unlock()

	for _, o := range pending {
		current, err := o.Security().Minute.Current()
		if err != nil {
			return fmt.Errorf("executing order %v for %v: %w", o.ID(), o.Security().Symbol(), err)
		}
		cost := o.Shares().Mul(decimal.NewFromFloat(current.Open))
		p.m.Lock()
		if cost.LessThan(p.cash) {
			p.cash = p.cash.Sub(cost)
			err = o.Complete(cost)
		} else {
			log.Debugf(common.Portfolio, "cancelling order %v for %v, cost %v exceeds cash %v",
				o.ID(), o.Security().Symbol(), cost, p.cash)
			err = o.Cancel()
		}
		p.m.Unlock()
		if err != nil {
			return fmt.Errorf("executing order %v for %v: %w", o.ID(), o.Security().Symbol(), err)
		}
		p.notify(o)
	}
	return nil
}

// AvailableFunds is cash minus the value reserved by pending buys. Pending
// sells free cash on execution so they reserve nothing
func (p *Portfolio) AvailableFunds() decimal.Decimal {
	p.m.Lock()
	defer p.m.Unlock()
	value := p.cash
	for _, o := range p.pending {
		if o.Value().IsPositive() {
			value = value.Sub(o.Value())
		}
	}
	return value
}

// TotalValue is cash plus the market value of every held security
func (p *Portfolio) TotalValue() decimal.Decimal {
	p.m.Lock()
	value := p.cash
	p.m.Unlock()
	for _, symbol := range p.symbols {
		value = value.Add(p.securities[symbol].MarketValue())
	}
	return value
}

// NextMinute advances every security's minute cursor
func (p *Portfolio) NextMinute() {
	for _, symbol := range p.symbols {
		p.securities[symbol].NextMinute()
	}
}

// MarketClose advances every security's daily cursor and drops day-trade
// eligibility for positions carried across the session boundary
func (p *Portfolio) MarketClose() {
	for _, symbol := range p.symbols {
		p.securities[symbol].MarketClose()
	}
}
