package exchange

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/ledger"
)

// Controller converts base currency into ledger units.
type Controller struct {
	ledger ledger.Controller
	cash   cash.Controller
}

// NewController returns an exchange settling payments with the cash
// controller and units with the ledger controller.
func NewController(l ledger.Controller, c cash.Controller) Controller {
	return Controller{ledger: l, cash: c}
}

// Quote returns the number of ledger units the payment buys. It is a pure
// function of the payment and the current rate.
func (c Controller) Quote(db treasury.ReadOnlyKVStore, paid uint64) (uint64, error) {
	state, err := c.ledger.State(db)
	if err != nil {
		return 0, err
	}
	return paid / state.ExchangeRate, nil
}

// Buy settles a purchase and returns the number of units bought. The
// remainder of the integer division is not refunded.
func (c Controller) Buy(db treasury.KVStore, buyer treasury.Address, paid uint64) (uint64, error) {
	if err := buyer.Validate(); err != nil {
		return 0, errors.Wrap(err, "buyer")
	}
	quote, err := c.Quote(db, paid)
	if err != nil {
		return 0, err
	}
	if quote == 0 {
		return 0, errors.Wrapf(errors.ErrZeroQuote, "%d paid", paid)
	}
	holding := ledger.HoldingAddress()
	available, err := c.ledger.BalanceOf(db, holding)
	if err != nil {
		return 0, err
	}
	if available < quote {
		return 0, errors.Wrapf(errors.ErrInsufficientLedgerReserve, "%d available, %d needed", available, quote)
	}
	if err := c.cash.MoveCoins(db, buyer, holding, paid); err != nil {
		return 0, errors.Wrap(err, "payment")
	}
	if err := c.ledger.DepositReserve(db, paid); err != nil {
		return 0, err
	}
	if err := c.ledger.Transfer(db, holding, buyer, quote); err != nil {
		return 0, err
	}
	return quote, nil
}
