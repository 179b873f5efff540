package ledger

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/coin"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x/cash"
)

const optKey = "ledger"

// Genesis describes the ledger created at chain start. Supply is a human
// readable amount using the ledger decimals. ExchangeRate is the number of
// base currency units paid for the smallest ledger unit.
type Genesis struct {
	Name         string           `json:"name"`
	Symbol       string           `json:"symbol"`
	Decimals     uint32           `json:"decimals"`
	Supply       string           `json:"supply"`
	ExchangeRate string           `json:"exchange_rate"`
	Owner        treasury.Address `json:"owner"`
}

// Initializer creates the ledger and issues the initial supply.
type Initializer struct{}

var _ treasury.Initializer = Initializer{}

func (Initializer) FromGenesis(opts treasury.Options, db treasury.KVStore) error {
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	var g Genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return err
	}
	if g.Decimals > coin.MaxDecimals {
		return errors.Field("Decimals", errors.ErrInput, "must not be greater than %d", coin.MaxDecimals)
	}
	supply, err := coin.ParseAmount(g.Supply, uint8(g.Decimals))
	if err != nil {
		return errors.Wrap(err, "supply")
	}
	rate, err := coin.ParseAmount(g.ExchangeRate, 0)
	if err != nil {
		return errors.Wrap(err, "exchange rate")
	}
	control := NewController(NewBucket(), cash.NewController(cash.NewBucket()))
	state := &State{
		Name:         g.Name,
		Symbol:       g.Symbol,
		Decimals:     g.Decimals,
		TotalSupply:  supply,
		ExchangeRate: rate,
		Owner:        g.Owner,
	}
	return control.IssueInitialSupply(db, state)
}
