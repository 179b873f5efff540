package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/coin"
	"github.com/iov-one/treasury/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. The amount
// is a human readable base currency value, for example "2.5".
type GenesisAccount struct {
	Address treasury.Address `json:"address"`
	Amount  string           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ treasury.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts treasury.Options, db treasury.KVStore) error {
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	stream, err := opts.Stream(optKey)
	if err != nil {
		return err
	}
	control := NewController(NewBucket())
	for {
		var acct GenesisAccount
		switch err := stream(&acct); {
		case errors.ErrEmpty.Is(err):
			return nil
		case err != nil:
			return errors.Wrap(err, "cannot load account")
		}
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "account address")
		}
		amount, err := coin.ParseAmount(acct.Amount, Decimals)
		if err != nil {
			return errors.Wrapf(err, "account %s amount", acct.Address)
		}
		if err := control.IssueCoins(db, acct.Address, amount); err != nil {
			return errors.Wrapf(err, "account %s", acct.Address)
		}
	}
}
