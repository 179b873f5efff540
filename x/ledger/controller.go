package ledger

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/coin"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x/cash"
)

// Controller is the ledger functionality used by the handlers of this
// package and by other extensions (exchange).
type Controller interface {
	// IssueInitialSupply creates the ledger state and credits the whole
	// supply to the holding account. It can be called only once.
	IssueInitialSupply(db treasury.KVStore, state *State) error

	// Transfer moves amount from one account to another.
	Transfer(db treasury.KVStore, from, to treasury.Address, amount uint64) error

	// Approve sets the amount spender is allowed to move on behalf of
	// the owner. Any previous grant is overwritten.
	Approve(db treasury.KVStore, owner, spender treasury.Address, amount uint64) error

	// TransferFrom moves amount from the owner account using the grant
	// of the spender.
	TransferFrom(db treasury.KVStore, spender, owner, to treasury.Address, amount uint64) error

	// DepositReserve records base currency paid into the holding wallet.
	DepositReserve(db treasury.KVStore, amount uint64) error

	// WithdrawReserve moves the whole reserve to the owner base currency
	// wallet and returns the withdrawn amount.
	WithdrawReserve(db treasury.KVStore, caller treasury.Address) (uint64, error)

	BalanceOf(db treasury.ReadOnlyKVStore, addr treasury.Address) (uint64, error)
	Allowance(db treasury.ReadOnlyKVStore, owner, spender treasury.Address) (uint64, error)
	TotalSupply(db treasury.ReadOnlyKVStore) (uint64, error)
	State(db treasury.ReadOnlyKVStore) (*State, error)
}

// BaseController keeps ledger balances in its own buckets and the base
// currency reserve in the cash extension.
type BaseController struct {
	bucket Bucket
	cash   cash.Controller
}

var _ Controller = BaseController{}

// NewController returns a ledger controller that settles the reserve
// through the given cash controller.
func NewController(bucket Bucket, cashCtrl cash.Controller) BaseController {
	return BaseController{bucket: bucket, cash: cashCtrl}
}

func (c BaseController) IssueInitialSupply(db treasury.KVStore, state *State) error {
	switch err := c.bucket.state.Has(db, stateKey); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "supply already issued")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := state.Validate(); err != nil {
		return errors.Wrap(err, "ledger state")
	}
	// The reserve is always accumulated from purchases.
	state.ReserveBalance = 0
	if err := c.bucket.state.Put(db, stateKey, state); err != nil {
		return errors.Wrap(err, "cannot save state")
	}
	holding := &Account{Balance: state.TotalSupply}
	if err := c.bucket.accounts.Put(db, HoldingAddress(), holding); err != nil {
		return errors.Wrap(err, "cannot credit holding account")
	}
	return nil
}

func (c BaseController) Transfer(db treasury.KVStore, from, to treasury.Address, amount uint64) error {
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return c.move(db, from, to, amount)
}

// move debits one account and credits the other. All checks are done
// before anything is written.
func (c BaseController) move(db treasury.KVStore, from, to treasury.Address, amount uint64) error {
	sender, err := c.account(db, from)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%s holds %d, %d needed", from, sender.Balance, amount)
	}
	if amount == 0 || from.Equals(to) {
		return nil
	}
	recipient, err := c.account(db, to)
	if err != nil {
		return err
	}
	total, err := coin.Add(recipient.Balance, amount)
	if err != nil {
		return errors.Wrap(err, "recipient balance")
	}
	sender.Balance -= amount
	recipient.Balance = total
	if err := c.bucket.accounts.Put(db, from, sender); err != nil {
		return err
	}
	return c.bucket.accounts.Put(db, to, recipient)
}

func (c BaseController) Approve(db treasury.KVStore, owner, spender treasury.Address, amount uint64) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	return c.bucket.allowances.Put(db, allowanceKey(owner, spender), &Allowance{Amount: amount})
}

func (c BaseController) TransferFrom(db treasury.KVStore, spender, owner, to treasury.Address, amount uint64) error {
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}

	key := allowanceKey(owner, spender)
	var grant Allowance
	switch err := c.bucket.allowances.One(db, key, &grant); {
	case errors.ErrNotFound.Is(err):
		// No grant is the same as a zero grant.
	case err != nil:
		return err
	}
	if grant.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAllowance, "%s granted %d to %s, %d needed", owner, grant.Amount, spender, amount)
	}
	if err := c.move(db, owner, to, amount); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	grant.Amount -= amount
	return c.bucket.allowances.Put(db, key, &grant)
}

func (c BaseController) DepositReserve(db treasury.KVStore, amount uint64) error {
	state, err := c.State(db)
	if err != nil {
		return err
	}
	total, err := coin.Add(state.ReserveBalance, amount)
	if err != nil {
		return errors.Wrap(err, "reserve")
	}
	state.ReserveBalance = total
	return c.bucket.state.Put(db, stateKey, state)
}

func (c BaseController) WithdrawReserve(db treasury.KVStore, caller treasury.Address) (uint64, error) {
	state, err := c.State(db)
	if err != nil {
		return 0, err
	}
	if !state.Owner.Equals(caller) {
		return 0, errors.Wrap(errors.ErrUnauthorized, "only the owner can withdraw the reserve")
	}
	amount := state.ReserveBalance
	if amount == 0 {
		return 0, nil
	}
	if err := c.cash.MoveCoins(db, HoldingAddress(), state.Owner, amount); err != nil {
		return 0, errors.Wrap(err, "cannot release reserve")
	}
	state.ReserveBalance = 0
	if err := c.bucket.state.Put(db, stateKey, state); err != nil {
		return 0, err
	}
	return amount, nil
}

func (c BaseController) BalanceOf(db treasury.ReadOnlyKVStore, addr treasury.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	acc, err := c.account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (c BaseController) Allowance(db treasury.ReadOnlyKVStore, owner, spender treasury.Address) (uint64, error) {
	var grant Allowance
	switch err := c.bucket.allowances.One(db, allowanceKey(owner, spender), &grant); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return grant.Amount, nil
}

func (c BaseController) TotalSupply(db treasury.ReadOnlyKVStore) (uint64, error) {
	state, err := c.State(db)
	if err != nil {
		return 0, err
	}
	return state.TotalSupply, nil
}

// State returns the ledger state. It fails with ErrState if the supply
// was never issued.
func (c BaseController) State(db treasury.ReadOnlyKVStore) (*State, error) {
	var state State
	switch err := c.bucket.state.One(db, stateKey, &state); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrState, "ledger not initialized")
	case err != nil:
		return nil, err
	}
	return &state, nil
}

// IterateBalances calls fn with every account holding a non zero balance,
// ordered by address.
func (c BaseController) IterateBalances(db treasury.ReadOnlyKVStore, fn func(treasury.Address, uint64) error) error {
	return c.bucket.accounts.Iterate(db, nil, func() orm.Model { return &Account{} }, func(key []byte, m orm.Model) error {
		acc := m.(*Account)
		if acc.Balance == 0 {
			return nil
		}
		return fn(treasury.Address(key), acc.Balance)
	})
}

func (c BaseController) account(db treasury.ReadOnlyKVStore, addr treasury.Address) (*Account, error) {
	var acc Account
	switch err := c.bucket.accounts.One(db, addr, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, err
	}
}
