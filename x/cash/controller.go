package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/coin"
	"github.com/iov-one/treasury/errors"
)

// Controller is the functionality needed by cash.Handler and other
// extensions to move the base currency.
type Controller interface {
	// Balance returns the amount held by given address.
	Balance(treasury.ReadOnlyKVStore, treasury.Address) (uint64, error)

	// MoveCoins moves the amount from src to dest. It fails with
	// ErrInsufficientBalance if src does not hold enough.
	MoveCoins(db treasury.KVStore, src, dest treasury.Address, amount uint64) error

	// IssueCoins credits dest with a new amount.
	IssueCoins(db treasury.KVStore, dest treasury.Address, amount uint64) error
}

// BaseController is a simple implementation of the Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given address. An unknown address
// holds nothing.
func (c BaseController) Balance(db treasury.ReadOnlyKVStore, addr treasury.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db treasury.KVStore, src, dest treasury.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%s holds %d, %d needed", src, sender.Amount, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	total, err := coin.Add(recipient.Amount, amount)
	if err != nil {
		return err
	}

	sender.Amount -= amount
	recipient.Amount = total
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db treasury.KVStore, dest treasury.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	total, err := coin.Add(recipient.Amount, amount)
	if err != nil {
		return err
	}
	recipient.Amount = total
	return c.bucket.Put(db, dest, recipient)
}
