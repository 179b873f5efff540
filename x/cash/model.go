package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Decimals is the number of decimal places of the base currency. It is
// used only to read and present human readable amounts.
const Decimals = 9

// Wallet holds the base currency balance of a single address.
type Wallet struct {
	Amount uint64
}

var _ orm.Model = (*Wallet)(nil)

// Validate always succeeds, any amount is a valid balance.
func (w *Wallet) Validate() error {
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetOrCreate returns the wallet of given address, or an empty one.
func (b Bucket) GetOrCreate(db treasury.ReadOnlyKVStore, addr treasury.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}
