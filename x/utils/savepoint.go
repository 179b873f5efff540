package utils

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Savepoint runs the wrapped handler on a cache of the store. The cache is
// written only when the handler succeeds, so a failed transaction leaves no
// trace. Check and Deliver are isolated independently.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ treasury.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that isolates nothing until OnCheck or
// OnDeliver is called.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that also isolates Check.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver returns a savepoint that also isolates Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx treasury.Context, store treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	var res *treasury.CheckResult
	err := isolate(s.check, store, func(db treasury.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx treasury.Context, store treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	var res *treasury.DeliverResult
	err := isolate(s.deliver, store, func(db treasury.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache of db, unless disabled or db cannot be
// cached. In that case fn works on db directly.
func isolate(enabled bool, db treasury.KVStore, fn func(treasury.KVStore) error) error {
	cacheable, ok := db.(treasury.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
