package utils

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Recovery converts a panic of the wrapped handler into an ErrPanic error.
// The panic is logged with the path of the message that caused it.
type Recovery struct{}

var _ treasury.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx treasury.Context, store treasury.KVStore, tx treasury.Tx, next treasury.Checker) (_ *treasury.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx treasury.Context, store treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (_ *treasury.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverTx must be deferred directly.
func recoverTx(ctx treasury.Context, tx treasury.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", p)

	path := "(missing)"
	if tx != nil {
		path = treasury.GetPath(tx)
	}
	treasury.GetLogger(ctx).Error("Transaction panicked", "path", path, "panic", p)
}
