package treasurytest

import "github.com/iov-one/treasury"

// Decorator is a mock treasury.Decorator that records the path of every
// message passing through it, in order.
//
// Set CheckErr or DeliverErr to fail the corresponding method before the
// wrapped handler is called. A failed call is recorded as well.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checked   []string
	delivered []string
}

var _ treasury.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	d.checked = append(d.checked, pathOf(tx))
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	d.delivered = append(d.delivered, pathOf(tx))
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Checked returns the paths of all checked messages.
func (d *Decorator) Checked() []string {
	return d.checked
}

// Delivered returns the paths of all delivered messages.
func (d *Decorator) Delivered() []string {
	return d.delivered
}

func (d *Decorator) CallCount() int {
	return len(d.checked) + len(d.delivered)
}

// pathOf returns an empty path for a nil transaction.
func pathOf(tx treasury.Tx) string {
	if tx == nil {
		return ""
	}
	return treasury.GetPath(tx)
}

// Decorate returns a handler calling h through d.
func Decorate(h treasury.Handler, d treasury.Decorator) treasury.Handler {
	return ChainedHandler{Decorator: d, Next: h}
}

// ChainedHandler is a single step of a decorator chain.
type ChainedHandler struct {
	Decorator treasury.Decorator
	Next      treasury.Handler
}

var _ treasury.Handler = ChainedHandler{}

func (c ChainedHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	return c.Decorator.Check(ctx, db, tx, c.Next)
}

func (c ChainedHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	return c.Decorator.Deliver(ctx, db, tx, c.Next)
}
