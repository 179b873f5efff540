package app

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// isPath is the format of a message path, for example "ledger/transfer".
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]treasury.Handler
}

var (
	_ treasury.Registry = (*Router)(nil)
	_ treasury.Handler  = (*Router)(nil)
)

// NewRouter returns a router without any routes.
func NewRouter() *Router {
	return &Router{routes: make(map[string]treasury.Handler)}
}

// Handle registers the handler for the path of the given message. It
// panics if the path is malformed or already taken, as this is always a
// programming error.
func (r *Router) Handle(m treasury.Msg, h treasury.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route %q", path))
	}
	r.routes[path] = h
}

// Paths returns all registered paths in lexical order.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (r *Router) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) handler(tx treasury.Tx) (treasury.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load message")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction without a message")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q path", msg.Path())
	}
	return h, nil
}
