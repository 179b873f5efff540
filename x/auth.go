package x

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Authenticator extracts the identities authorized by the current context.
// Handlers receive one in their constructor so that transaction signatures
// and the committee identity of an executing proposal are checked the same
// way.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(treasury.Context) []treasury.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(treasury.Context, treasury.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx treasury.Context) []treasury.Condition {
	var res []treasury.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx treasury.Context, addr treasury.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx treasury.Context, auth Authenticator) treasury.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// Actor returns the address a message acts on behalf of. An empty addr
// means the main signer. ErrUnauthorized is returned unless the resulting
// address is authenticated by the context.
func Actor(ctx treasury.Context, auth Authenticator, addr treasury.Address) (treasury.Address, error) {
	if len(addr) == 0 {
		signer := MainSigner(ctx, auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
		}
		return signer.Address(), nil
	}
	if !auth.HasAddress(ctx, addr) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "signature of %s missing", addr)
	}
	return addr, nil
}
