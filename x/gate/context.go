package gate

import (
	"context"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/x"
)

type contextKey int

const (
	contextKeyCommittee contextKey = iota
)

// CommitteeCondition is the identity actions run with once approved.
func CommitteeCondition() treasury.Condition {
	return treasury.NewCondition("gate", "committee", []byte("main"))
}

// CommitteeAddress is the address of the committee condition.
func CommitteeAddress() treasury.Address {
	return CommitteeCondition().Address()
}

// withCommittee is private, only an approved proposal can authenticate
// the committee.
func withCommittee(ctx treasury.Context) treasury.Context {
	return context.WithValue(ctx, contextKeyCommittee, CommitteeCondition())
}

// Authenticate exposes the committee condition set on the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx treasury.Context) []treasury.Condition {
	val, _ := ctx.Value(contextKeyCommittee).(treasury.Condition)
	if val == nil {
		return nil
	}
	return []treasury.Condition{val}
}

func (a Authenticate) HasAddress(ctx treasury.Context, addr treasury.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
