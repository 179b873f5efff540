package treasurytest

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/crypto"
)

func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() treasury.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a freshly generated condition.
func NewAddress() treasury.Address {
	return NewCondition().Address()
}
