package sigs

import "github.com/iov-one/treasury/errors"

// ErrInvalidSequence is returned when a signature nonce does not match the
// expected value of the signer.
var ErrInvalidSequence = errors.Register(20, "invalid sequence number")
