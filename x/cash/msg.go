package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

const (
	maxMemoSize int = 128
	maxRefSize  int = 64
)

// SendMsg moves base currency from the source to the destination wallet.
// An empty source defaults to the main signer.
type SendMsg struct {
	Source      treasury.Address `json:"source,omitempty"`
	Destination treasury.Address `json:"destination"`
	Amount      uint64           `json:"amount"`
	Memo        string           `json:"memo,omitempty"`
	Ref         []byte           `json:"ref,omitempty"`
}

// Ensure we implement the Msg interface
var _ treasury.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Source) != 0 {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "cannot be longer than %d", maxMemoSize))
	}
	if len(m.Ref) > maxRefSize {
		errs = errors.Append(errs, errors.Field("Ref", errors.ErrInput, "cannot be longer than %d", maxRefSize))
	}
	return errs
}
