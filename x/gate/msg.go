package gate

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

var (
	_ treasury.Msg = (*SubmitMsg)(nil)
	_ treasury.Msg = (*ConfirmMsg)(nil)
)

// SubmitMsg creates a proposal. An empty Author defaults to the main
// signer.
type SubmitMsg struct {
	Author treasury.Address `json:"author,omitempty"`
	Action *Action          `json:"action"`
}

func (SubmitMsg) Path() string {
	return "gate/submit"
}

func (m *SubmitMsg) Validate() error {
	var errs error
	if len(m.Author) != 0 {
		errs = errors.AppendField(errs, "Author", m.Author.Validate())
	}
	if m.Action == nil {
		errs = errors.AppendField(errs, "Action", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Action", m.Action.Validate())
	}
	return errs
}

// ConfirmMsg confirms a proposal. An empty Signer defaults to the main
// signer.
type ConfirmMsg struct {
	Signer     treasury.Address `json:"signer,omitempty"`
	ProposalID []byte           `json:"proposal_id"`
}

func (ConfirmMsg) Path() string {
	return "gate/confirm"
}

func (m *ConfirmMsg) Validate() error {
	var errs error
	if len(m.Signer) != 0 {
		errs = errors.AppendField(errs, "Signer", m.Signer.Validate())
	}
	errs = errors.AppendField(errs, "ProposalID", orm.ValidateSequence(m.ProposalID))
	return errs
}
