package ledger

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

var (
	_ treasury.Msg = (*TransferMsg)(nil)
	_ treasury.Msg = (*ApproveMsg)(nil)
	_ treasury.Msg = (*TransferFromMsg)(nil)
	_ treasury.Msg = (*WithdrawReserveMsg)(nil)
)

// TransferMsg moves ledger units between accounts. An empty From defaults
// to the main signer. A zero Amount moves nothing but is still reported as a
// transfer.
type TransferMsg struct {
	From   treasury.Address `json:"from,omitempty"`
	To     treasury.Address `json:"to"`
	Amount uint64           `json:"amount"`
}

func (TransferMsg) Path() string {
	return "ledger/transfer"
}

func (m *TransferMsg) Validate() error {
	var errs error
	if len(m.From) != 0 {
		errs = errors.AppendField(errs, "From", m.From.Validate())
	}
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}

// ApproveMsg grants the spender the right to move up to Amount from the
// owner account. A zero amount revokes the grant.
type ApproveMsg struct {
	Owner   treasury.Address `json:"owner,omitempty"`
	Spender treasury.Address `json:"spender"`
	Amount  uint64           `json:"amount"`
}

func (ApproveMsg) Path() string {
	return "ledger/approve"
}

func (m *ApproveMsg) Validate() error {
	var errs error
	if len(m.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	return errs
}

// TransferFromMsg moves units out of the owner account using an
// allowance. An empty Spender defaults to the main signer.
type TransferFromMsg struct {
	Spender treasury.Address `json:"spender,omitempty"`
	Owner   treasury.Address `json:"owner"`
	To      treasury.Address `json:"to"`
	Amount  uint64           `json:"amount"`
}

func (TransferFromMsg) Path() string {
	return "ledger/transfer_from"
}

func (m *TransferFromMsg) Validate() error {
	var errs error
	if len(m.Spender) != 0 {
		errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	}
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}

// WithdrawReserveMsg releases the whole reserve to the ledger owner.
type WithdrawReserveMsg struct {
	Caller treasury.Address `json:"caller,omitempty"`
}

func (WithdrawReserveMsg) Path() string {
	return "ledger/withdraw_reserve"
}

func (m *WithdrawReserveMsg) Validate() error {
	if len(m.Caller) == 0 {
		return nil
	}
	return errors.AppendField(nil, "Caller", m.Caller.Validate())
}
