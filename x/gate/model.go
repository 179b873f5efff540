package gate

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/ledger"
)

// maxSigners keeps confirmation lists small enough to load on every call.
const maxSigners = 64

// Committee is the set of signers allowed to submit and confirm
// proposals.
type Committee struct {
	Signers   []treasury.Address
	Threshold uint32
}

var _ orm.Model = (*Committee)(nil)

func (c *Committee) Validate() error {
	var errs error
	switch n := len(c.Signers); {
	case n == 0:
		errs = errors.AppendField(errs, "Signers", errors.ErrEmpty)
	case n > maxSigners:
		errs = errors.Append(errs, errors.Field("Signers", errors.ErrInput, "more than %d signers", maxSigners))
	}
	for i, s := range c.Signers {
		if err := s.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Signers", err, "signer #%d", i))
			continue
		}
		for _, prev := range c.Signers[:i] {
			if prev.Equals(s) {
				errs = errors.Append(errs, errors.Field("Signers", errors.ErrDuplicate, "signer %s", s))
				break
			}
		}
	}
	if c.Threshold == 0 || int(c.Threshold) > len(c.Signers) {
		errs = errors.Append(errs, errors.Field("Threshold", errors.ErrInput, "must be between 1 and %d", len(c.Signers)))
	}
	return errs
}

// IsSigner returns true if the address is a committee member.
func (c *Committee) IsSigner(addr treasury.Address) bool {
	for _, s := range c.Signers {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// Action is the state change a proposal executes. Exactly one field is
// set.
type Action struct {
	LedgerTransfer  *ledger.TransferMsg        `json:"ledger_transfer,omitempty"`
	LedgerApprove   *ledger.ApproveMsg         `json:"ledger_approve,omitempty"`
	WithdrawReserve *ledger.WithdrawReserveMsg `json:"withdraw_reserve,omitempty"`
	CashSend        *cash.SendMsg              `json:"cash_send,omitempty"`
}

// NewAction wraps a message into an action. Only messages that a
// committee can execute are accepted.
func NewAction(msg treasury.Msg) (*Action, error) {
	switch m := msg.(type) {
	case *ledger.TransferMsg:
		return &Action{LedgerTransfer: m}, nil
	case *ledger.ApproveMsg:
		return &Action{LedgerApprove: m}, nil
	case *ledger.WithdrawReserveMsg:
		return &Action{WithdrawReserve: m}, nil
	case *cash.SendMsg:
		return &Action{CashSend: m}, nil
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T cannot be executed by the gate", msg)
	}
}

// Msg returns the message carried by the action.
func (a *Action) Msg() (treasury.Msg, error) {
	var found []treasury.Msg
	if a.LedgerTransfer != nil {
		found = append(found, a.LedgerTransfer)
	}
	if a.LedgerApprove != nil {
		found = append(found, a.LedgerApprove)
	}
	if a.WithdrawReserve != nil {
		found = append(found, a.WithdrawReserve)
	}
	if a.CashSend != nil {
		found = append(found, a.CashSend)
	}
	switch len(found) {
	case 0:
		return nil, errors.Wrap(errors.ErrEmpty, "action")
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "action carries %d messages", len(found))
	}
}

func (a *Action) Validate() error {
	msg, err := a.Msg()
	if err != nil {
		return err
	}
	return msg.Validate()
}

// committeeMsg returns a copy of the message with an empty acting address
// replaced by the committee address.
func (a *Action) committeeMsg() (treasury.Msg, error) {
	msg, err := a.Msg()
	if err != nil {
		return nil, err
	}
	committee := CommitteeAddress()
	switch m := msg.(type) {
	case *ledger.TransferMsg:
		c := *m
		if len(c.From) == 0 {
			c.From = committee
		}
		return &c, nil
	case *ledger.ApproveMsg:
		c := *m
		if len(c.Owner) == 0 {
			c.Owner = committee
		}
		return &c, nil
	case *ledger.WithdrawReserveMsg:
		c := *m
		if len(c.Caller) == 0 {
			c.Caller = committee
		}
		return &c, nil
	case *cash.SendMsg:
		c := *m
		if len(c.Source) == 0 {
			c.Source = committee
		}
		return &c, nil
	}
	return msg, nil
}

// actor returns the acting address of an action message. Empty means the
// committee acts.
func actor(msg treasury.Msg) treasury.Address {
	switch m := msg.(type) {
	case *ledger.TransferMsg:
		return m.From
	case *ledger.ApproveMsg:
		return m.Owner
	case *ledger.WithdrawReserveMsg:
		return m.Caller
	case *cash.SendMsg:
		return m.Source
	}
	return nil
}

// Proposal is an action waiting for the committee approval.
type Proposal struct {
	Action        *Action
	Author        treasury.Address
	Confirmations []treasury.Address
	Executed      bool
	// ExecutedCount is 1 once executed and never grows further.
	ExecutedCount uint32
	SubmittedAt   int64
	ExecutedAt    int64
}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Validate() error {
	var errs error
	if p.Action == nil {
		errs = errors.AppendField(errs, "Action", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Action", p.Action.Validate())
	}
	errs = errors.AppendField(errs, "Author", p.Author.Validate())
	for i, c := range p.Confirmations {
		if err := c.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Confirmations", err, "confirmation #%d", i))
		}
	}
	if p.Executed != (p.ExecutedCount == 1) || p.ExecutedCount > 1 {
		errs = errors.Append(errs, errors.Field("ExecutedCount", errors.ErrState, "executed %d times", p.ExecutedCount))
	}
	return errs
}

// HasConfirmation returns true if the address already confirmed.
func (p *Proposal) HasConfirmation(addr treasury.Address) bool {
	for _, c := range p.Confirmations {
		if c.Equals(addr) {
			return true
		}
	}
	return false
}

var committeeKey = []byte("committee")

// Bucket groups the gate buckets.
type Bucket struct {
	committee orm.ModelBucket
	proposals orm.ModelBucket
	ids       orm.Sequence
}

// NewBucket returns gate buckets with default names.
func NewBucket() Bucket {
	return Bucket{
		committee: orm.NewModelBucket("gate"),
		proposals: orm.NewModelBucket("proposal"),
		ids:       orm.NewSequence("proposal", "id"),
	}
}
