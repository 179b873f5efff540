package gate

import (
	"fmt"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x"
)

// RegisterRoutes registers the gate handlers.
func RegisterRoutes(r treasury.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SubmitMsg{}, &SubmitHandler{auth: auth, control: control})
	r.Handle(&ConfirmMsg{}, &ConfirmHandler{auth: auth, control: control})
}

// SubmitHandler creates proposals.
type SubmitHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*SubmitHandler)(nil)

func (h *SubmitHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	committee, err := h.control.Committee(db)
	if err != nil {
		return nil, err
	}
	if !committee.IsSigner(msg.Author) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a committee signer", msg.Author)
	}
	return &treasury.CheckResult{}, nil
}

func (h *SubmitHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.control.Submit(ctx, db, msg.Author, msg.Action)
	if err != nil {
		return nil, err
	}
	res := &treasury.DeliverResult{
		Data: id,
		Log:  fmt.Sprintf("proposal %d submitted", orm.DecodeSequence(id)),
	}
	res.Emit(treasury.Event{
		Kind: treasury.EventProposalSubmitted,
		From: msg.Author,
		Ref:  id,
	})
	return res, nil
}

func (h *SubmitHandler) validate(ctx treasury.Context, tx treasury.Tx) (*SubmitMsg, error) {
	var msg SubmitMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	author, err := x.Actor(ctx, h.auth, msg.Author)
	if err != nil {
		return nil, err
	}
	msg.Author = author
	return &msg, nil
}

// ConfirmHandler confirms proposals and executes them once approved.
type ConfirmHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*ConfirmHandler)(nil)

func (h *ConfirmHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	committee, err := h.control.Committee(db)
	if err != nil {
		return nil, err
	}
	if !committee.IsSigner(msg.Signer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a committee signer", msg.Signer)
	}
	proposal, err := h.control.Proposal(db, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Executed {
		return nil, errors.Wrap(errors.ErrAlreadyExecuted, "proposal")
	}
	if proposal.HasConfirmation(msg.Signer) {
		return nil, errors.Wrap(errors.ErrAlreadyConfirmed, "proposal")
	}
	return &treasury.CheckResult{}, nil
}

func (h *ConfirmHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	proposal, executed, err := h.control.Confirm(ctx, db, msg.Signer, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	id := orm.DecodeSequence(msg.ProposalID)
	res := &treasury.DeliverResult{
		Log: fmt.Sprintf("proposal %d confirmed %d times", id, len(proposal.Confirmations)),
	}
	res.Emit(treasury.Event{
		Kind: treasury.EventProposalConfirmed,
		From: msg.Signer,
		Ref:  msg.ProposalID,
	})
	if executed == nil {
		return res, nil
	}
	res.Log = fmt.Sprintf("proposal %d executed", id)
	res.Data = executed.Data
	res.Emit(treasury.Event{
		Kind: treasury.EventProposalExecuted,
		From: CommitteeAddress(),
		Ref:  msg.ProposalID,
	})
	for _, e := range executed.Events {
		res.Emit(e)
	}
	return res, nil
}

func (h *ConfirmHandler) validate(ctx treasury.Context, tx treasury.Tx) (*ConfirmMsg, error) {
	var msg ConfirmMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.Actor(ctx, h.auth, msg.Signer)
	if err != nil {
		return nil, err
	}
	msg.Signer = signer
	return &msg, nil
}
