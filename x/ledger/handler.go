package ledger

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/coin"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x"
)

// RegisterRoutes registers all ledger handlers.
func RegisterRoutes(r treasury.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&TransferMsg{}, &TransferHandler{auth: auth, control: control})
	r.Handle(&ApproveMsg{}, &ApproveHandler{auth: auth, control: control})
	r.Handle(&TransferFromMsg{}, &TransferFromHandler{auth: auth, control: control})
	r.Handle(&WithdrawReserveMsg{}, &WithdrawReserveHandler{auth: auth, control: control})
}

// TransferHandler moves ledger units out of the signer account.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*TransferHandler)(nil)

func (h *TransferHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h *TransferHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.From, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	res := &treasury.DeliverResult{Log: "transferred " + formatAmount(db, h.control, msg.Amount)}
	res.Emit(treasury.Event{
		Kind:   treasury.EventTransfer,
		From:   msg.From,
		To:     msg.To,
		Amount: msg.Amount,
	})
	return res, nil
}

func (h *TransferHandler) validate(ctx treasury.Context, tx treasury.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	from, err := x.Actor(ctx, h.auth, msg.From)
	if err != nil {
		return nil, err
	}
	msg.From = from
	return &msg, nil
}

// ApproveHandler sets the allowance granted by the signer.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*ApproveHandler)(nil)

func (h *ApproveHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h *ApproveHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(db, msg.Owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	res := &treasury.DeliverResult{}
	res.Emit(treasury.Event{
		Kind:   treasury.EventApproval,
		From:   msg.Owner,
		To:     msg.Spender,
		Amount: msg.Amount,
	})
	return res, nil
}

func (h *ApproveHandler) validate(ctx treasury.Context, tx treasury.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	owner, err := x.Actor(ctx, h.auth, msg.Owner)
	if err != nil {
		return nil, err
	}
	msg.Owner = owner
	return &msg, nil
}

// TransferFromHandler moves units on behalf of another account.
type TransferFromHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*TransferFromHandler)(nil)

func (h *TransferFromHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h *TransferFromHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.TransferFrom(db, msg.Spender, msg.Owner, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	res := &treasury.DeliverResult{Log: "transferred " + formatAmount(db, h.control, msg.Amount)}
	res.Emit(treasury.Event{
		Kind:    treasury.EventTransfer,
		From:    msg.Owner,
		To:      msg.To,
		Spender: msg.Spender,
		Amount:  msg.Amount,
	})
	return res, nil
}

func (h *TransferFromHandler) validate(ctx treasury.Context, tx treasury.Tx) (*TransferFromMsg, error) {
	var msg TransferFromMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	spender, err := x.Actor(ctx, h.auth, msg.Spender)
	if err != nil {
		return nil, err
	}
	msg.Spender = spender
	return &msg, nil
}

// WithdrawReserveHandler releases the reserve to the ledger owner.
type WithdrawReserveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*WithdrawReserveHandler)(nil)

func (h *WithdrawReserveHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h *WithdrawReserveHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, err := h.control.WithdrawReserve(db, msg.Caller)
	if err != nil {
		return nil, err
	}
	res := &treasury.DeliverResult{}
	res.Emit(treasury.Event{
		Kind:   treasury.EventReserveWithdrawal,
		From:   HoldingAddress(),
		To:     msg.Caller,
		Amount: amount,
	})
	return res, nil
}

func (h *WithdrawReserveHandler) validate(ctx treasury.Context, tx treasury.Tx) (*WithdrawReserveMsg, error) {
	var msg WithdrawReserveMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Actor(ctx, h.auth, msg.Caller)
	if err != nil {
		return nil, err
	}
	msg.Caller = caller
	return &msg, nil
}

// formatAmount renders amount with the ledger decimals, falling back to
// base units if the state cannot be read.
func formatAmount(db treasury.ReadOnlyKVStore, control Controller, amount uint64) string {
	state, err := control.State(db)
	if err != nil {
		return coin.FormatAmount(amount, 0)
	}
	return coin.FormatAmount(amount, uint8(state.Decimals)) + " " + state.Symbol
}
