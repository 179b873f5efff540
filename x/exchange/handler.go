package exchange

import (
	"fmt"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x"
	"github.com/iov-one/treasury/x/ledger"
)

// RegisterRoutes registers the exchange handler.
func RegisterRoutes(r treasury.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&BuyMsg{}, &BuyHandler{auth: auth, control: control})
}

// BuyHandler sells ledger units to the signer.
type BuyHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ treasury.Handler = (*BuyHandler)(nil)

func (h *BuyHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	switch quote, err := h.control.Quote(db, msg.Amount); {
	case err != nil:
		return nil, err
	case quote == 0:
		return nil, errors.Wrapf(errors.ErrZeroQuote, "%d paid", msg.Amount)
	}
	return &treasury.CheckResult{}, nil
}

func (h *BuyHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	bought, err := h.control.Buy(db, msg.Buyer, msg.Amount)
	if err != nil {
		return nil, err
	}
	res := &treasury.DeliverResult{Log: fmt.Sprintf("bought %d units", bought)}
	res.Emit(treasury.Event{
		Kind:   treasury.EventPurchase,
		From:   msg.Buyer,
		To:     ledger.HoldingAddress(),
		Amount: msg.Amount,
	})
	res.Emit(treasury.Event{
		Kind:   treasury.EventTransfer,
		From:   ledger.HoldingAddress(),
		To:     msg.Buyer,
		Amount: bought,
	})
	return res, nil
}

func (h *BuyHandler) validate(ctx treasury.Context, tx treasury.Tx) (*BuyMsg, error) {
	var msg BuyMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	buyer, err := x.Actor(ctx, h.auth, msg.Buyer)
	if err != nil {
		return nil, errors.Wrap(err, "buyer")
	}
	msg.Buyer = buyer
	return &msg, nil
}
