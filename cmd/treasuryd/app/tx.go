package app

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/codec"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/exchange"
	"github.com/iov-one/treasury/x/gate"
	"github.com/iov-one/treasury/x/ledger"
	"github.com/iov-one/treasury/x/sigs"
)

// Tx carries exactly one message and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature

	CashSend           *cash.SendMsg
	LedgerTransfer     *ledger.TransferMsg
	LedgerApprove      *ledger.ApproveMsg
	LedgerTransferFrom *ledger.TransferFromMsg
	WithdrawReserve    *ledger.WithdrawReserveMsg
	ExchangeBuy        *exchange.BuyMsg
	GateSubmit         *gate.SubmitMsg
	GateConfirm        *gate.ConfirmMsg
}

// make sure tx fulfills all interfaces
var _ treasury.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg treasury.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSend = m
	case *ledger.TransferMsg:
		tx.LedgerTransfer = m
	case *ledger.ApproveMsg:
		tx.LedgerApprove = m
	case *ledger.TransferFromMsg:
		tx.LedgerTransferFrom = m
	case *ledger.WithdrawReserveMsg:
		tx.WithdrawReserve = m
	case *exchange.BuyMsg:
		tx.ExchangeBuy = m
	case *gate.SubmitMsg:
		tx.GateSubmit = m
	case *gate.ConfirmMsg:
		tx.GateConfirm = m
	default:
		return nil, errors.WithType(errors.ErrType, msg)
	}
	return &tx, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (treasury.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) messages() []treasury.Msg {
	var msgs []treasury.Msg
	add := func(present bool, m treasury.Msg) {
		if present {
			msgs = append(msgs, m)
		}
	}
	add(tx.CashSend != nil, tx.CashSend)
	add(tx.LedgerTransfer != nil, tx.LedgerTransfer)
	add(tx.LedgerApprove != nil, tx.LedgerApprove)
	add(tx.LedgerTransferFrom != nil, tx.LedgerTransferFrom)
	add(tx.WithdrawReserve != nil, tx.WithdrawReserve)
	add(tx.ExchangeBuy != nil, tx.ExchangeBuy)
	add(tx.GateSubmit != nil, tx.GateSubmit)
	add(tx.GateConfirm != nil, tx.GateConfirm)
	return msgs
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (treasury.Msg, error) {
	switch msgs := tx.messages(); len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages", len(msgs))
	}
}

// GetSignatures implements sigs.SignedTx.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	for _, s := range tx.Signatures {
		w.Message(1, s)
	}
	return w.
		Message(2, tx.CashSend).
		Message(3, tx.LedgerTransfer).
		Message(4, tx.LedgerApprove).
		Message(5, tx.LedgerTransferFrom).
		Message(6, tx.WithdrawReserve).
		Message(7, tx.ExchangeBuy).
		Message(8, tx.GateSubmit).
		Message(9, tx.GateConfirm).
		Result()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) error {
		if field < 1 || field > 9 {
			return r.Skip()
		}
		b, err := r.Bytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			var s sigs.StdSignature
			if err := s.Unmarshal(b); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, &s)
			return nil
		case 2:
			tx.CashSend = &cash.SendMsg{}
			return tx.CashSend.Unmarshal(b)
		case 3:
			tx.LedgerTransfer = &ledger.TransferMsg{}
			return tx.LedgerTransfer.Unmarshal(b)
		case 4:
			tx.LedgerApprove = &ledger.ApproveMsg{}
			return tx.LedgerApprove.Unmarshal(b)
		case 5:
			tx.LedgerTransferFrom = &ledger.TransferFromMsg{}
			return tx.LedgerTransferFrom.Unmarshal(b)
		case 6:
			tx.WithdrawReserve = &ledger.WithdrawReserveMsg{}
			return tx.WithdrawReserve.Unmarshal(b)
		case 7:
			tx.ExchangeBuy = &exchange.BuyMsg{}
			return tx.ExchangeBuy.Unmarshal(b)
		case 8:
			tx.GateSubmit = &gate.SubmitMsg{}
			return tx.GateSubmit.Unmarshal(b)
		default:
			tx.GateConfirm = &gate.ConfirmMsg{}
			return tx.GateConfirm.Unmarshal(b)
		}
	})
}
