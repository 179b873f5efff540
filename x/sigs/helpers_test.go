package sigs

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/treasurytest"
)

type StdTx struct {
	treasurytest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ treasury.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &treasurytest.Msg{RoutePath: "test/mock", Serialized: payload}
	return &StdTx{Tx: treasurytest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []treasury.Condition
}

var _ treasury.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx treasury.Context, store treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &treasury.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx treasury.Context, store treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &treasury.DeliverResult{}, nil
}
