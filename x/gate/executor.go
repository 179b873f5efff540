package gate

import "github.com/iov-one/treasury"

// Executor runs the message of an approved proposal.
type Executor func(ctx treasury.Context, db treasury.KVStore, msg treasury.Msg) (*treasury.DeliverResult, error)

// HandlerAsExecutor wraps the message in a transaction and delivers it to
// the handler. A router or a decorated stack can be used, as long as it
// does not require anything from the transaction besides the message.
func HandlerAsExecutor(h treasury.Handler) Executor {
	return func(ctx treasury.Context, db treasury.KVStore, msg treasury.Msg) (*treasury.DeliverResult, error) {
		return h.Deliver(ctx, db, &actionTx{msg: msg})
	}
}

type actionTx struct {
	msg treasury.Msg
}

var _ treasury.Tx = (*actionTx)(nil)

func (tx *actionTx) GetMsg() (treasury.Msg, error) {
	return tx.msg, nil
}

func (tx *actionTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *actionTx) Unmarshal(raw []byte) error {
	return tx.msg.Unmarshal(raw)
}
