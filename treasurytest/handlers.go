package treasurytest

import "github.com/iov-one/treasury"

// Handler is a mock implementation of the treasury.Handler interface.
//
// Each method call is counted, regardless of the returned result.
type Handler struct {
	checkCall   int
	CheckResult treasury.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult treasury.DeliverResult
	DeliverErr    error
}

var _ treasury.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key value pair to the store on every call before
// returning Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ treasury.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &treasury.DeliverResult{}, h.Err
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ treasury.Handler = PanicHandler{}

func (h PanicHandler) Check(treasury.Context, treasury.KVStore, treasury.Tx) (*treasury.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(treasury.Context, treasury.KVStore, treasury.Tx) (*treasury.DeliverResult, error) {
	panic(h.Msg)
}
