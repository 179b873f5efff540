package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := treasurytest.PanicHandler{Msg: "boom"}
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	require.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	require.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	require.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	require.True(t, errors.ErrPanic.Is(err))

	code, log := errors.ABCIInfo(err, false)
	require.Equal(t, uint32(111222), code)
	require.Equal(t, "panic", log)
}

func TestRecoveryLogsPanic(t *testing.T) {
	var buf bytes.Buffer
	ctx := treasury.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &treasurytest.Tx{Msg: &treasurytest.Msg{RoutePath: "ledger/transfer"}}

	_, err := NewRecovery().Deliver(ctx, store.MemStore(), tx, treasurytest.PanicHandler{Msg: "boom"})
	require.True(t, errors.ErrPanic.Is(err))
	require.Contains(t, buf.String(), "Transaction panicked")
	require.Contains(t, buf.String(), "path=ledger/transfer")
}
