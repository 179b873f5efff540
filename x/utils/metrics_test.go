package utils

import (
	"context"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("treasury", reg)
	require.NoError(t, err)

	ctx := context.Background()
	db := store.MemStore()
	tx := &treasurytest.Tx{Msg: &treasurytest.Msg{RoutePath: "exchange/buy"}}

	_, err = m.Deliver(ctx, db, tx, &treasurytest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &treasurytest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &treasurytest.Handler{DeliverErr: errors.ErrZeroQuote})
	require.Error(t, err)

	require.Equal(t, 2.0, testutil.ToFloat64(m.delivered.WithLabelValues("exchange/buy", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.delivered.WithLabelValues("exchange/buy", "110")))

	// Check is not measured.
	_, err = m.Check(ctx, db, tx, &treasurytest.Handler{})
	require.NoError(t, err)
	require.Equal(t, 2.0, testutil.ToFloat64(m.delivered.WithLabelValues("exchange/buy", "ok")))

	// Registering twice with the same registry fails.
	_, err = NewMetrics("treasury", reg)
	require.Error(t, err)
}
