package events

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertArgs(t *testing.T) {
	from := treasurytest.NewAddress()
	r := NewRecords("test-chain", 9, "ledger/transfer", time.Now(), []treasury.Event{
		{Kind: treasury.EventTransfer, From: from, Amount: 18446744073709551615},
	})[0]

	args := insertArgs(r)
	require.Len(t, args, 11)
	assert.Equal(t, sql.NullString{String: from.String(), Valid: true}, args[5])
	assert.Equal(t, sql.NullString{}, args[6])
	assert.Equal(t, sql.NullString{}, args[7])
	assert.Equal(t, "18446744073709551615", args[8])
}

func TestQueriesQuoteTable(t *testing.T) {
	s := NewPostgresSink(nil, `events"; drop`)
	assert.True(t, strings.Contains(createTableQuery(s.table), `"events""; drop"`))
	assert.True(t, strings.HasPrefix(insertQuery(s.table), `INSERT INTO "events""; drop"`))
}

func TestPostgresSinkIntegration(t *testing.T) {
	dsn := os.Getenv(EnvPostgresDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvPostgresDSN)
	}
	ctx := context.Background()
	s, err := OpenPostgresSink(ctx, dsn, "treasury_events_test")
	require.NoError(t, err)
	defer s.Close()

	records := NewRecords("test-chain", 1, "ledger/approve", time.Now(), []treasury.Event{
		{Kind: treasury.EventApproval, From: treasurytest.NewAddress(), To: treasurytest.NewAddress(), Amount: 5},
	})
	require.NoError(t, s.Publish(ctx, records))
	// Publishing the same records again is a no-op.
	require.NoError(t, s.Publish(ctx, records))

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM treasury_events_test WHERE id = $1`, records[0].ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
