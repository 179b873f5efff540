package events

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaMessage(t *testing.T) {
	to := treasurytest.NewAddress()
	at := time.Date(2021, 5, 6, 7, 8, 9, 0, time.UTC)
	records := NewRecords("test-chain", 3, "ledger/transfer", at, []treasury.Event{
		{Kind: treasury.EventTransfer, To: to, Amount: 42},
	})

	msg, err := kafkaMessage(records[0])
	require.NoError(t, err)
	assert.Equal(t, []byte(treasury.EventTransfer), msg.Key)
	assert.True(t, msg.Time.Equal(at))

	var got Record
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, records[0].ID, got.ID)
	assert.Equal(t, uint64(42), got.Event.Amount)
	assert.True(t, to.Equals(got.Event.To))
}

func TestNewKafkaSink(t *testing.T) {
	_, err := NewKafkaSink(nil, "topic")
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = NewKafkaSink([]string{"localhost:9092"}, "")
	assert.True(t, errors.ErrEmpty.Is(err))

	s, err := NewKafkaSink([]string{"localhost:9092"}, "topic")
	require.NoError(t, err)
	// Nothing to send, no connection is made.
	require.NoError(t, s.Publish(context.Background(), nil))
	require.NoError(t, s.Close())
}

func TestKafkaSinkIntegration(t *testing.T) {
	brokers := os.Getenv(EnvKafkaBrokers)
	if brokers == "" {
		t.Skipf("%s not set", EnvKafkaBrokers)
	}
	s, err := NewKafkaSink(strings.Split(brokers, ","), "treasury_test")
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	records := NewRecords("test-chain", 1, "exchange/buy", time.Now(), []treasury.Event{
		{Kind: treasury.EventPurchase, Amount: 1},
	})
	require.NoError(t, s.Publish(ctx, records))
}
