package exchange

import (
	"testing"

	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/treasurytest/assert"
)

func TestSchemaMatchesCodec(t *testing.T) {
	schema := treasurytest.SchemaFields(t, "codec.proto")
	assert.Equal(t, 1, len(schema))

	msg := &BuyMsg{Buyer: treasurytest.NewAddress(), Amount: 10}
	assert.Equal(t, schema["BuyMsg"], treasurytest.WireFields(t, msg))
}
