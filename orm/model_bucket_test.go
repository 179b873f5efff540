package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest/assert"
)

// counter is a minimal model used to test buckets.
type counter struct {
	Count uint64
}

func (c *counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, c.Count)
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.ErrInput
	}
	c.Count = binary.BigEndian.Uint64(raw)
	return nil
}

func (c *counter) Validate() error {
	if c.Count == 0 {
		return errors.Wrap(errors.ErrEmpty, "count")
	}
	return nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	assert.Nil(t, b.Put(db, []byte("c1"), &counter{Count: 1}))

	var c1 counter
	assert.Nil(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, uint64(1), c1.Count)
	assert.Nil(t, b.Has(db, []byte("c1")))

	assert.IsErr(t, errors.ErrEmpty, b.Put(db, []byte("c2"), &counter{}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &counter{Count: 2}))

	assert.Nil(t, b.Delete(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("unknown")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("c1"), &c1))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	other := NewModelBucket("cntsx")

	assert.Nil(t, b.Put(db, []byte("b"), &counter{Count: 2}))
	assert.Nil(t, b.Put(db, []byte("a"), &counter{Count: 1}))
	assert.Nil(t, b.Put(db, []byte("ab"), &counter{Count: 3}))
	assert.Nil(t, other.Put(db, []byte("a"), &counter{Count: 99}))

	collect := func(prefix []byte) []uint64 {
		var res []uint64
		err := b.Iterate(db, prefix, func() Model { return &counter{} }, func(key []byte, m Model) error {
			res = append(res, m.(*counter).Count)
			return nil
		})
		assert.Nil(t, err)
		return res
	}

	assert.Equal(t, []uint64{1, 3, 2}, collect(nil))
	assert.Equal(t, []uint64{1, 3}, collect([]byte("a")))
	assert.Equal(t, []uint64(nil), collect([]byte("z")))
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), prefixEnd([]byte("aa")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
