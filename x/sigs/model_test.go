package sigs

import (
	"testing"

	"github.com/iov-one/treasury/crypto"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModel(t *testing.T) {
	kv := store.MemStore()

	bucket := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	addr := pub.Address()

	var user UserData
	err := bucket.One(kv, addr, &user)
	assert.IsErr(t, errors.ErrNotFound, err)

	u, err := bucket.GetOrCreate(kv, pub)
	require.NoError(t, err)
	require.NoError(t, u.Validate())
	require.Equal(t, int64(0), u.Sequence)

	require.Error(t, u.CheckAndIncrementSequence(5))
	require.NoError(t, u.CheckAndIncrementSequence(0))
	require.Error(t, u.CheckAndIncrementSequence(0))
	require.NoError(t, u.CheckAndIncrementSequence(1))
	require.Equal(t, int64(2), u.Sequence)

	require.NoError(t, bucket.Save(kv, u))

	loaded, err := bucket.GetOrCreate(kv, pub)
	require.NoError(t, err)
	require.Equal(t, int64(2), loaded.Sequence)
	require.Equal(t, pub, loaded.Pubkey)
}

func TestUserValidation(t *testing.T) {
	var u UserData
	assert.FieldError(t, u.Validate(), "Pubkey", errors.ErrEmpty)

	u.Pubkey = crypto.GenPrivKeyEd25519().PublicKey()
	assert.Nil(t, u.Validate())

	u.Sequence = -30
	assert.FieldError(t, u.Validate(), "Sequence", ErrInvalidSequence)
}

func TestSequenceOverflow(t *testing.T) {
	u := UserData{
		Pubkey:   crypto.GenPrivKeyEd25519().PublicKey(),
		Sequence: (1 << 53) - 1,
	}
	err := u.CheckAndIncrementSequence(u.Sequence)
	assert.IsErr(t, errors.ErrOverflow, err)
}
