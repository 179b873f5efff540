package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("transfer 100 units")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("transfer 1000 units"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, pub.Verify(msg, nil))
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())
	assert.Len(t, a.PublicKey().Address(), 20)
	require.NoError(t, a.PublicKey().Condition().Validate())
}

func TestKeySerialization(t *testing.T) {
	priv := GenPrivKeyEd25519()
	raw, err := priv.Marshal()
	require.NoError(t, err)

	var loaded PrivateKey
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, priv.PublicKey(), loaded.PublicKey())

	sig, err := loaded.Sign([]byte("data"))
	require.NoError(t, err)
	raw, err = sig.Marshal()
	require.NoError(t, err)
	var got Signature
	require.NoError(t, got.Unmarshal(raw))
	assert.True(t, priv.PublicKey().Verify([]byte("data"), &got))
}

func TestSignWithInvalidKey(t *testing.T) {
	_, err := (&PrivateKey{Ed25519: []byte("short")}).Sign([]byte("data"))
	require.Error(t, err)
}
