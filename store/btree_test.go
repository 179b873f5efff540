package store

import (
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/stretchr/testify/require"
)

func memStoreSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestBTreeCacheGetSet(t *testing.T) {
	memStoreSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	memStoreSuite().CacheConflicts(t)
}

func TestBTreeCacheFuzzIterator(t *testing.T) {
	memStoreSuite().FuzzIterator(t)
}

func TestBTreeCacheIteratorWithConflicts(t *testing.T) {
	memStoreSuite().IteratorWithConflicts(t)
}

func TestSliceIterator(t *testing.T) {
	models := randModels(10, 8, 40)

	iter := NewSliceIterator(models)
	for i := 0; i < len(models); i++ {
		key, value, err := iter.Next()
		require.NoError(t, err)
		require.Equal(t, models[i].Key, key)
		require.Equal(t, models[i].Value, value)
	}
	_, _, err := iter.Next()
	require.True(t, errors.ErrIteratorDone.Is(err))

	// iterator is empty after release
	trash := NewSliceIterator(models)
	trash.Release()
	_, _, err = trash.Next()
	require.True(t, errors.ErrIteratorDone.Is(err))
}

func TestDiscardedCacheLeavesNoTrace(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("balance"), []byte{10}))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("balance"), []byte{3}))
	require.NoError(t, cache.Set([]byte("allowance"), []byte{7}))
	require.NoError(t, cache.Delete([]byte("balance")))
	cache.Discard()

	got, err := base.Get([]byte("balance"))
	require.NoError(t, err)
	require.Equal(t, []byte{10}, got)
	has, err := base.Has([]byte("allowance"))
	require.NoError(t, err)
	require.False(t, has)
}

func TestIteratorSnapshotAllowsWrites(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, base.Set([]byte(k), []byte(k)))
	}

	iter, err := base.Iterator(nil, nil)
	require.NoError(t, err)
	defer iter.Release()

	var keys []string
	for {
		key, _, err := iter.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(key))
		require.NoError(t, base.Delete(key))
	}
	require.Equal(t, []string{"a", "b", "c"}, keys)
}
