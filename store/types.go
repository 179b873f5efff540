package store

import "github.com/iov-one/treasury"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = treasury.ReadOnlyKVStore
	SetDeleter       = treasury.SetDeleter
	KVStore          = treasury.KVStore
	Batch            = treasury.Batch
	Iterator         = treasury.Iterator
	CacheableKVStore = treasury.CacheableKVStore
	KVCacheWrap      = treasury.KVCacheWrap
	CommitKVStore    = treasury.CommitKVStore
	CommitID         = treasury.CommitID
)

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
