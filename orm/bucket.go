/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are looked up by their primary key.
* A bucket may own sequences that generate primary keys.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data. It panics if the name is not
// a valid bucket name.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns the raw value stored under the key or nil.
func (b Bucket) Get(db treasury.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "%s bucket: %s", b.name, err)
	}
	return raw, nil
}

// Has returns true if a value is stored under the key.
func (b Bucket) Has(db treasury.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "%s bucket: %s", b.name, err)
	}
	return ok, nil
}

// Set stores the raw value under the key.
func (b Bucket) Set(db treasury.KVStore, key, value []byte) error {
	return db.Set(b.DBKey(key), value)
}

// Delete removes the value stored under the key.
func (b Bucket) Delete(db treasury.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Iterate calls fn for every key/value pair whose key starts with the given
// prefix, in ascending key order. Keys are stripped of the bucket prefix.
// Returning an error from fn stops the iteration.
func (b Bucket) Iterate(db treasury.ReadOnlyKVStore, prefix []byte, fn func(key, value []byte) error) error {
	start := b.DBKey(prefix)
	iter, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "%s bucket iterator: %s", b.name, err)
	}
	defer iter.Release()

	for {
		key, value, err := iter.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return err
		}
		if err := fn(key[len(b.prefix):], value); err != nil {
			return err
		}
	}
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// prefixEnd returns the smallest key greater than every key with the given
// prefix, or nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
