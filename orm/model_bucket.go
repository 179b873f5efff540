package orm

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	treasury.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under their primary key.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db treasury.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists and
	// ErrNotFound otherwise.
	Has(db treasury.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// before it is written.
	Put(db treasury.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db treasury.KVStore, key []byte) error

	// Iterate loads every stored model with a key starting with the prefix
	// into a fresh instance returned by create and calls fn with it.
	Iterate(db treasury.ReadOnlyKVStore, prefix []byte, create func() Model, fn func(key []byte, m Model) error) error
}

// NewModelBucket returns a ModelBucket storing models under the named
// bucket prefix.
func NewModelBucket(name string) ModelBucket {
	return &modelBucket{b: NewBucket(name)}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db treasury.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db treasury.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s bucket", mb.b.Name())
	}
	return nil
}

func (mb *modelBucket) Put(db treasury.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db treasury.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Iterate(db treasury.ReadOnlyKVStore, prefix []byte, create func() Model, fn func(key []byte, m Model) error) error {
	return mb.b.Iterate(db, prefix, func(key, value []byte) error {
		m := create()
		if err := m.Unmarshal(value); err != nil {
			return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", m, err)
		}
		return fn(key, m)
	})
}
