/*
Package badgerdb provides a persistent store backed by badger.

DB exposes badger as a plain KVStore. CommitStore layers a block level cache
over it, so that state changes are persisted only on Commit, atomically
together with the new version.
*/
package badgerdb

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger"
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/tendermint/tendermint/libs/log"
)

// DB is a KVStore that reads and writes directly to badger.
type DB struct {
	badger *badger.DB
}

var _ treasury.KVStore = (*DB)(nil)

// Open opens, or creates if missing, a badger database in the given
// directory. All badger logs are passed to the given logger.
func Open(dir string, logger log.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create %q: %s", dir, err)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger.With("module", "badger")})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open badger: %s", err)
	}
	return &DB{badger: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	if err := d.badger.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns nil if the key does not exist.
func (d *DB) Get(key []byte) ([]byte, error) {
	var value []byte
	err := d.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case err == badger.ErrKeyNotFound:
		return nil, nil
	case err != nil:
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	return value, nil
}

// Has returns true if the key exists.
func (d *DB) Has(key []byte) (bool, error) {
	err := d.badger.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	switch {
	case err == badger.ErrKeyNotFound:
		return false, nil
	case err != nil:
		return false, errors.Wrapf(errors.ErrDatabase, "has: %s", err)
	}
	return true, nil
}

// Set writes the value in its own transaction.
func (d *DB) Set(key, value []byte) error {
	err := d.badger.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "set: %s", err)
	}
	return nil
}

// Delete removes the key in its own transaction.
func (d *DB) Delete(key []byte) error {
	err := d.badger.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "delete: %s", err)
	}
	return nil
}

// Iterator returns all values within [start, end) in ascending order.
// Values are read within a single transaction, so the iterator is not
// affected by writes made while it is used.
func (d *DB) Iterator(start, end []byte) (treasury.Iterator, error) {
	models, err := d.collect(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator returns all values within [start, end) in descending
// order.
func (d *DB) ReverseIterator(start, end []byte) (treasury.Iterator, error) {
	models, err := d.collect(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (d *DB) collect(start, end []byte) ([]store.Model, error) {
	var models []store.Model
	err := d.badger.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		if start == nil {
			it.Rewind()
		} else {
			it.Seek(start)
		}
		for ; it.Valid(); it.Next() {
			item := it.Item()
			if end != nil && bytes.Compare(item.Key(), end) >= 0 {
				return nil
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			models = append(models, store.Pair(item.KeyCopy(nil), value))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterate: %s", err)
	}
	return models, nil
}

// NewBatch returns a batch that writes all operations at once.
func (d *DB) NewBatch() treasury.Batch {
	return &batch{db: d.badger}
}

type batch struct {
	db  *badger.DB
	ops []store.Op
}

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

// Write flushes all collected operations using a badger write batch.
func (b *batch) Write() error {
	wb := b.db.NewWriteBatch()
	for _, op := range b.ops {
		var err error
		if op.IsSetOp() {
			err = wb.Set(op.Key(), op.Value())
		} else {
			err = wb.Delete(op.Key())
		}
		if err != nil {
			wb.Cancel()
			return errors.Wrapf(errors.ErrDatabase, "batch: %s", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "flush: %s", err)
	}
	b.ops = nil
	return nil
}

// badgerLogger passes badger logs to the application logger.
type badgerLogger struct {
	log.Logger
}

func (l badgerLogger) format(format string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Error(l.format(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Info(l.format(format, args...), "level", "warning")
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Info(l.format(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Debug(l.format(format, args...))
}
