package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/treasury/errors"
)

// collectItems returns a snapshot of all btree items within [start, end),
// in descending order if reverse is set. A nil limit is unbounded.
//
// Taking a snapshot releases the btree, so writing to the cache while an
// iterator exists does not corrupt the iteration.
func collectItems(bt *btree.BTree, start, end []byte, reverse bool) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// cacheIterator merges cached items with the iterator of the backing
// store. Cached items shadow the parent values with the same key and
// deleted items hide them.
type cacheIterator struct {
	items   []keyer
	idx     int
	reverse bool

	parent     Iterator
	parentDone bool
	parentKey  []byte
	parentVal  []byte
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{
		items:   items,
		reverse: reverse,
		parent:  parent,
	}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (i *cacheIterator) advanceParent() error {
	key, value, err := i.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		i.parentKey, i.parentVal = nil, nil
		return nil
	case err != nil:
		return err
	}
	i.parentKey, i.parentVal = key, value
	return nil
}

// Next returns the lowest (highest when reversed) key of both sources.
func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		ourDone := i.idx >= len(i.items)
		if ourDone && i.parentDone {
			return nil, nil, errors.ErrIteratorDone
		}

		var cmp int
		switch {
		case ourDone:
			cmp = -1
		case i.parentDone:
			cmp = 1
		default:
			cmp = bytes.Compare(i.parentKey, i.items[i.idx].Key())
			if i.reverse {
				cmp = -cmp
			}
		}

		if cmp < 0 {
			key, value = i.parentKey, i.parentVal
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		item := i.items[i.idx]
		i.idx++
		if cmp == 0 {
			// Cached value shadows the parent one.
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		switch it := item.(type) {
		case deletedItem:
			continue
		case setItem:
			return it.Key(), it.value, nil
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
		}
	}
}

// Release releases the Iterator.
func (i *cacheIterator) Release() {
	i.parent.Release()
	i.items = nil
}
