package store

import (
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/paramvec"
	"github.com/google/uuid"
)

// Iterator iterates over the vectors of a Store in root uuid order.
type Iterator struct {
	s           *Store
	base        *badger.Iterator
	prefix      []byte
	cachedValue *paramvec.Vector
}

// NewIterator creates a new iterator over the vectors of the store visible to txn.
func (s *Store) NewIterator(txn *badger.Txn) *Iterator {
	prefix := s.vectorPrefix()
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	return &Iterator{
		s:      s,
		base:   txn.NewIterator(opts),
		prefix: prefix,
	}
}

// Close releases the underlying badger iterator.
func (it *Iterator) Close() {
	it.base.Close()
}

// Item returns the badger item of the current vector.
func (it *Iterator) Item() *badger.Item {
	return it.base.Item()
}

// Next moves the iterator to the next vector.
func (it *Iterator) Next() {
	it.base.Next()
	it.cachedValue = nil
}

// Rewind moves the iterator to the vector with the smallest root uuid.
func (it *Iterator) Rewind() {
	it.base.Rewind()
	it.cachedValue = nil
}

// Seek moves the iterator to the vector with the given root uuid or the next one after it.
func (it *Iterator) Seek(root uuid.UUID) {
	it.base.Seek(append(it.prefix[:len(it.prefix):len(it.prefix)], root[:]...))
	it.cachedValue = nil
}

// Valid reports whether the iterator points at a vector.
func (it *Iterator) Valid() bool {
	return it.base.Valid()
}

// Key returns the root uuid of the current vector.
func (it *Iterator) Key() uuid.UUID {
	var root uuid.UUID
	copy(root[:], it.base.Item().Key()[len(it.prefix):])
	return root
}

// Value returns the current vector.
func (it *Iterator) Value() (v *paramvec.Vector, err error) {
	if it.cachedValue != nil {
		return it.cachedValue, nil
	}

	item := it.base.Item()
	if item == nil {
		return nil, nil
	}

	var st paramvec.State
	err = item.Value(func(val []byte) error {
		st, err = paramvec.DecodeState(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = checkRoot(st, it.Key())
	if err != nil {
		return nil, err
	}

	it.cachedValue = it.s.restore(st)
	return it.cachedValue, nil
}

// Collect collects all the vectors from the iterator and returns them as a slice.
func Collect(it *Iterator) ([]*paramvec.Vector, error) {
	var vs []*paramvec.Vector
	for it.Rewind(); it.Valid(); it.Next() {
		v, err := it.Value()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}
