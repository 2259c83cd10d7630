package store

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/paramvec"
	"github.com/google/uuid"
)

const (
	vectorSpace byte = 0x01
	nameSpace   byte = 0x02
)

// Store persists vectors in a badger database keyed by their root uuid.
// Vectors are also indexed by name, several independent vectors may share one.
type Store struct {
	db     *badger.DB
	prefix []byte
	logger badger.Logger
}

// New creates a new Store.
func New(db *badger.DB, opts ...func(*Store)) *Store {
	s := &Store{
		db:     db,
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithPrefix sets the prefix all keys of the Store are written under.
func WithPrefix(prefix []byte) func(*Store) {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger of the Store.
func WithLogger(logger badger.Logger) func(*Store) {
	return func(s *Store) {
		s.logger = logger
	}
}

func (s *Store) vectorKey(root uuid.UUID) []byte {
	return append(s.vectorPrefix(), root[:]...)
}

func (s *Store) vectorPrefix() []byte {
	key := make([]byte, 0, len(s.prefix)+1+len(uuid.UUID{}))
	key = append(key, s.prefix...)
	return append(key, vectorSpace)
}

func (s *Store) namePrefix(name string) []byte {
	key := make([]byte, 0, len(s.prefix)+len(name)+2+len(uuid.UUID{}))
	key = append(key, s.prefix...)
	key = append(key, nameSpace)
	key = append(key, name...)
	return append(key, 0x00)
}

func (s *Store) nameKey(name string, root uuid.UUID) []byte {
	return append(s.namePrefix(name), root[:]...)
}

// Save writes the vector to the store, replacing a previously saved state with the same root uuid.
func (s *Store) Save(v *paramvec.Vector) error {
	bz, err := v.MarshalBinary()
	if err != nil {
		return err
	}

	root := v.RootUUID()
	err = s.db.Update(func(txn *badger.Txn) error {
		old, err := s.getState(txn, root)
		switch {
		case errors.Is(err, paramvec.ErrNotFound):
		case errors.Is(err, paramvec.ErrInconsistentState):
			s.logger.Warningf("overwriting vector %s: %v", root, err)
			if old.Name != v.Name() {
				err = txn.Delete(s.nameKey(old.Name, root))
				if err != nil {
					return fmt.Errorf("failed to delete name index: %w", err)
				}
			}
		case err != nil:
			return err
		case old.Name != v.Name():
			err = txn.Delete(s.nameKey(old.Name, root))
			if err != nil {
				return fmt.Errorf("failed to delete name index: %w", err)
			}
		}

		err = txn.Set(s.vectorKey(root), bz)
		if err != nil {
			return fmt.Errorf("failed to set vector: %w", err)
		}
		err = txn.Set(s.nameKey(v.Name(), root), nil)
		if err != nil {
			return fmt.Errorf("failed to set name index: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save vector %s: %w", root, err)
	}

	s.logger.Debugf("saved vector %q (%s) with %d elements", v.Name(), root, v.Len())
	return nil
}

// Load loads the vector with the given root uuid.
func (s *Store) Load(root uuid.UUID) (v *paramvec.Vector, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		v, err = s.load(txn, root)
		return err
	})
	return v, err
}

func (s *Store) load(txn *badger.Txn, root uuid.UUID) (*paramvec.Vector, error) {
	st, err := s.getState(txn, root)
	if err != nil {
		return nil, err
	}
	return s.restore(st), nil
}

func (s *Store) getState(txn *badger.Txn, root uuid.UUID) (st paramvec.State, err error) {
	item, err := txn.Get(s.vectorKey(root))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return st, fmt.Errorf("%w: vector %s", paramvec.ErrNotFound, root)
		}
		return st, fmt.Errorf("failed to get vector %s: %w", root, err)
	}

	err = item.Value(func(val []byte) error {
		st, err = paramvec.DecodeState(val)
		return err
	})
	if err != nil {
		return st, err
	}
	return st, checkRoot(st, root)
}

// checkRoot verifies that the state stored under root carries the same root.
func checkRoot(st paramvec.State, root uuid.UUID) error {
	if st.Root != root {
		return fmt.Errorf("%w: vector stored under %s has root %s", paramvec.ErrInconsistentState, root, st.Root)
	}
	return nil
}

// restore rebuilds the vector from its stored state. Stored element identities
// that disagree with the root are logged and replaced.
func (s *Store) restore(st paramvec.State) *paramvec.Vector {
	if err := st.Verify(); err != nil {
		s.logger.Warningf("vector %q (%s) rederived from root: %v", st.Name, st.Root, err)
	}
	return paramvec.FromState(st)
}

// Delete removes the vector with the given root uuid from the store.
func (s *Store) Delete(root uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		st, err := s.getState(txn, root)
		if err != nil && !errors.Is(err, paramvec.ErrInconsistentState) {
			return err
		}

		err = txn.Delete(s.vectorKey(root))
		if err != nil {
			return fmt.Errorf("failed to delete vector %s: %w", root, err)
		}
		err = txn.Delete(s.nameKey(st.Name, root))
		if err != nil {
			return fmt.Errorf("failed to delete name index: %w", err)
		}
		return nil
	})
}

// FindByName returns all vectors saved under the given name ordered by root uuid.
func (s *Store) FindByName(name string) (vs []*paramvec.Vector, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		prefix := s.namePrefix(name)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		var roots []uuid.UUID
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			if len(key) != len(prefix)+len(uuid.UUID{}) {
				continue
			}
			root, err := uuid.FromBytes(key[len(prefix):])
			if err != nil {
				return fmt.Errorf("invalid name index key: %w", err)
			}
			roots = append(roots, root)
		}

		for _, root := range roots {
			v, err := s.load(txn, root)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		return nil
	})
	return vs, err
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Debugf(string, ...interface{})   {}
