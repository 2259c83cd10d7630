package testutil

import (
	"fmt"
	"sync"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// OpenDB opens an in-memory BadgerDB that is closed when the test finishes.
func OpenDB(t testing.TB) *badger.DB {
	opt := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opt)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// PrepareTxn creates a transaction on the given database that is discarded when the test finishes.
func PrepareTxn(t testing.TB, db *badger.DB, update bool) *badger.Txn {
	txn := db.NewTransaction(update)
	t.Cleanup(func() {
		txn.Discard()
	})
	return txn
}

// Logger is a badger.Logger that records the messages written to it.
type Logger struct {
	mu       sync.Mutex
	Warnings []string
	Debugs   []string
}

// Errorf implements the badger.Logger interface.
func (l *Logger) Errorf(format string, args ...interface{}) {}

// Warningf implements the badger.Logger interface.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

// Infof implements the badger.Logger interface.
func (l *Logger) Infof(format string, args ...interface{}) {}

// Debugf implements the badger.Logger interface.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, fmt.Sprintf(format, args...))
}
