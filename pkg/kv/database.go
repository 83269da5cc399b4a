package kv

import (
	"fmt"

	"github.com/cuemby/stow/pkg/log"
)

// DB is an open handle to a bucket-namespaced key-value store. A DB is
// safe for concurrent use by multiple goroutines; each View/Update call
// runs in its own transaction.
type DB struct {
	uri  string
	conn Conn
}

// Open parses uri as "scheme://rest", looks up the driver registered for
// scheme, and asks it to connect. It returns ErrUnsupportedDriver if the
// URI is malformed or no driver is registered for its scheme.
func Open(uri string, flags Flags) (*DB, error) {
	scheme, rest, err := splitURI(uri)
	if err != nil {
		return nil, err
	}
	driver, ok := lookupDriver(scheme)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, scheme)
	}
	conn, err := driver.Connect(rest, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	log.WithComponent("kv").Info().Str("uri", uri).Msg("database opened")
	return &DB{uri: uri, conn: conn}, nil
}

// View runs fn in a read-only transaction. The transaction is always
// rolled back: View never mutates the database regardless of what fn
// returns. A panic inside fn is recovered and reported as
// ErrUncaughtException after the transaction is rolled back.
func (db *DB) View(fn func(*Tx) error) (err error) {
	raw, err := db.conn.Begin(false)
	if err != nil {
		return wrapDriverErr("begin", err)
	}
	tx := newTx(raw)
	defer func() {
		if r := recover(); r != nil {
			tx.Drop()
			log.WithComponent("kv").Error().Str("tx_id", tx.ID()).Interface("panic", r).Msg("recovered panic in View")
			err = fmt.Errorf("%w: %v", ErrUncaughtException, r)
		}
	}()
	defer tx.Drop()
	return fn(tx)
}

// Update runs fn in a read-write transaction. If fn returns nil the
// transaction commits; otherwise, or if fn panics, it rolls back. A
// panic inside fn is recovered and reported as ErrUncaughtException after
// rollback.
func (db *DB) Update(fn func(*Tx) error) (err error) {
	raw, beginErr := db.conn.Begin(true)
	if beginErr != nil {
		return wrapDriverErr("begin", beginErr)
	}
	tx := newTx(raw)
	committed := false
	defer func() {
		if r := recover(); r != nil {
			tx.Drop()
			log.WithComponent("kv").Error().Str("tx_id", tx.ID()).Interface("panic", r).Msg("recovered panic in Update")
			err = fmt.Errorf("%w: %v", ErrUncaughtException, r)
			return
		}
		if !committed {
			tx.Drop()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Close releases all resources held by the database. Close is idempotent.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	log.WithComponent("kv").Info().Str("uri", db.uri).Msg("database closed")
	return wrapDriverErr("close", err)
}

// Stat reports the database's bucket count, gathered via a single
// read-only transaction. It carries no on-disk size information.
type Stat struct {
	// BucketCount is the number of live, user-created buckets (the two
	// reserved bookkeeping buckets are not counted).
	BucketCount int
}

// Stat opens a read-only transaction and reports summary statistics.
func (db *DB) Stat() (Stat, error) {
	var st Stat
	err := db.View(func(tx *Tx) error {
		entries, err := tx.Buckets()
		if err != nil {
			return err
		}
		st.BucketCount = len(entries)
		return nil
	})
	return st, err
}
