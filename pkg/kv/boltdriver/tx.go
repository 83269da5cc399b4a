package boltdriver

import (
	bolt "go.etcd.io/bbolt"

	"github.com/cuemby/stow/pkg/kv"
)

// rawTx implements kv.RawTx over a bbolt transaction and its root bucket.
type rawTx struct {
	tx     *bolt.Tx
	bucket *bolt.Bucket
}

func (r *rawTx) Writable() bool { return r.tx.Writable() }

func (r *rawTx) Get(key []byte) ([]byte, bool) {
	v := r.bucket.Get(key)
	if v == nil {
		return nil, false
	}
	return v, true
}

func (r *rawTx) Put(key, value []byte) error {
	if !r.tx.Writable() {
		return kv.ErrReadOnlyViolation
	}
	return r.bucket.Put(key, value)
}

func (r *rawTx) Delete(key []byte) error {
	if !r.tx.Writable() {
		return kv.ErrReadOnlyViolation
	}
	return r.bucket.Delete(key)
}

func (r *rawTx) Cursor() kv.RawCursor {
	return &rawCursor{c: r.bucket.Cursor()}
}

func (r *rawTx) Commit() error {
	if !r.tx.Writable() {
		return r.tx.Rollback()
	}
	return r.tx.Commit()
}

func (r *rawTx) Rollback() error {
	return r.tx.Rollback()
}

// rawCursor implements kv.RawCursor over a bbolt cursor, which already
// iterates in ascending byte-lexicographic key order.
type rawCursor struct {
	c *bolt.Cursor
}

func (rc *rawCursor) Seek(prefix []byte) (key, value []byte, ok bool) {
	k, v := rc.c.Seek(prefix)
	if k == nil {
		return nil, nil, false
	}
	return k, v, true
}

func (rc *rawCursor) Next() (key, value []byte, ok bool) {
	k, v := rc.c.Next()
	if k == nil {
		return nil, nil, false
	}
	return k, v, true
}
