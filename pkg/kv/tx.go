package kv

import (
	"bytes"

	"github.com/google/uuid"

	"github.com/cuemby/stow/pkg/codec"
)

type txState int

const (
	txFresh txState = iota
	txActive
	txClosed
)

// Tx is a transaction bound to a Database. It owns all buckets, iterators
// and values derived from it; they become invalid once the transaction
// commits or drops. A Tx is not safe for concurrent use.
type Tx struct {
	raw      RawTx
	bm       *bucketManager
	writable bool
	state    txState
	id       string
}

func newTx(raw RawTx) *Tx {
	t := &Tx{}
	t.Reset(raw)
	return t
}

// Reset re-arms a Tx value to wrap a freshly begun raw transaction,
// returning it to the active state, so a caller holding its own RawTx can
// reuse one Tx value. Database.View/Update do not reuse Tx values; they
// allocate a new one per call.
func (t *Tx) Reset(raw RawTx) {
	t.raw = raw
	t.bm = newBucketManager(raw)
	t.writable = raw.Writable()
	t.state = txActive
	t.id = uuid.NewString()
}

// Writable reports whether this transaction permits writes.
func (t *Tx) Writable() bool { return t.writable }

// ID returns a correlation identifier unique to this transaction, for
// tying together log lines emitted while it is open.
func (t *Tx) ID() string { return t.id }

func (t *Tx) requireActive() error {
	if t.state != txActive {
		return ErrTransactionClosed
	}
	return nil
}

func (t *Tx) requireWritable() error {
	if !t.writable {
		return ErrReadOnlyViolation
	}
	return nil
}

// CreateBucket allocates and binds a new bucket named name. It fails with
// ErrBucketAlreadyExists if the name is already bound or reserved.
func (t *Tx) CreateBucket(name []byte) (*Bucket, error) {
	if err := t.requireActive(); err != nil {
		return nil, err
	}
	if err := t.requireWritable(); err != nil {
		return nil, err
	}
	return t.bm.createBucket(name)
}

// CreateBucketIfNotExists returns the bucket named name, creating it if
// absent.
func (t *Tx) CreateBucketIfNotExists(name []byte) (*Bucket, error) {
	if err := t.requireActive(); err != nil {
		return nil, err
	}
	if err := t.requireWritable(); err != nil {
		return nil, err
	}
	return t.bm.createBucketIfNotExists(name)
}

// Bucket returns the handle for name, or nil if no such bucket exists.
func (t *Tx) Bucket(name []byte) (*Bucket, error) {
	if err := t.requireActive(); err != nil {
		return nil, err
	}
	return t.bm.bucket(name)
}

// RemoveBucket deletes b and all of its entries, releasing its identity
// for reuse.
func (t *Tx) RemoveBucket(b *Bucket) error {
	if err := t.requireActive(); err != nil {
		return err
	}
	if err := t.requireWritable(); err != nil {
		return err
	}
	return t.bm.removeBucket(b)
}

// Buckets returns every live bucket's (name, handle), ordered by name.
func (t *Tx) Buckets() ([]BucketEntry, error) {
	if err := t.requireActive(); err != nil {
		return nil, err
	}
	return t.bm.buckets(), nil
}

// Set upserts key -> value in bucket b.
func (t *Tx) Set(b *Bucket, key, value []byte) error {
	if err := t.requireActive(); err != nil {
		return err
	}
	if err := t.requireWritable(); err != nil {
		return err
	}
	if b == nil {
		return ErrBucketNotFound
	}
	return t.raw.Put(bucketKey(b.id, key), value)
}

// Get returns the value for key in bucket b, and whether it was present.
func (t *Tx) Get(b *Bucket, key []byte) ([]byte, bool, error) {
	if err := t.requireActive(); err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, ErrBucketNotFound
	}
	v, ok := t.raw.Get(bucketKey(b.id, key))
	return v, ok, nil
}

// Remove deletes key from bucket b. It is not an error for key to be
// absent.
func (t *Tx) Remove(b *Bucket, key []byte) error {
	if err := t.requireActive(); err != nil {
		return err
	}
	if err := t.requireWritable(); err != nil {
		return err
	}
	if b == nil {
		return ErrBucketNotFound
	}
	return t.raw.Delete(bucketKey(b.id, key))
}

// Iterator returns an ordered sequence over bucket b's entries, keys
// stripped of the bucket's identity prefix.
func (t *Tx) Iterator(b *Bucket) (*Iterator, error) {
	if err := t.requireActive(); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBucketNotFound
	}
	return &Iterator{cursor: t.raw.Cursor(), prefix: bucketKey(b.id, nil)}, nil
}

// Commit makes all writes durable and visible atomically, and closes the
// transaction.
func (t *Tx) Commit() error {
	if err := t.requireActive(); err != nil {
		return err
	}
	t.state = txClosed
	return wrapDriverErr("commit", t.raw.Commit())
}

// Drop rolls back the transaction. Drop is idempotent: calling it on an
// already-closed Tx is a no-op.
func (t *Tx) Drop() {
	if t.state != txActive {
		return
	}
	t.state = txClosed
	_ = t.raw.Rollback()
}

// --- Typed convenience helpers ---

// GetUint64 decodes the value at key in bucket b as a big-endian uint64.
// It returns (0, false) both when the key is absent and when the stored
// value cannot be decoded as a uint64.
func (t *Tx) GetUint64(b *Bucket, key []byte) (uint64, bool, error) {
	v, ok, err := t.Get(b, key)
	if err != nil || !ok {
		return 0, false, err
	}
	n, decErr := codec.DecodeUint64(v)
	if decErr != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// SetUint64 encodes v as big-endian and upserts it at key in bucket b.
func (t *Tx) SetUint64(b *Bucket, key []byte, v uint64) error {
	return t.Set(b, key, codec.EncodeUint64(v))
}

// GetString decodes the value at key in bucket b as a UTF-8 string.
func (t *Tx) GetString(b *Bucket, key []byte) (string, bool, error) {
	v, ok, err := t.Get(b, key)
	if err != nil || !ok {
		return "", false, err
	}
	s, _ := codec.DecodeString(v)
	return s, true, nil
}

// SetString upserts string value v at key in bucket b.
func (t *Tx) SetString(b *Bucket, key []byte, v string) error {
	return t.Set(b, key, codec.EncodeString(v))
}

// Iterator is an ordered sequence of (key, value) pairs over one bucket's
// entries, valid only for the lifetime of the Tx that produced it.
type Iterator struct {
	cursor  RawCursor
	prefix  []byte
	started bool
}

// Next advances the iterator and returns the next (key, value) pair with
// the bucket's identity prefix stripped, or ok=false when exhausted.
func (it *Iterator) Next() (key, value []byte, ok bool) {
	var k, v []byte
	var found bool
	if !it.started {
		k, v, found = it.cursor.Seek(it.prefix)
		it.started = true
	} else {
		k, v, found = it.cursor.Next()
	}
	if !found || !bytes.HasPrefix(k, it.prefix) {
		return nil, nil, false
	}
	return k[len(it.prefix):], v, true
}
