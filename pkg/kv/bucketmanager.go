package kv

import (
	"bytes"

	"github.com/cuemby/stow/pkg/codec"
	"github.com/cuemby/stow/pkg/log"
)

// bucketManager namespaces a RawTx's flat keyspace into named, identity
// prefixed buckets, backed by two reserved meta buckets: a name->identity
// map and a free list of released identities.
type bucketManager struct {
	raw RawTx
}

func newBucketManager(raw RawTx) *bucketManager {
	return &bucketManager{raw: raw}
}

func (m *bucketManager) lookupID(name []byte) (uint32, bool) {
	v, ok := m.raw.Get(bucketKey(metaNameToIDIdentity, name))
	if !ok {
		return 0, false
	}
	return decodeIdentity(v), true
}

// smallestFreeIdentity pops and returns the smallest identity in the free
// list, or (0, false) if the free list is empty.
func (m *bucketManager) smallestFreeIdentity() (uint32, bool) {
	prefix := bucketKey(metaFreeListIdentity, nil)
	c := m.raw.Cursor()
	k, _, ok := c.Seek(prefix)
	if !ok || !bytes.HasPrefix(k, prefix) {
		return 0, false
	}
	id := decodeIdentity(k[len(prefix):])
	_ = m.raw.Delete(k)
	return id, true
}

// maxAllocatedIdentity scans the name->identity map for the highest
// identity currently bound to a live bucket. Bucket counts are expected to
// stay small (one per model plus per-row/per-index buckets), so a linear
// scan here is cheap compared to the data it gates.
func (m *bucketManager) maxAllocatedIdentity() uint32 {
	prefix := bucketKey(metaNameToIDIdentity, nil)
	var max uint32
	c := m.raw.Cursor()
	k, v, ok := c.Seek(prefix)
	for ok && bytes.HasPrefix(k, prefix) {
		if id := decodeIdentity(v); id > max {
			max = id
		}
		k, v, ok = c.Next()
	}
	return max
}

func (m *bucketManager) allocateIdentity() uint32 {
	if id, ok := m.smallestFreeIdentity(); ok {
		return id
	}
	return m.maxAllocatedIdentity() + 1
}

// createBucket allocates a fresh identity for name and binds it. It fails
// with ErrBucketAlreadyExists if name is already bound or begins with the
// reserved prefix.
func (m *bucketManager) createBucket(name []byte) (*Bucket, error) {
	if isReservedName(name) {
		return nil, ErrBucketAlreadyExists
	}
	if _, ok := m.lookupID(name); ok {
		return nil, ErrBucketAlreadyExists
	}
	id := m.allocateIdentity()
	if err := m.raw.Put(bucketKey(metaNameToIDIdentity, name), codec.EncodeUint32(id)); err != nil {
		return nil, err
	}
	log.WithComponent("kv").Debug().Bytes("bucket", name).Uint32("id", id).Msg("bucket created")
	return &Bucket{name: append([]byte(nil), name...), id: id}, nil
}

// createBucketIfNotExists returns the existing bucket handle for name, or
// creates it if absent.
func (m *bucketManager) createBucketIfNotExists(name []byte) (*Bucket, error) {
	if b, err := m.bucket(name); err != nil {
		return nil, err
	} else if b != nil {
		return b, nil
	}
	return m.createBucket(name)
}

// bucket returns the handle for name, or nil if no such bucket exists.
func (m *bucketManager) bucket(name []byte) (*Bucket, error) {
	id, ok := m.lookupID(name)
	if !ok {
		return nil, nil
	}
	return &Bucket{name: append([]byte(nil), name...), id: id}, nil
}

// removeBucket erases every entry under b's identity prefix, erases the
// name->identity binding, and releases the identity for reuse. It is
// idempotent: removing a bucket not found by name returns
// ErrBucketNotFound, but removing entries that are already gone is not an
// error.
func (m *bucketManager) removeBucket(b *Bucket) error {
	if b == nil {
		return ErrBucketNotFound
	}
	if _, ok := m.lookupID(b.name); !ok {
		return ErrBucketNotFound
	}

	prefix := bucketKey(b.id, nil)
	var toDelete [][]byte
	c := m.raw.Cursor()
	k, _, ok := c.Seek(prefix)
	for ok && bytes.HasPrefix(k, prefix) {
		toDelete = append(toDelete, append([]byte(nil), k...))
		k, _, ok = c.Next()
	}
	for _, k := range toDelete {
		if err := m.raw.Delete(k); err != nil {
			return err
		}
	}

	if err := m.raw.Delete(bucketKey(metaNameToIDIdentity, b.name)); err != nil {
		return err
	}
	if err := m.raw.Put(bucketKey(metaFreeListIdentity, codec.EncodeUint32(b.id)), nil); err != nil {
		return err
	}
	log.WithComponent("kv").Debug().Bytes("bucket", b.name).Uint32("id", b.id).Msg("bucket removed")
	return nil
}

// BucketEntry is one (name, handle) pair yielded by buckets(), in name
// order.
type BucketEntry struct {
	Name   []byte
	Bucket *Bucket
}

// buckets returns every live bucket's (name, handle), ordered by name.
func (m *bucketManager) buckets() []BucketEntry {
	prefix := bucketKey(metaNameToIDIdentity, nil)
	var out []BucketEntry
	c := m.raw.Cursor()
	k, v, ok := c.Seek(prefix)
	for ok && bytes.HasPrefix(k, prefix) {
		name := append([]byte(nil), k[len(prefix):]...)
		out = append(out, BucketEntry{Name: name, Bucket: &Bucket{name: name, id: decodeIdentity(v)}})
		k, v, ok = c.Next()
	}
	return out
}
