package kv

import (
	"bytes"

	"github.com/cuemby/stow/pkg/codec"
)

// reservedPrefix marks bucket names reserved for stow's own bookkeeping.
// User code may never create a bucket whose name begins with this prefix.
const reservedPrefix = "$meta:"

// Two fixed, never-allocated identities back stow's bookkeeping buckets.
// User bucket identities are allocated starting at 1 and reused smallest
// first, so they can never reach this range in practice.
const (
	metaNameToIDIdentity uint32 = 0xFFFFFFFE
	metaFreeListIdentity uint32 = 0xFFFFFFFD
)

// Bucket is a handle to a named namespace within a transaction. It is only
// valid for the lifetime of the Tx that produced it.
type Bucket struct {
	name []byte
	id   uint32
}

// Name returns the bucket's name.
func (b *Bucket) Name() []byte { return b.name }

// ID returns the bucket's stable numeric identity.
func (b *Bucket) ID() uint32 { return b.id }

func isReservedName(name []byte) bool {
	return bytes.HasPrefix(name, []byte(reservedPrefix))
}

// bucketKey returns the real driver key for a user key inside bucket id.
func bucketKey(id uint32, userKey []byte) []byte {
	prefix := codec.EncodeUint32(id)
	key := make([]byte, 0, len(prefix)+len(userKey))
	key = append(key, prefix...)
	key = append(key, userKey...)
	return key
}

func decodeIdentity(key []byte) uint32 {
	id, _ := codec.DecodeUint32(key[:4])
	return id
}
