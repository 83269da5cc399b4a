/*
Package kv implements stow's transactional bucket-namespaced key-value
core: a pluggable driver contract, bucket identity allocation and reuse,
transaction lifecycle, typed encoding on top of raw bytes, and the
Database façade that scopes transactions to a callback.

# Architecture

	┌─────────────────────── KV CORE ───────────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │              Database                       │          │
	│  │  - Holds a Driver                           │          │
	│  │  - View(fn)  -> read-only Tx, always Drop   │          │
	│  │  - Update(fn) -> read-write Tx, Commit/Drop  │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │                Tx                           │          │
	│  │  - fresh -> active -> committed|rolled-back │          │
	│  │  - Get/Set/Remove/Iterator (typed + raw)    │          │
	│  │  - delegates bucket ops to bucketManager     │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            bucketManager                     │          │
	│  │  - $meta:name->id, $meta:freelist            │          │
	│  │  - createBucket / removeBucket / buckets()   │          │
	│  │  - smallest-free-identity-first reuse        │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │              Driver (RawTx)                  │          │
	│  │  - flat ordered byte keyspace                │          │
	│  │  - reference: pkg/kv/boltdriver (bbolt)      │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────────┘

# Key layout

Every user-visible entry in a bucket with identity I is stored at the raw
driver key big-endian(I) || userKey. Ordered iteration of a bucket is a
byte-range scan over the prefix big-endian(I), which is exactly what a
driver's Cursor already provides over its flat keyspace — bucket identity
allocation is pure bookkeeping on top of one ordered keyspace, not a
feature the driver itself needs to know about.

# Usage

	db, err := kv.Open("bolt:///var/lib/stow/cluster.db", kv.FlagCreateIfNotExists)
	if err != nil { ... }
	defer db.Close()

	err = db.Update(func(tx *kv.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte("nodes"))
		if err != nil { return err }
		return tx.Set(b, []byte("node-1"), []byte("ready"))
	})

# See also

  - pkg/kv/boltdriver for the reference driver implementation.
  - pkg/orm for the model layer built on top of this package.
  - pkg/codec for the byte encoding used by typed Tx helpers.
*/
package kv
