package kv

// Driver is the contract a storage engine must implement to back a
// Database. Drivers provide a flat, ordered byte-keyspace with ACID
// transactions; stow's bucket manager builds the bucket-identity-prefix
// layout on top of that flat keyspace, so a driver itself never needs to
// understand buckets.
type Driver interface {
	// Connect opens or creates the backing store at path according to
	// flags. It is called once per Open.
	Connect(path string, flags Flags) (Conn, error)
}

// Conn is an open connection to a backing store, able to start
// transactions. Conn is safe for concurrent use by multiple goroutines.
type Conn interface {
	// Begin starts a new transaction. If writable is true the returned
	// RawTx supports Put/Delete and the driver serializes it against any
	// other write transaction; read-only transactions may run
	// concurrently with a stable snapshot.
	Begin(writable bool) (RawTx, error)
	// Close releases all resources held by the connection. Close is
	// idempotent.
	Close() error
}

// RawTx is a single read-only or read-write transaction over a driver's
// flat, ordered byte keyspace.
type RawTx interface {
	// Writable reports whether this transaction permits Put/Delete.
	Writable() bool
	// Get returns the value stored at key, or (nil, false) if absent.
	// The returned slice is only valid until the transaction ends.
	Get(key []byte) ([]byte, bool)
	// Put upserts key -> value. Returns ErrReadOnlyViolation if the
	// transaction is not writable.
	Put(key, value []byte) error
	// Delete removes key, if present. It is not an error for key to be
	// absent. Returns ErrReadOnlyViolation if the transaction is not
	// writable.
	Delete(key []byte) error
	// Cursor returns an ordered iterator over the whole keyspace,
	// starting before the first key.
	Cursor() RawCursor
	// Commit makes all writes durable and visible atomically, and ends
	// the transaction. Read-only transactions may also be committed,
	// equivalently to Rollback.
	Commit() error
	// Rollback discards any writes and ends the transaction. Rollback is
	// idempotent.
	Rollback() error
}

// RawCursor iterates a RawTx's keyspace in ascending byte-lexicographic
// key order.
type RawCursor interface {
	// Seek positions the cursor at the first key >= prefix and returns
	// it, or (nil, nil, false) if none exists.
	Seek(prefix []byte) (key, value []byte, ok bool)
	// Next advances the cursor and returns the next key, or
	// (nil, nil, false) when iteration is exhausted.
	Next() (key, value []byte, ok bool)
}
