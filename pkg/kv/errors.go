package kv

import (
	"errors"
	"fmt"
)

// Sentinel errors for the kv and orm packages. Callers should compare with
// errors.Is, since internal wrapping (fmt.Errorf("...: %w", err)) is used
// throughout to attach operation context.
var (
	// ErrUnsupportedDriver is returned by Open when the URI scheme has no
	// registered driver, or the URI is malformed (missing "://" or an
	// empty remainder).
	ErrUnsupportedDriver = errors.New("kv: unsupported driver")
	// ErrConnectionFailed is returned when the backing store could not
	// be opened by the driver.
	ErrConnectionFailed = errors.New("kv: connection failed")
	// ErrReadOnlyViolation is returned when a write is attempted against
	// a read-only transaction.
	ErrReadOnlyViolation = errors.New("kv: write attempted on read-only transaction")
	// ErrTransactionClosed is returned by any operation on a transaction
	// that has already committed or rolled back.
	ErrTransactionClosed = errors.New("kv: transaction is closed")
	// ErrBucketNotFound is returned when a named bucket does not exist.
	ErrBucketNotFound = errors.New("kv: bucket not found")
	// ErrBucketAlreadyExists is returned by createBucket when the name is
	// already bound, including names colliding with a reserved prefix.
	ErrBucketAlreadyExists = errors.New("kv: bucket already exists")
	// ErrKeyNotFound is surfaced only by typed helpers that promise
	// presence; Get returns a (nil, false) pair instead of this error.
	ErrKeyNotFound = errors.New("kv: key not found")
	// ErrNoMatchingRecord is returned by ORM load operations that find no
	// row for the given primary key or index value.
	ErrNoMatchingRecord = errors.New("orm: no matching record")
	// ErrIntegrityError is returned when a bucket the ORM layer expects to
	// exist (e.g. a row bucket referenced by the model bucket) is missing.
	ErrIntegrityError = errors.New("orm: integrity error, referenced bucket missing")
	// ErrUncaughtException is returned by View/Update when the callback
	// panics; the panic value is included in the wrapped message.
	ErrUncaughtException = errors.New("kv: uncaught exception in scoped callback")
)

// InternalDriverError wraps a failure reported by the underlying storage
// engine, preserving it for errors.Unwrap/errors.As.
type InternalDriverError struct {
	Op  string
	Err error
}

func (e *InternalDriverError) Error() string {
	return fmt.Sprintf("kv: driver error during %s: %v", e.Op, e.Err)
}

func (e *InternalDriverError) Unwrap() error { return e.Err }

// wrapDriverErr wraps err (if non-nil) as an *InternalDriverError tagged
// with the operation that failed.
func wrapDriverErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InternalDriverError{Op: op, Err: err}
}
