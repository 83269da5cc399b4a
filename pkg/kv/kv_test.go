package kv_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/stow/pkg/kv"
	_ "github.com/cuemby/stow/pkg/kv/boltdriver"
)

func openMemory(t *testing.T) *kv.DB {
	t.Helper()
	db, err := kv.Open("memory://"+t.Name(), kv.FlagCreateIfNotExists)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestSmoke covers scenario 1: open, write a value in one transaction,
// read it back in another.
func TestSmoke(t *testing.T) {
	db := openMemory(t)

	err := db.Update(func(tx *kv.Tx) error {
		b, err := tx.CreateBucket([]byte("1"))
		if err != nil {
			return err
		}
		return tx.Set(b, []byte("name"), []byte("john"))
	})
	require.NoError(t, err)

	err = db.View(func(tx *kv.Tx) error {
		b, err := tx.Bucket([]byte("1"))
		require.NoError(t, err)
		require.NotNil(t, b)
		v, ok, err := tx.Get(b, []byte("name"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "john", string(v))
		return nil
	})
	require.NoError(t, err)
}

// TestIdentityReuse covers scenario 2: removing a bucket frees its identity
// for the next createBucket call, smallest free identity first.
func TestIdentityReuse(t *testing.T) {
	db := openMemory(t)

	err := db.Update(func(tx *kv.Tx) error {
		for _, name := range []string{"1", "2", "3", "4", "5"} {
			b, err := tx.CreateBucket([]byte(name))
			if err != nil {
				return err
			}
			if string(b.Name()) == "3" {
				// sanity: identities are assigned in creation order.
				assert.Equal(t, uint32(3), b.ID())
			}
		}

		b3, err := tx.Bucket([]byte("3"))
		if err != nil {
			return err
		}
		if err := tx.RemoveBucket(b3); err != nil {
			return err
		}

		b20, err := tx.CreateBucket([]byte("20"))
		if err != nil {
			return err
		}
		assert.Equal(t, uint32(3), b20.ID())
		return nil
	})
	require.NoError(t, err)
}

// TestBucketRemovalIsVisible covers the "removeBucket -> absent" invariant:
// after removal, Bucket returns nil and Buckets omits the name.
func TestBucketRemovalIsVisible(t *testing.T) {
	db := openMemory(t)

	err := db.Update(func(tx *kv.Tx) error {
		b, err := tx.CreateBucket([]byte("gone"))
		if err != nil {
			return err
		}
		return tx.RemoveBucket(b)
	})
	require.NoError(t, err)

	err = db.View(func(tx *kv.Tx) error {
		b, err := tx.Bucket([]byte("gone"))
		require.NoError(t, err)
		assert.Nil(t, b)

		entries, err := tx.Buckets()
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotEqual(t, "gone", string(e.Name))
		}
		return nil
	})
	require.NoError(t, err)
}

// TestBulkNumericIteration covers scenario 3: inserting 32-bit big-endian
// keys 0..n-1 yields them back in ascending numeric order.
func TestBulkNumericIteration(t *testing.T) {
	db := openMemory(t)
	const n = 2000 // a representative sample of the spec's 100000-key scenario

	err := db.Update(func(tx *kv.Tx) error {
		b, err := tx.CreateBucket([]byte("n"))
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			key := make([]byte, 4)
			binary.BigEndian.PutUint32(key, uint32(i))
			if err := tx.Set(b, key, key); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = db.View(func(tx *kv.Tx) error {
		b, err := tx.Bucket([]byte("n"))
		require.NoError(t, err)
		it, err := tx.Iterator(b)
		require.NoError(t, err)

		count := 0
		for {
			k, v, ok := it.Next()
			if !ok {
				break
			}
			got := binary.BigEndian.Uint32(k)
			assert.Equal(t, uint32(count), got)
			assert.Equal(t, k, v)
			count++
		}
		assert.Equal(t, n, count)
		return nil
	})
	require.NoError(t, err)
}

// TestRollback covers scenario 6: an Update whose callback returns an
// error leaves no trace of the work it attempted.
func TestRollback(t *testing.T) {
	db := openMemory(t)

	err := db.Update(func(tx *kv.Tx) error {
		if _, err := tx.CreateBucket([]byte("x")); err != nil {
			return err
		}
		return kv.ErrBucketNotFound
	})
	assert.ErrorIs(t, err, kv.ErrBucketNotFound)

	err = db.View(func(tx *kv.Tx) error {
		b, err := tx.Bucket([]byte("x"))
		require.NoError(t, err)
		assert.Nil(t, b)
		return nil
	})
	require.NoError(t, err)
}

// TestReadOnlyViolation verifies that a View transaction refuses writes.
func TestReadOnlyViolation(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Update(func(tx *kv.Tx) error {
		_, err := tx.CreateBucket([]byte("b"))
		return err
	}))

	err := db.View(func(tx *kv.Tx) error {
		b, err := tx.Bucket([]byte("b"))
		require.NoError(t, err)
		return tx.Set(b, []byte("k"), []byte("v"))
	})
	assert.ErrorIs(t, err, kv.ErrReadOnlyViolation)
}

// TestTransactionClosedAfterCommit verifies that a Tx rejects further use
// once it has committed.
func TestTransactionClosedAfterCommit(t *testing.T) {
	db := openMemory(t)
	var captured *kv.Tx
	require.NoError(t, db.Update(func(tx *kv.Tx) error {
		captured = tx
		return nil
	}))
	_, err := captured.CreateBucket([]byte("late"))
	assert.ErrorIs(t, err, kv.ErrTransactionClosed)
}

// TestReservedBucketPrefixRejected verifies user code cannot create a
// bucket under the reserved bookkeeping prefix.
func TestReservedBucketPrefixRejected(t *testing.T) {
	db := openMemory(t)
	err := db.Update(func(tx *kv.Tx) error {
		_, err := tx.CreateBucket([]byte("$meta:whatever"))
		return err
	})
	assert.ErrorIs(t, err, kv.ErrBucketAlreadyExists)
}

// TestTypedHelpersRoundTrip exercises GetUint64/SetUint64 and
// GetString/SetString, including the "decode failure reads as absent"
// contract.
func TestTypedHelpersRoundTrip(t *testing.T) {
	db := openMemory(t)
	err := db.Update(func(tx *kv.Tx) error {
		b, err := tx.CreateBucket([]byte("typed"))
		if err != nil {
			return err
		}
		if err := tx.SetUint64(b, []byte("count"), 42); err != nil {
			return err
		}
		if err := tx.SetString(b, []byte("label"), "hello"); err != nil {
			return err
		}

		n, ok, err := tx.GetUint64(b, []byte("count"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint64(42), n)

		s, ok, err := tx.GetString(b, []byte("label"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "hello", s)

		// A value too short to be a uint64 decodes as absent, not an error.
		if err := tx.Set(b, []byte("short"), []byte{1, 2}); err != nil {
			return err
		}
		_, ok, err = tx.GetUint64(b, []byte("short"))
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestStat(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Update(func(tx *kv.Tx) error {
		_, err := tx.CreateBucket([]byte("a"))
		if err != nil {
			return err
		}
		_, err = tx.CreateBucket([]byte("b"))
		return err
	}))

	st, err := db.Stat()
	require.NoError(t, err)
	assert.Equal(t, 2, st.BucketCount)
}
