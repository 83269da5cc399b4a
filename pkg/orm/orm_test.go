package orm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/stow/pkg/kv"
	_ "github.com/cuemby/stow/pkg/kv/boltdriver"
	"github.com/cuemby/stow/pkg/orm"
)

type user struct {
	ID   uint64 `stow:"pk"`
	Name string
	Tags []string
}

type item struct {
	ID  uint64 `stow:"pk"`
	SKU string `stow:"index"`
}

func openMemory(t *testing.T) *kv.DB {
	t.Helper()
	db, err := kv.Open("memory://"+t.Name(), kv.FlagCreateIfNotExists)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestSaveLoadRoundTrip covers scenario 4: saving a record with a slice
// field containing duplicates, then loading it back with duplicates
// collapsed and elements in encoded-key order.
func TestSaveLoadRoundTrip(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(user{})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		if err := orm.CreateModel(tx, m); err != nil {
			return err
		}
		return orm.Save(tx, m, &user{ID: 42, Name: "ada", Tags: []string{"x", "y", "x"}})
	})
	require.NoError(t, err)

	var out user
	err = db.View(func(tx *kv.Tx) error {
		return orm.Load(tx, m, uint64(42), &out)
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), out.ID)
	assert.Equal(t, "ada", out.Name)
	assert.Equal(t, []string{"x", "y"}, out.Tags)
}

// TestSaveTwiceIsByteIdentical covers the slice-field idempotence
// invariant: saving the same slice twice produces the same observable
// record as saving it once.
func TestSaveTwiceIsByteIdentical(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(user{})
	require.NoError(t, err)

	rec := &user{ID: 1, Name: "ada", Tags: []string{"a", "b"}}
	err = db.Update(func(tx *kv.Tx) error {
		if err := orm.CreateModel(tx, m); err != nil {
			return err
		}
		if err := orm.Save(tx, m, rec); err != nil {
			return err
		}
		return orm.Save(tx, m, rec)
	})
	require.NoError(t, err)

	var out user
	err = db.View(func(tx *kv.Tx) error {
		return orm.Load(tx, m, uint64(1), &out)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Tags)
}

// TestIndexedUpdate covers scenario 5: saving a record twice with a
// changed indexed field value retargets the index, and the previous
// value no longer resolves.
func TestIndexedUpdate(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(item{})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		if err := orm.CreateModel(tx, m); err != nil {
			return err
		}
		if err := orm.Save(tx, m, &item{ID: 1, SKU: "A"}); err != nil {
			return err
		}
		return orm.Save(tx, m, &item{ID: 1, SKU: "B"})
	})
	require.NoError(t, err)

	err = db.View(func(tx *kv.Tx) error {
		var out item
		err := orm.LoadByIndex(tx, m, "SKU", "A", &out)
		assert.ErrorIs(t, err, kv.ErrNoMatchingRecord)

		err = orm.LoadByIndex(tx, m, "SKU", "B", &out)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), out.ID)
		assert.Equal(t, "B", out.SKU)
		return nil
	})
	require.NoError(t, err)
}

// TestListIteratesInPrimaryKeyOrder exercises List across several records.
func TestListIteratesInPrimaryKeyOrder(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(item{})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		if err := orm.CreateModel(tx, m); err != nil {
			return err
		}
		for i, sku := range []string{"A", "B", "C"} {
			if err := orm.Save(tx, m, &item{ID: uint64(i + 1), SKU: sku}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	var seen []string
	err = db.View(func(tx *kv.Tx) error {
		return orm.List(tx, m, func() any { return &item{} }, func(out any) error {
			seen = append(seen, out.(*item).SKU)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, seen)
}

// TestRemoveClearsRowAndSlices verifies Remove leaves no trace: the record
// no longer loads, and its row bucket and slice bucket are gone.
func TestRemoveClearsRowAndSlices(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(user{})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		if err := orm.CreateModel(tx, m); err != nil {
			return err
		}
		return orm.Save(tx, m, &user{ID: 7, Name: "grace", Tags: []string{"x"}})
	})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		return orm.Remove(tx, m, &user{ID: 7, Name: "grace", Tags: []string{"x"}})
	})
	require.NoError(t, err)

	err = db.View(func(tx *kv.Tx) error {
		var out user
		return orm.Load(tx, m, uint64(7), &out)
	})
	assert.ErrorIs(t, err, kv.ErrNoMatchingRecord)

	err = db.View(func(tx *kv.Tx) error {
		row, err := tx.Bucket([]byte("user.0000000000000007"))
		require.NoError(t, err)
		assert.Nil(t, row)
		tags, err := tx.Bucket([]byte("user.0000000000000007.Tags"))
		require.NoError(t, err)
		assert.Nil(t, tags)
		return nil
	})
	require.NoError(t, err)
}

// TestLoadMissingRecord covers the "no matching record" path for both
// Load and LoadByIndex against an empty model.
func TestLoadMissingRecord(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(item{})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		return orm.CreateModel(tx, m)
	})
	require.NoError(t, err)

	err = db.View(func(tx *kv.Tx) error {
		var out item
		err := orm.Load(tx, m, uint64(999), &out)
		assert.ErrorIs(t, err, kv.ErrNoMatchingRecord)

		err = orm.LoadByIndex(tx, m, "SKU", "missing", &out)
		assert.ErrorIs(t, err, kv.ErrNoMatchingRecord)
		return nil
	})
	require.NoError(t, err)
}

// TestSaveWithoutCreateModelFails verifies Save requires CreateModel to
// have run first, per the model bucket existing precondition.
func TestSaveWithoutCreateModelFails(t *testing.T) {
	db := openMemory(t)
	m, err := orm.Describe(user{})
	require.NoError(t, err)

	err = db.Update(func(tx *kv.Tx) error {
		return orm.Save(tx, m, &user{ID: 1, Name: "x"})
	})
	assert.ErrorIs(t, err, kv.ErrBucketNotFound)
}

func TestDescribeRequiresPrimaryKey(t *testing.T) {
	type noKey struct {
		Name string
	}
	_, err := orm.Describe(noKey{})
	assert.Error(t, err)
}

func TestDescribeRejectsDuplicatePrimaryKey(t *testing.T) {
	type twoKeys struct {
		A uint64 `stow:"pk"`
		B uint64 `stow:"pk"`
	}
	_, err := orm.Describe(twoKeys{})
	assert.Error(t, err)
}
