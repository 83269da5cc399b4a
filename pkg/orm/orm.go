package orm

import (
	"bytes"
	"reflect"

	"github.com/cuemby/stow/pkg/codec"
	"github.com/cuemby/stow/pkg/kv"
	"github.com/cuemby/stow/pkg/log"
	"github.com/cuemby/stow/pkg/metrics"
)

// sliceElementMarker is the fixed sentinel value written for every key in
// a slice bucket. Its numeric value carries no meaning beyond "present":
// slice buckets implement set semantics, and only the key is ever read
// back.
var sliceElementMarker = []byte{0x00, 0x01}

// CreateModel ensures m's model bucket and every indexed field's index
// bucket exist. Save requires these buckets to already exist.
func CreateModel(tx *kv.Tx, m *Model) error {
	if _, err := tx.CreateBucketIfNotExists(modelBucketName(m)); err != nil {
		return err
	}
	for _, f := range m.fields {
		if !f.indexed {
			continue
		}
		if _, err := tx.CreateBucketIfNotExists(indexBucketName(m, f.name)); err != nil {
			return err
		}
	}
	return nil
}

// Save upserts obj, a pointer to a struct described by m. It updates the
// model bucket, (re)writes the row bucket, retargets any changed index
// entries, and rebuilds every slice bucket from scratch.
func Save(tx *kv.Tx, m *Model, obj any) error {
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.ORMSaveDuration, m.name)

	v, err := elemOf(obj)
	if err != nil {
		return err
	}

	pkeyEncoded, err := m.pk.encode(v.Field(m.pk.structIndex))
	if err != nil {
		return err
	}
	rowName := rowBucketName(m, pkeyEncoded)

	modelBucket, err := tx.Bucket(modelBucketName(m))
	if err != nil {
		return err
	}
	if modelBucket == nil {
		return kv.ErrBucketNotFound
	}

	oldRowBucket, err := tx.Bucket(rowName)
	if err != nil {
		return err
	}

	if err := tx.Set(modelBucket, pkeyEncoded, rowName); err != nil {
		return err
	}
	rowBucket, err := tx.CreateBucketIfNotExists(rowName)
	if err != nil {
		return err
	}

	for _, f := range m.fields {
		fieldVal := v.Field(f.structIndex)
		encoded, err := f.encode(fieldVal)
		if err != nil {
			return err
		}

		if !f.indexed {
			if err := tx.Set(rowBucket, []byte(f.name), encoded); err != nil {
				return err
			}
			continue
		}

		var oldEncoded []byte
		var hadOld bool
		if oldRowBucket != nil {
			oldEncoded, hadOld, err = tx.Get(oldRowBucket, []byte(f.name))
			if err != nil {
				return err
			}
		}

		if err := tx.Set(rowBucket, []byte(f.name), encoded); err != nil {
			return err
		}

		indexBucket, err := tx.CreateBucketIfNotExists(indexBucketName(m, f.name))
		if err != nil {
			return err
		}
		if hadOld && !bytes.Equal(oldEncoded, encoded) {
			if err := tx.Remove(indexBucket, oldEncoded); err != nil {
				return err
			}
		}
		if err := tx.Set(indexBucket, encoded, pkeyEncoded); err != nil {
			return err
		}
	}

	for _, f := range m.sliceFields {
		sBucketName := sliceBucketName(m, pkeyEncoded, f.name)
		if existing, err := tx.Bucket(sBucketName); err != nil {
			return err
		} else if existing != nil {
			if err := tx.RemoveBucket(existing); err != nil {
				return err
			}
		}
		sBucket, err := tx.CreateBucket(sBucketName)
		if err != nil {
			return err
		}
		sliceVal := v.Field(f.structIndex)
		for i := 0; i < sliceVal.Len(); i++ {
			elemEncoded, err := f.encode(sliceVal.Index(i))
			if err != nil {
				return err
			}
			if err := tx.Set(sBucket, elemEncoded, sliceElementMarker); err != nil {
				return err
			}
		}
	}

	if oldRowBucket == nil {
		metrics.ORMRecordsTotal.WithLabelValues(m.name).Inc()
	}
	log.WithModel(m.name).Debug().Str("pkey_hex", codec.Hex(pkeyEncoded)).Msg("record saved")
	return nil
}

// Load populates out, a pointer to a struct described by m, with the
// record whose primary key is pkey. It returns kv.ErrNoMatchingRecord if
// no such record exists.
func Load(tx *kv.Tx, m *Model, pkey any, out any) error {
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.ORMLoadDuration, m.name)

	pkeyEncoded, err := m.pk.encode(reflect.ValueOf(pkey))
	if err != nil {
		return err
	}
	return loadByEncodedPKey(tx, m, pkeyEncoded, out)
}

// LoadByIndex populates out with the record whose indexed field fieldName
// currently equals value. It returns kv.ErrNoMatchingRecord if no record
// matches.
func LoadByIndex(tx *kv.Tx, m *Model, fieldName string, value any, out any) error {
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.ORMLoadDuration, m.name)

	f := m.fieldByName(fieldName)
	if f == nil || !f.indexed {
		return kv.ErrIntegrityError
	}
	encoded, err := f.encode(reflect.ValueOf(value))
	if err != nil {
		return err
	}
	indexBucket, err := tx.Bucket(indexBucketName(m, fieldName))
	if err != nil {
		return err
	}
	if indexBucket == nil {
		return kv.ErrNoMatchingRecord
	}
	pkeyEncoded, found, err := tx.Get(indexBucket, encoded)
	if err != nil {
		return err
	}
	if !found {
		return kv.ErrNoMatchingRecord
	}
	return loadByEncodedPKey(tx, m, pkeyEncoded, out)
}

func loadByEncodedPKey(tx *kv.Tx, m *Model, pkeyEncoded []byte, out any) error {
	v, err := elemOf(out)
	if err != nil {
		return err
	}

	modelBucket, err := tx.Bucket(modelBucketName(m))
	if err != nil {
		return err
	}
	if modelBucket == nil {
		return kv.ErrNoMatchingRecord
	}
	rowName, found, err := tx.Get(modelBucket, pkeyEncoded)
	if err != nil {
		return err
	}
	if !found {
		return kv.ErrNoMatchingRecord
	}

	rowBucket, err := tx.Bucket(rowName)
	if err != nil {
		return err
	}
	if rowBucket == nil {
		return kv.ErrIntegrityError
	}

	if err := m.pk.decode(v.Field(m.pk.structIndex), pkeyEncoded); err != nil {
		return err
	}

	for _, f := range m.fields {
		val, found, err := tx.Get(rowBucket, []byte(f.name))
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		if err := f.decode(v.Field(f.structIndex), val); err != nil {
			return err
		}
	}

	for _, f := range m.sliceFields {
		sBucketName := sliceBucketName(m, pkeyEncoded, f.name)
		sBucket, err := tx.Bucket(sBucketName)
		if err != nil {
			return err
		}
		if sBucket == nil {
			continue
		}
		fieldVal := v.Field(f.structIndex)
		out := reflect.MakeSlice(fieldVal.Type(), 0, 0)
		it, err := tx.Iterator(sBucket)
		if err != nil {
			return err
		}
		for {
			k, _, ok := it.Next()
			if !ok {
				break
			}
			elem := reflect.New(f.elemType).Elem()
			if err := f.decode(elem, k); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
		}
		fieldVal.Set(out)
	}

	return nil
}

// List invokes fn once per record in m's model bucket, in primary-key
// order. newOut must return a fresh pointer to a struct described by m
// each time it is called; List passes that pointer to fn after
// populating it. Iteration stops at the first error returned by either
// the underlying load or fn itself.
func List(tx *kv.Tx, m *Model, newOut func() any, fn func(out any) error) error {
	modelBucket, err := tx.Bucket(modelBucketName(m))
	if err != nil {
		return err
	}
	if modelBucket == nil {
		return nil
	}
	it, err := tx.Iterator(modelBucket)
	if err != nil {
		return err
	}
	for {
		pkeyEncoded, _, ok := it.Next()
		if !ok {
			break
		}
		out := newOut()
		if err := loadByEncodedPKey(tx, m, pkeyEncoded, out); err != nil {
			return err
		}
		if err := fn(out); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes obj's row bucket, every slice bucket it owns, its model
// bucket entry, and every index entry pointing at it.
func Remove(tx *kv.Tx, m *Model, obj any) error {
	v, err := elemOf(obj)
	if err != nil {
		return err
	}

	pkeyEncoded, err := m.pk.encode(v.Field(m.pk.structIndex))
	if err != nil {
		return err
	}

	modelBucket, err := tx.Bucket(modelBucketName(m))
	if err != nil {
		return err
	}
	if modelBucket == nil {
		return kv.ErrBucketNotFound
	}

	rowName := rowBucketName(m, pkeyEncoded)
	rowBucket, err := tx.Bucket(rowName)
	if err != nil {
		return err
	}
	if rowBucket != nil {
		if err := tx.RemoveBucket(rowBucket); err != nil {
			return err
		}
	}

	for _, f := range m.sliceFields {
		sBucketName := sliceBucketName(m, pkeyEncoded, f.name)
		sBucket, err := tx.Bucket(sBucketName)
		if err != nil {
			return err
		}
		if sBucket != nil {
			if err := tx.RemoveBucket(sBucket); err != nil {
				return err
			}
		}
	}

	if err := tx.Remove(modelBucket, pkeyEncoded); err != nil {
		return err
	}

	for _, f := range m.fields {
		if !f.indexed {
			continue
		}
		encoded, err := f.encode(v.Field(f.structIndex))
		if err != nil {
			return err
		}
		indexBucket, err := tx.Bucket(indexBucketName(m, f.name))
		if err != nil {
			return err
		}
		if indexBucket != nil {
			if err := tx.Remove(indexBucket, encoded); err != nil {
				return err
			}
		}
	}

	if rowBucket != nil {
		metrics.ORMRecordsTotal.WithLabelValues(m.name).Dec()
	}
	log.WithModel(m.name).Debug().Str("pkey_hex", codec.Hex(pkeyEncoded)).Msg("record removed")
	return nil
}
