package codec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScalarRoundTrip covers every fixed-width scalar codec in one pass.
func TestScalarRoundTrip(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		v, err := DecodeUint8(EncodeUint8(200))
		assert.NoError(t, err)
		assert.Equal(t, uint8(200), v)
	})
	t.Run("uint16", func(t *testing.T) {
		v, err := DecodeUint16(EncodeUint16(60000))
		assert.NoError(t, err)
		assert.Equal(t, uint16(60000), v)
	})
	t.Run("uint32", func(t *testing.T) {
		v, err := DecodeUint32(EncodeUint32(4000000000))
		assert.NoError(t, err)
		assert.Equal(t, uint32(4000000000), v)
	})
	t.Run("uint64", func(t *testing.T) {
		v, err := DecodeUint64(EncodeUint64(18000000000000000000))
		assert.NoError(t, err)
		assert.Equal(t, uint64(18000000000000000000), v)
	})
	t.Run("int8", func(t *testing.T) {
		v, err := DecodeInt8(EncodeInt8(-42))
		assert.NoError(t, err)
		assert.Equal(t, int8(-42), v)
	})
	t.Run("int16", func(t *testing.T) {
		v, err := DecodeInt16(EncodeInt16(-1000))
		assert.NoError(t, err)
		assert.Equal(t, int16(-1000), v)
	})
	t.Run("int32", func(t *testing.T) {
		v, err := DecodeInt32(EncodeInt32(-1000000))
		assert.NoError(t, err)
		assert.Equal(t, int32(-1000000), v)
	})
	t.Run("int64", func(t *testing.T) {
		v, err := DecodeInt64(EncodeInt64(-9000000000000000000))
		assert.NoError(t, err)
		assert.Equal(t, int64(-9000000000000000000), v)
	})
	t.Run("bool", func(t *testing.T) {
		v, err := DecodeBool(EncodeBool(true))
		assert.NoError(t, err)
		assert.True(t, v)
	})
	t.Run("string", func(t *testing.T) {
		v, err := DecodeString(EncodeString("hello, stow"))
		assert.NoError(t, err)
		assert.Equal(t, "hello, stow", v)
	})
	t.Run("bytes", func(t *testing.T) {
		v, err := DecodeBytes(EncodeBytes([]byte{1, 2, 3}))
		assert.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, v)
	})
}

// TestBigEndianOrderPreserving verifies that encoded unsigned integers sort
// byte-lexicographically in the same order as their numeric values, which
// the bucket manager and ORM index buckets both depend on.
func TestBigEndianOrderPreserving(t *testing.T) {
	a := EncodeUint32(5)
	b := EncodeUint32(300)
	assert.Less(t, string(a), string(b))

	a64 := EncodeUint64(1)
	b64 := EncodeUint64(2)
	assert.Less(t, string(a64), string(b64))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"uint8 wrong length", func() error { _, err := DecodeUint8([]byte{1, 2}); return err }},
		{"uint16 wrong length", func() error { _, err := DecodeUint16([]byte{1}); return err }},
		{"uint32 wrong length", func() error { _, err := DecodeUint32([]byte{1, 2}); return err }},
		{"uint64 wrong length", func() error { _, err := DecodeUint64([]byte{1, 2, 3}); return err }},
		{"bool wrong length", func() error { _, err := DecodeBool([]byte{}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			assert.Error(t, err)
			var decErr *DecodeError
			assert.ErrorAs(t, err, &decErr)
		})
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "", Hex(nil))
	assert.Equal(t, "00", Hex([]byte{0x00}))
	assert.Equal(t, "ff0a", Hex([]byte{0xff, 0x0a}))
}

func TestFuncsForUnsupportedKind(t *testing.T) {
	_, _, err := FuncsFor(reflect.Struct)
	assert.Error(t, err)
}

func TestFuncsForByteSliceIsScalar(t *testing.T) {
	enc, dec, err := FuncsFor(reflect.Slice)
	assert.NoError(t, err)
	v := reflect.ValueOf([]byte{9, 9})
	b, err := enc(v)
	assert.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, b)

	out := reflect.New(reflect.TypeOf([]byte{})).Elem()
	assert.NoError(t, dec(out, b))
	assert.Equal(t, []byte{9, 9}, out.Bytes())
}
