package codec

import (
	"encoding/binary"
	"fmt"
)

// DecodeError reports that a byte slice could not be decoded into the
// requested fixed-width type.
type DecodeError struct {
	Type     string
	Expected int
	Actual   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codec: cannot decode %s: expected %d bytes, got %d", e.Type, e.Expected, e.Actual)
}

func decodeErr(typ string, expected int, b []byte) error {
	return &DecodeError{Type: typ, Expected: expected, Actual: len(b)}
}

// EncodeUint8 encodes an unsigned 8-bit integer.
func EncodeUint8(v uint8) []byte { return []byte{v} }

// DecodeUint8 decodes an unsigned 8-bit integer.
func DecodeUint8(b []byte) (uint8, error) {
	if len(b) != 1 {
		return 0, decodeErr("uint8", 1, b)
	}
	return b[0], nil
}

// EncodeUint16 encodes an unsigned 16-bit integer, big-endian.
func EncodeUint16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

// DecodeUint16 decodes an unsigned 16-bit integer, big-endian.
func DecodeUint16(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, decodeErr("uint16", 2, b)
	}
	return binary.BigEndian.Uint16(b), nil
}

// EncodeUint32 encodes an unsigned 32-bit integer, big-endian.
func EncodeUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// DecodeUint32 decodes an unsigned 32-bit integer, big-endian.
func DecodeUint32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, decodeErr("uint32", 4, b)
	}
	return binary.BigEndian.Uint32(b), nil
}

// EncodeUint64 encodes an unsigned 64-bit integer, big-endian.
func EncodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// DecodeUint64 decodes an unsigned 64-bit integer, big-endian.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, decodeErr("uint64", 8, b)
	}
	return binary.BigEndian.Uint64(b), nil
}

// EncodeInt8 encodes a signed 8-bit integer.
func EncodeInt8(v int8) []byte { return []byte{byte(v)} }

// DecodeInt8 decodes a signed 8-bit integer.
func DecodeInt8(b []byte) (int8, error) {
	if len(b) != 1 {
		return 0, decodeErr("int8", 1, b)
	}
	return int8(b[0]), nil
}

// EncodeInt16 encodes a signed 16-bit integer, big-endian.
func EncodeInt16(v int16) []byte { return EncodeUint16(uint16(v)) }

// DecodeInt16 decodes a signed 16-bit integer, big-endian.
func DecodeInt16(b []byte) (int16, error) {
	u, err := DecodeUint16(b)
	if err != nil {
		return 0, err
	}
	return int16(u), nil
}

// EncodeInt32 encodes a signed 32-bit integer, big-endian.
func EncodeInt32(v int32) []byte { return EncodeUint32(uint32(v)) }

// DecodeInt32 decodes a signed 32-bit integer, big-endian.
func DecodeInt32(b []byte) (int32, error) {
	u, err := DecodeUint32(b)
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

// EncodeInt64 encodes a signed 64-bit integer, big-endian.
func EncodeInt64(v int64) []byte { return EncodeUint64(uint64(v)) }

// DecodeInt64 decodes a signed 64-bit integer, big-endian.
func DecodeInt64(b []byte) (int64, error) {
	u, err := DecodeUint64(b)
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// EncodeBool encodes a boolean as a single 0/1 byte.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool decodes a single 0/1 byte into a boolean.
func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, decodeErr("bool", 1, b)
	}
	return b[0] != 0, nil
}

// EncodeString encodes a string as its raw UTF-8 bytes, no terminator.
func EncodeString(v string) []byte { return []byte(v) }

// DecodeString decodes raw bytes as a UTF-8 string.
func DecodeString(b []byte) (string, error) { return string(b), nil }

// EncodeBytes returns the byte sequence unmodified.
func EncodeBytes(v []byte) []byte { return v }

// DecodeBytes returns the byte sequence unmodified.
func DecodeBytes(b []byte) ([]byte, error) { return b, nil }

// Hex returns the lowercase hex encoding of b, used to derive row and slice
// bucket names from an encoded primary key.
func Hex(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}
