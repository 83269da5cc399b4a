package codec

import (
	"fmt"
	"reflect"
)

// EncodeFunc encodes a reflected value into its on-disk representation.
type EncodeFunc func(reflect.Value) ([]byte, error)

// DecodeFunc decodes bytes into the given settable reflected value.
type DecodeFunc func(reflect.Value, []byte) error

// FuncsFor returns the encode/decode pair for a scalar kind, or an error if
// the kind has no codec (e.g. a struct). For reflect.Slice it returns the
// []byte codec, whose encoder fails for any other element kind.
func FuncsFor(kind reflect.Kind) (EncodeFunc, DecodeFunc, error) {
	switch kind {
	case reflect.Uint8:
		return func(v reflect.Value) ([]byte, error) { return EncodeUint8(uint8(v.Uint())), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeUint8(b)
				if err != nil {
					return err
				}
				v.SetUint(uint64(x))
				return nil
			}, nil
	case reflect.Uint16:
		return func(v reflect.Value) ([]byte, error) { return EncodeUint16(uint16(v.Uint())), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeUint16(b)
				if err != nil {
					return err
				}
				v.SetUint(uint64(x))
				return nil
			}, nil
	case reflect.Uint32:
		return func(v reflect.Value) ([]byte, error) { return EncodeUint32(uint32(v.Uint())), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeUint32(b)
				if err != nil {
					return err
				}
				v.SetUint(uint64(x))
				return nil
			}, nil
	case reflect.Uint64, reflect.Uint:
		return func(v reflect.Value) ([]byte, error) { return EncodeUint64(v.Uint()), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeUint64(b)
				if err != nil {
					return err
				}
				v.SetUint(x)
				return nil
			}, nil
	case reflect.Int8:
		return func(v reflect.Value) ([]byte, error) { return EncodeInt8(int8(v.Int())), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeInt8(b)
				if err != nil {
					return err
				}
				v.SetInt(int64(x))
				return nil
			}, nil
	case reflect.Int16:
		return func(v reflect.Value) ([]byte, error) { return EncodeInt16(int16(v.Int())), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeInt16(b)
				if err != nil {
					return err
				}
				v.SetInt(int64(x))
				return nil
			}, nil
	case reflect.Int32:
		return func(v reflect.Value) ([]byte, error) { return EncodeInt32(int32(v.Int())), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeInt32(b)
				if err != nil {
					return err
				}
				v.SetInt(int64(x))
				return nil
			}, nil
	case reflect.Int64, reflect.Int:
		return func(v reflect.Value) ([]byte, error) { return EncodeInt64(v.Int()), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeInt64(b)
				if err != nil {
					return err
				}
				v.SetInt(x)
				return nil
			}, nil
	case reflect.Bool:
		return func(v reflect.Value) ([]byte, error) { return EncodeBool(v.Bool()), nil },
			func(v reflect.Value, b []byte) error {
				x, err := DecodeBool(b)
				if err != nil {
					return err
				}
				v.SetBool(x)
				return nil
			}, nil
	case reflect.String:
		return func(v reflect.Value) ([]byte, error) { return EncodeString(v.String()), nil },
			func(v reflect.Value, b []byte) error {
				x, _ := DecodeString(b)
				v.SetString(x)
				return nil
			}, nil
	case reflect.Slice:
		// []byte is the only scalar-like slice kind; other slices are
		// multi-valued ORM fields, handled by pkg/orm, not here.
		return func(v reflect.Value) ([]byte, error) {
				if v.Type().Elem().Kind() != reflect.Uint8 {
					return nil, fmt.Errorf("codec: unsupported slice element kind %s", v.Type().Elem().Kind())
				}
				return EncodeBytes(v.Bytes()), nil
			}, func(v reflect.Value, b []byte) error {
				out, _ := DecodeBytes(b)
				v.SetBytes(out)
				return nil
			}, nil
	default:
		return nil, nil, fmt.Errorf("codec: unsupported kind %s", kind)
	}
}
