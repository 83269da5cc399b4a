package orm

import (
	"fmt"
	"reflect"

	"github.com/cuemby/stow/pkg/codec"
)

// field describes one struct field of a model: how to find it, how to
// encode/decode it, and which bucket role it plays.
type field struct {
	name        string
	structIndex int
	indexed     bool
	slice       bool
	elemType    reflect.Type
	encode      codec.EncodeFunc
	decode      codec.DecodeFunc
}

// Model is a reflected descriptor of a record type, built once by Describe
// and reused across every Save/Load/List/Remove call for that type.
type Model struct {
	name string
	typ  reflect.Type
	pk   *field
	// fields holds every non-slice, non-pk field (scalar and indexed).
	fields []*field
	// sliceFields holds every slice-valued field.
	sliceFields []*field
}

// Name returns the model's bucket-name component, derived from the
// struct's type name.
func (m *Model) Name() string { return m.name }

func (m *Model) fieldByName(name string) *field {
	for _, f := range m.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Describe builds a Model descriptor from sample, which must be a struct
// or a pointer to one. Exactly one field must carry the `stow:"pk"` tag;
// fields tagged `stow:"index"` get an equality-lookup index bucket.
// Slice-kind fields (other than []byte, a scalar) are treated as
// multi-valued set fields rather than row-scalar fields.
func Describe(sample any) (*Model, error) {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("orm: Describe requires a struct, got %s", t.Kind())
	}

	m := &Model{name: t.Name(), typ: t}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("stow")

		if sf.Type.Kind() == reflect.Slice && sf.Type.Elem().Kind() != reflect.Uint8 {
			enc, dec, err := codec.FuncsFor(sf.Type.Elem().Kind())
			if err != nil {
				return nil, fmt.Errorf("orm: %s.%s: %w", m.name, sf.Name, err)
			}
			m.sliceFields = append(m.sliceFields, &field{
				name: sf.Name, structIndex: i, slice: true,
				elemType: sf.Type.Elem(), encode: enc, decode: dec,
			})
			continue
		}

		enc, dec, err := codec.FuncsFor(sf.Type.Kind())
		if err != nil {
			return nil, fmt.Errorf("orm: %s.%s: %w", m.name, sf.Name, err)
		}
		f := &field{name: sf.Name, structIndex: i, encode: enc, decode: dec}

		switch tag {
		case "pk":
			if m.pk != nil {
				return nil, fmt.Errorf("orm: %s: multiple fields tagged stow:\"pk\"", m.name)
			}
			m.pk = f
			continue
		case "index":
			f.indexed = true
		}
		m.fields = append(m.fields, f)
	}

	if m.pk == nil {
		return nil, fmt.Errorf("orm: %s: no field tagged stow:\"pk\"", m.name)
	}
	return m, nil
}

func elemOf(obj any) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("orm: expected a non-nil pointer to struct, got %T", obj)
	}
	return v.Elem(), nil
}
