/*
Package orm maps Go struct types onto pkg/kv's bucket-namespaced key-value
store.

A model is any struct with exactly one field tagged `stow:"pk"`. Fields
tagged `stow:"index"` get an equality-lookup index bucket; slice fields
(other than []byte, which is a scalar) get a per-record set bucket.
Everything else is a plain scalar stored in the record's row bucket.

	type User struct {
		ID   uint64   `stow:"pk"`
		Name string   `stow:"index"`
		Tags []string
	}

	m, err := orm.Describe(User{})
	err = orm.CreateModel(tx, m)
	err = orm.Save(tx, m, &User{ID: 42, Name: "ada", Tags: []string{"x", "y"}})

	var out User
	err = orm.Load(tx, m, uint64(42), &out)

Describe reflects over the sample value once and caches per-field codec
functions (see pkg/codec's FuncsFor), so repeated Save/Load calls pay
reflection's cost only for walking the struct's fields, not for
dispatching on their kinds.
*/
package orm
