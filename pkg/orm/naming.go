package orm

import "github.com/cuemby/stow/pkg/codec"

// Bucket-name grammar (stow spec section 6), part of stow's external
// contract: other tools may iterate buckets by these names directly.
//
//	model bucket:  <ModelName>
//	row bucket:    <ModelName>.<hex(encoded pkey)>
//	index bucket:  <ModelName>.<FieldName>.index
//	slice bucket:  <ModelName>.<hex(encoded pkey)>.<FieldName>

func modelBucketName(m *Model) []byte {
	return []byte(m.name)
}

func rowBucketName(m *Model, pkeyEncoded []byte) []byte {
	return []byte(m.name + "." + codec.Hex(pkeyEncoded))
}

func indexBucketName(m *Model, fieldName string) []byte {
	return []byte(m.name + "." + fieldName + ".index")
}

func sliceBucketName(m *Model, pkeyEncoded []byte, fieldName string) []byte {
	return []byte(m.name + "." + codec.Hex(pkeyEncoded) + "." + fieldName)
}
