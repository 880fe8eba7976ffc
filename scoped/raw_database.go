package scoped

import (
	"github.com/Giulio2002/gdbx"
)

// RawDatabase is a scoped database with raw byte slices on both sides: no
// serialization at all beyond the composite-key prefix for named scopes.
// This is the minimal-overhead flavor for binary protocols and cache
// layers.
//
// Slices returned by Get, Item and RawItem alias engine-owned memory and
// are valid only until the transaction ends; copy them if retained longer.
type RawDatabase struct {
	*Database[[]byte, []byte]
}

// CreateRawDatabase opens or creates a raw-bytes database named name, bound
// to the registry.
func CreateRawDatabase(txn *gdbx.Txn, name string, registry *Registry) (*RawDatabase, error) {
	db, err := CreateDatabase[[]byte, []byte](txn, name, registry, BytesCodec{}, BytesCodec{})
	if err != nil {
		return nil, err
	}
	return &RawDatabase{Database: db}, nil
}
