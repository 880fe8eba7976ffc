package scoped

import (
	"github.com/Giulio2002/gdbx"
)

// BytesKeyDatabase is a scoped database whose keys are raw byte slices and
// whose values pass through a codec. Keys are stored as-is: composite-key
// encoding appends the user key straight after the 12-byte prefix with no
// intermediate copy, and range bounds fence exactly in lexicographic byte
// order with no minimum-value proxy.
//
// Keys returned by Item and RawItem, and values returned by RawItem, alias
// engine-owned memory and are valid only until the transaction ends; copy
// them if retained longer. Values from Get and Item come out of the value
// codec.
type BytesKeyDatabase[V any] struct {
	*Database[[]byte, V]
}

// CreateBytesKeyDatabase opens or creates a bytes-key database named name,
// bound to the registry.
func CreateBytesKeyDatabase[V any](txn *gdbx.Txn, name string, registry *Registry, valCodec Codec[V]) (*BytesKeyDatabase[V], error) {
	db, err := CreateDatabase[[]byte, V](txn, name, registry, BytesCodec{}, valCodec)
	if err != nil {
		return nil, err
	}
	return &BytesKeyDatabase[V]{Database: db}, nil
}

// NewBytesKeyJSONDatabase is CreateBytesKeyDatabase with the JSON value
// codec.
func NewBytesKeyJSONDatabase[V any](txn *gdbx.Txn, name string, registry *Registry) (*BytesKeyDatabase[V], error) {
	return CreateBytesKeyDatabase[V](txn, name, registry, JSONCodec[V]{})
}
