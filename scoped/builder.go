package scoped

import (
	"fmt"

	"github.com/Giulio2002/gdbx"
)

// Builder is the configuration surface for constructing databases of any
// flavor against one shared registry. Pick a flavor, name it, and create it
// under a write transaction:
//
//	db, err := scoped.JSONTypes[string, int](b).Name("counters").Create(txn)
//	blobs, err := scoped.BytesKeys[Meta](b, metaCodec).Name("blobs").Create(txn)
//	cache, err := b.RawBytes().Name("cache").Create(txn)
//
// Types and BytesKeys are package-level functions rather than methods
// because Go methods cannot introduce type parameters. The builder
// interprets no configuration beyond the flavor and the name.
type Builder struct {
	registry *Registry
}

// NewBuilder returns a builder bound to the registry.
func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// Types configures a typed database using the given key and value codecs.
func Types[K, V any](b *Builder, keyCodec Codec[K], valCodec Codec[V]) *TypedOptions[K, V] {
	return &TypedOptions[K, V]{registry: b.registry, keyCodec: keyCodec, valCodec: valCodec}
}

// JSONTypes configures a typed database using JSON codecs for both keys and
// values.
func JSONTypes[K, V any](b *Builder) *TypedOptions[K, V] {
	return Types[K, V](b, JSONCodec[K]{}, JSONCodec[V]{})
}

// BytesKeys configures a bytes-key database using the given value codec.
func BytesKeys[V any](b *Builder, valCodec Codec[V]) *BytesKeysOptions[V] {
	return &BytesKeysOptions[V]{registry: b.registry, valCodec: valCodec}
}

// RawBytes configures a raw-bytes database.
func (b *Builder) RawBytes() *RawOptions {
	return &RawOptions{registry: b.registry}
}

// TypedOptions configures and creates a Database[K, V].
type TypedOptions[K, V any] struct {
	registry *Registry
	keyCodec Codec[K]
	valCodec Codec[V]
	name     string
}

// Name sets the database name.
func (o *TypedOptions[K, V]) Name(name string) *TypedOptions[K, V] {
	o.name = name
	return o
}

// Create opens or creates the database under the transaction.
func (o *TypedOptions[K, V]) Create(txn *gdbx.Txn) (*Database[K, V], error) {
	if o.name == "" {
		return nil, fmt.Errorf("%w: database name is required", ErrInvalidInput)
	}
	return CreateDatabase[K, V](txn, o.name, o.registry, o.keyCodec, o.valCodec)
}

// BytesKeysOptions configures and creates a BytesKeyDatabase[V].
type BytesKeysOptions[V any] struct {
	registry *Registry
	valCodec Codec[V]
	name     string
}

// Name sets the database name.
func (o *BytesKeysOptions[V]) Name(name string) *BytesKeysOptions[V] {
	o.name = name
	return o
}

// Create opens or creates the database under the transaction.
func (o *BytesKeysOptions[V]) Create(txn *gdbx.Txn) (*BytesKeyDatabase[V], error) {
	if o.name == "" {
		return nil, fmt.Errorf("%w: database name is required", ErrInvalidInput)
	}
	return CreateBytesKeyDatabase[V](txn, o.name, o.registry, o.valCodec)
}

// RawOptions configures and creates a RawDatabase.
type RawOptions struct {
	registry *Registry
	name     string
}

// Name sets the database name.
func (o *RawOptions) Name(name string) *RawOptions {
	o.name = name
	return o
}

// Create opens or creates the database under the transaction.
func (o *RawOptions) Create(txn *gdbx.Txn) (*RawDatabase, error) {
	if o.name == "" {
		return nil, fmt.Errorf("%w: database name is required", ErrInvalidInput)
	}
	return CreateRawDatabase(txn, o.name, o.registry)
}
