package scoped

import (
	"fmt"

	"github.com/Giulio2002/gdbx"

	"github.com/verse-pbc/scopedkv/internal/keycodec"
)

// ScopedSuffix is appended to a database's name to form the sub-database
// holding its named-scope entries.
const ScopedSuffix = "_scoped"

// Database is a typed scoped database. Keys and values pass through the
// supplied codecs; default-scope entries live in the sub-database named
// after the database, named-scope entries in "<name>_scoped" under composite
// keys.
//
// A Database is a cheap value-like handle (two sub-database handles plus a
// shared registry reference). Copies share the same storage and may be used
// from multiple goroutines, provided each supplies its own transaction.
type Database[K, V any] struct {
	name       string
	defaultDBI gdbx.DBI
	scopedDBI  gdbx.DBI
	registry   *Registry
	keyCodec   Codec[K]
	valCodec   Codec[V]
}

// CreateDatabase opens or creates the two sub-databases for name and binds
// the registry. The registry is required: databases constructed without one
// could disagree about scope ids, so its absence is rejected rather than
// tolerated. The default sub-database is named exactly name, which lets a
// pre-existing plain database open under the default scope.
func CreateDatabase[K, V any](txn *gdbx.Txn, name string, registry *Registry, keyCodec Codec[K], valCodec Codec[V]) (*Database[K, V], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: database name is required", ErrInvalidInput)
	}
	if name == RegistryDBName {
		return nil, fmt.Errorf("%w: database name %q is reserved", ErrInvalidInput, name)
	}
	if registry == nil {
		return nil, fmt.Errorf("%w: a registry is required; create one with NewRegistry", ErrInvalidInput)
	}
	defaultDBI, err := txn.OpenDBISimple(name, gdbx.Create)
	if err != nil {
		return nil, fmt.Errorf("scoped: open %q: %w", name, err)
	}
	scopedDBI, err := txn.OpenDBISimple(name+ScopedSuffix, gdbx.Create)
	if err != nil {
		return nil, fmt.Errorf("scoped: open %q: %w", name+ScopedSuffix, err)
	}
	return &Database[K, V]{
		name:       name,
		defaultDBI: defaultDBI,
		scopedDBI:  scopedDBI,
		registry:   registry,
		keyCodec:   keyCodec,
		valCodec:   valCodec,
	}, nil
}

// NewJSONDatabase is CreateDatabase with JSON codecs for both keys and
// values.
func NewJSONDatabase[K, V any](txn *gdbx.Txn, name string, registry *Registry) (*Database[K, V], error) {
	return CreateDatabase[K, V](txn, name, registry, JSONCodec[K]{}, JSONCodec[V]{})
}

// Name returns the database name.
func (d *Database[K, V]) Name() string {
	return d.name
}

// Put stores value under key within the scope. Writing to a named scope
// first ensures the scope is registered; a scope-id collision surfaces here
// and the write does not happen.
func (d *Database[K, V]) Put(txn *gdbx.Txn, scope Scope, key K, value V) error {
	vb, err := d.valCodec.Encode(value)
	if err != nil {
		return fmt.Errorf("%w: encode value: %v", ErrEncoding, err)
	}
	kb, err := d.keyCodec.Encode(key)
	if err != nil {
		return fmt.Errorf("%w: encode key: %v", ErrEncoding, err)
	}

	id, ok := scope.ID()
	if !ok {
		if err := txn.Put(d.defaultDBI, kb, vb, 0); err != nil {
			return fmt.Errorf("scoped: put: %w", err)
		}
		return nil
	}

	if err := d.registry.Register(txn, scope); err != nil {
		return err
	}
	if err := txn.Put(d.scopedDBI, keycodec.Encode(id, kb), vb, 0); err != nil {
		return fmt.Errorf("scoped: put: %w", err)
	}
	return nil
}

// Get returns the value stored under key within the scope. ok is false when
// the key is absent.
func (d *Database[K, V]) Get(txn *gdbx.Txn, scope Scope, key K) (value V, ok bool, err error) {
	kb, err := d.keyCodec.Encode(key)
	if err != nil {
		return value, false, fmt.Errorf("%w: encode key: %v", ErrEncoding, err)
	}

	var raw []byte
	if id, named := scope.ID(); named {
		raw, ok, err = engineGet(txn, d.scopedDBI, keycodec.Encode(id, kb))
	} else {
		raw, ok, err = engineGet(txn, d.defaultDBI, kb)
	}
	if err != nil || !ok {
		return value, false, err
	}

	value, err = d.valCodec.Decode(raw)
	if err != nil {
		return value, false, fmt.Errorf("%w: decode value: %v", ErrEncoding, err)
	}
	return value, true, nil
}

// Delete removes key from the scope, reporting whether a value was removed.
// Deleting an absent key is not an error.
func (d *Database[K, V]) Delete(txn *gdbx.Txn, scope Scope, key K) (bool, error) {
	kb, err := d.keyCodec.Encode(key)
	if err != nil {
		return false, fmt.Errorf("%w: encode key: %v", ErrEncoding, err)
	}
	if id, named := scope.ID(); named {
		return engineDelete(txn, d.scopedDBI, keycodec.Encode(id, kb))
	}
	return engineDelete(txn, d.defaultDBI, kb)
}

// Clear removes every entry of the scope and nothing else. The default
// scope clears with the engine's whole-sub-database drop; a named scope
// clears with a bounded delete-current walk over its contiguous key range.
// The scope stays registered.
func (d *Database[K, V]) Clear(txn *gdbx.Txn, scope Scope) error {
	id, ok := scope.ID()
	if !ok {
		if err := txn.Drop(d.defaultDBI, false); err != nil {
			return fmt.Errorf("scoped: clear: %w", err)
		}
		return nil
	}
	if err := d.registry.Register(txn, scope); err != nil {
		return err
	}
	return clearScope(txn, d.scopedDBI, id)
}

// Iter returns a lazy iterator over every entry of the scope. The iterator
// borrows txn and must not outlive it.
func (d *Database[K, V]) Iter(txn *gdbx.Txn, scope Scope) *Iter[K, V] {
	dbi := d.defaultDBI
	if _, named := scope.ID(); named {
		dbi = d.scopedDBI
	}
	return newIter(txn, dbi, scope, rawBounds{}, d.keyCodec, d.valCodec)
}

// Range returns a lazy iterator over the scope's entries whose keys fall
// within r. Bounds are evaluated on the codec's encoded form of the keys:
// every yielded item is re-checked against r after decoding from storage,
// because the composite layout's length prefix does not preserve a
// contiguous interval for the bounded keys.
func (d *Database[K, V]) Range(txn *gdbx.Txn, scope Scope, r KeyRange[K]) (*Iter[K, V], error) {
	rb, err := encodeBounds(r, d.keyCodec)
	if err != nil {
		return nil, err
	}
	dbi := d.defaultDBI
	if _, named := scope.ID(); named {
		dbi = d.scopedDBI
	}
	return newIter(txn, dbi, scope, rb, d.keyCodec, d.valCodec), nil
}

// RegisterScope registers the scope without writing any entry.
func (d *Database[K, V]) RegisterScope(txn *gdbx.Txn, scope Scope) error {
	return d.registry.Register(txn, scope)
}

// ListScopes returns every scope known to the shared registry, the default
// scope first.
func (d *Database[K, V]) ListScopes(txn *gdbx.Txn) ([]Scope, error) {
	return d.registry.ListAll(txn)
}

// FindEmptyScopes returns how many registered named scopes hold no entries
// in this database. Diagnostic only; authoritative pruning goes through
// Registry.PruneGloballyUnused.
func (d *Database[K, V]) FindEmptyScopes(txn *gdbx.Txn) (int, error) {
	return countEmptyScopes(txn, d.scopedDBI, d.registry)
}

// IsScopeEmptyInDB reports whether the scope holds no entries in this
// database. This is the emptiness capability consumed by the registry's
// prune.
func (d *Database[K, V]) IsScopeEmptyInDB(txn *gdbx.Txn, scope Scope) (bool, error) {
	if id, named := scope.ID(); named {
		return scopeIsEmpty(txn, d.scopedDBI, id)
	}
	return dbiIsEmpty(txn, d.defaultDBI)
}
