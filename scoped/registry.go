package scoped

import (
	"errors"
	"fmt"

	"github.com/Giulio2002/gdbx"

	"github.com/verse-pbc/scopedkv/internal/keycodec"
)

// RegistryDBName is the reserved sub-database holding scope metadata. User
// database names must not collide with it.
const RegistryDBName = "__global_scope_metadata"

// Registry is the per-environment persistent mapping from scope ids to scope
// names. All databases opened against one environment share a single
// Registry by reference; it is the source of truth for which named scopes
// exist and it rejects id collisions between distinct names at registration
// time.
//
// All mutations run under the caller's write transaction, which serializes
// concurrent registrations. The Registry itself holds no locks and no state
// beyond the sub-database handle, so it is safe to share across goroutines
// as long as each supplies its own transaction.
type Registry struct {
	dbi gdbx.DBI
}

// EmptinessChecker is the capability the registry consults while pruning:
// one database's answer to "does this scope hold any entries here". All
// three database flavors implement it.
type EmptinessChecker interface {
	IsScopeEmptyInDB(txn *gdbx.Txn, scope Scope) (bool, error)
}

// NewRegistry creates or opens the registry sub-database. Call once per
// environment under a write transaction and share the result with every
// database bound to the environment.
func NewRegistry(txn *gdbx.Txn) (*Registry, error) {
	dbi, err := txn.OpenDBISimple(RegistryDBName, gdbx.Create)
	if err != nil {
		return nil, fmt.Errorf("scoped: open registry: %w", err)
	}
	return &Registry{dbi: dbi}, nil
}

// Register records a named scope in the registry. Registering the default
// scope is a no-op; re-registering an existing name succeeds. If the scope's
// id is already bound to a different name the registration fails with an
// ErrInvalidInput collision error naming both scopes, and the caller must
// rename one of them. The registry never rehashes or probes: ids derive
// deterministically from names so every process agrees on them.
func (r *Registry) Register(txn *gdbx.Txn, scope Scope) error {
	id, ok := scope.ID()
	if !ok {
		return nil
	}
	name, _ := scope.Name()

	existing, err := txn.Get(r.dbi, keycodec.EncodeID(id))
	if err == nil {
		if string(existing) != name {
			return fmt.Errorf("%w: scope id collision between %q and %q; rename one of them",
				ErrInvalidInput, name, string(existing))
		}
		return nil
	}
	if !errors.Is(err, gdbx.ErrNotFoundError) {
		return fmt.Errorf("scoped: registry lookup: %w", err)
	}

	if err := txn.Put(r.dbi, keycodec.EncodeID(id), []byte(name), 0); err != nil {
		return fmt.Errorf("scoped: register scope %q: %w", name, err)
	}
	return nil
}

// registerRaw inserts an id -> name entry without deriving the id from the
// name. Test hook for forcing collisions.
func (r *Registry) registerRaw(txn *gdbx.Txn, id uint32, name string) error {
	return txn.Put(r.dbi, keycodec.EncodeID(id), []byte(name), 0)
}

// ScopeExists reports whether the scope is present in the registry. The
// default scope always exists.
func (r *Registry) ScopeExists(txn *gdbx.Txn, scope Scope) (bool, error) {
	id, ok := scope.ID()
	if !ok {
		return true, nil
	}
	_, err := txn.Get(r.dbi, keycodec.EncodeID(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gdbx.ErrNotFoundError) {
		return false, nil
	}
	return false, fmt.Errorf("scoped: registry lookup: %w", err)
}

// Name returns the name registered for id. ok is false when the id is not
// registered.
func (r *Registry) Name(txn *gdbx.Txn, id uint32) (name string, ok bool, err error) {
	v, err := txn.Get(r.dbi, keycodec.EncodeID(id))
	if err == nil {
		return string(v), true, nil
	}
	if errors.Is(err, gdbx.ErrNotFoundError) {
		return "", false, nil
	}
	return "", false, fmt.Errorf("scoped: registry lookup: %w", err)
}

// LookupID scans the registry for the first entry matching name and returns
// its id. Linear in the number of registered scopes; intended for
// diagnostics, not hot paths (derive ids with ScopeID instead).
func (r *Registry) LookupID(txn *gdbx.Txn, name string) (id uint32, ok bool, err error) {
	err = r.walk(txn, func(id uint32, stored string) error {
		if stored == name {
			ok = true
			return errStopWalk
		}
		return nil
	}, &id)
	return id, ok, err
}

// ListAll returns the default scope followed by every registered named scope
// in ascending id order.
func (r *Registry) ListAll(txn *gdbx.Txn) ([]Scope, error) {
	scopes := []Scope{DefaultScope()}
	err := r.walk(txn, func(id uint32, name string) error {
		scopes = append(scopes, Scope{name: name, id: id})
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return scopes, nil
}

// Unregister removes the id from the registry. Succeeds when the id is
// absent.
func (r *Registry) Unregister(txn *gdbx.Txn, id uint32) error {
	err := txn.Del(r.dbi, keycodec.EncodeID(id), nil)
	if err != nil && !errors.Is(err, gdbx.ErrNotFoundError) {
		return fmt.Errorf("scoped: unregister scope %d: %w", id, err)
	}
	return nil
}

// PruneGloballyUnused unregisters every named scope that all supplied
// checkers report empty, and returns the number removed. The default scope
// is never pruned, and an empty checker set removes nothing: global
// emptiness is defined only relative to the supplied set, so callers must
// pass a checker for every database that might hold scoped data in this
// environment. The registry does not discover databases on its own.
func (r *Registry) PruneGloballyUnused(txn *gdbx.Txn, checkers []EmptinessChecker) (int, error) {
	if len(checkers) == 0 {
		return 0, nil
	}

	scopes, err := r.ListAll(txn)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, scope := range scopes {
		id, ok := scope.ID()
		if !ok {
			continue
		}
		empty := true
		for _, checker := range checkers {
			isEmpty, err := checker.IsScopeEmptyInDB(txn, scope)
			if err != nil {
				return removed, err
			}
			if !isEmpty {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		if err := r.Unregister(txn, id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

var errStopWalk = errors.New("stop walk")

// walk visits registry entries in key order. When fn returns errStopWalk the
// walk ends without error; lastID, if non-nil, receives the id of the entry
// that stopped the walk.
func (r *Registry) walk(txn *gdbx.Txn, fn func(id uint32, name string) error, lastID *uint32) error {
	cur, err := txn.OpenCursor(r.dbi)
	if err != nil {
		return fmt.Errorf("scoped: registry cursor: %w", err)
	}
	defer cur.Close()

	k, v, err := cur.Get(nil, nil, gdbx.First)
	for err == nil {
		id, derr := keycodec.DecodeID(k)
		if derr != nil {
			return fmt.Errorf("%w: registry key: %v", ErrEncoding, derr)
		}
		if ferr := fn(id, string(v)); ferr != nil {
			if errors.Is(ferr, errStopWalk) {
				if lastID != nil {
					*lastID = id
				}
				return nil
			}
			return ferr
		}
		k, v, err = cur.Get(nil, nil, gdbx.Next)
	}
	if !errors.Is(err, gdbx.ErrNotFoundError) {
		return fmt.Errorf("scoped: registry scan: %w", err)
	}
	return nil
}
