package scoped

import (
	"errors"
	"fmt"

	"github.com/Giulio2002/gdbx"

	"github.com/verse-pbc/scopedkv/internal/keycodec"
)

// Shared low-level walks over a scoped sub-database. All of them position a
// cursor at the scope's first composite key and rely on the big-endian id
// prefix for termination: the moment a visited key fails the prefix check,
// the scope's contiguous range has ended. The prefix check also covers the
// maximum id, which has no successor key to fence with.

// clearScope deletes every entry of the scope with a cursor delete-current
// walk. Values are never decoded. O(affected), not O(total).
func clearScope(txn *gdbx.Txn, dbi gdbx.DBI, id uint32) error {
	cur, err := txn.OpenCursor(dbi)
	if err != nil {
		return fmt.Errorf("scoped: clear cursor: %w", err)
	}
	defer cur.Close()

	k, _, err := cur.Get(keycodec.ScopeStart(id), nil, gdbx.SetRange)
	for err == nil && keycodec.HasScope(k, id) {
		if derr := cur.Del(0); derr != nil {
			return fmt.Errorf("scoped: clear delete: %w", derr)
		}
		k, _, err = cur.Get(nil, nil, gdbx.Next)
	}
	if err != nil && !errors.Is(err, gdbx.ErrNotFoundError) {
		return fmt.Errorf("scoped: clear scan: %w", err)
	}
	return nil
}

// scopeIsEmpty reports whether the scope holds no entries in dbi.
func scopeIsEmpty(txn *gdbx.Txn, dbi gdbx.DBI, id uint32) (bool, error) {
	cur, err := txn.OpenCursor(dbi)
	if err != nil {
		return false, fmt.Errorf("scoped: emptiness cursor: %w", err)
	}
	defer cur.Close()

	k, _, err := cur.Get(keycodec.ScopeStart(id), nil, gdbx.SetRange)
	if err != nil {
		if errors.Is(err, gdbx.ErrNotFoundError) {
			return true, nil
		}
		return false, fmt.Errorf("scoped: emptiness scan: %w", err)
	}
	return !keycodec.HasScope(k, id), nil
}

// dbiIsEmpty reports whether the sub-database holds no entries at all.
func dbiIsEmpty(txn *gdbx.Txn, dbi gdbx.DBI) (bool, error) {
	cur, err := txn.OpenCursor(dbi)
	if err != nil {
		return false, fmt.Errorf("scoped: emptiness cursor: %w", err)
	}
	defer cur.Close()

	_, _, err = cur.Get(nil, nil, gdbx.First)
	if err != nil {
		if errors.Is(err, gdbx.ErrNotFoundError) {
			return true, nil
		}
		return false, fmt.Errorf("scoped: emptiness scan: %w", err)
	}
	return false, nil
}

// countEmptyScopes counts registered named scopes with no entries in dbi.
func countEmptyScopes(txn *gdbx.Txn, dbi gdbx.DBI, reg *Registry) (int, error) {
	scopes, err := reg.ListAll(txn)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, scope := range scopes {
		id, ok := scope.ID()
		if !ok {
			continue
		}
		empty, err := scopeIsEmpty(txn, dbi, id)
		if err != nil {
			return 0, err
		}
		if empty {
			count++
		}
	}
	return count, nil
}

// engineDelete issues a point delete and maps "absent" to a false return.
func engineDelete(txn *gdbx.Txn, dbi gdbx.DBI, key []byte) (bool, error) {
	err := txn.Del(dbi, key, nil)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gdbx.ErrNotFoundError) {
		return false, nil
	}
	return false, fmt.Errorf("scoped: delete: %w", err)
}

// engineGet issues a point read and maps "absent" to a nil slice with ok
// false.
func engineGet(txn *gdbx.Txn, dbi gdbx.DBI, key []byte) ([]byte, bool, error) {
	v, err := txn.Get(dbi, key)
	if err == nil {
		return v, true, nil
	}
	if errors.Is(err, gdbx.ErrNotFoundError) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("scoped: get: %w", err)
}
