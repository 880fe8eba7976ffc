package scoped

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Giulio2002/gdbx"

	"github.com/verse-pbc/scopedkv/internal/keycodec"
)

// BoundKind classifies one end of a key range.
type BoundKind int

const (
	// BoundUnbounded places no limit on this end of the range.
	BoundUnbounded BoundKind = iota
	// BoundIncluded limits the range at the key, inclusive.
	BoundIncluded
	// BoundExcluded limits the range at the key, exclusive.
	BoundExcluded
)

// Bound is one end of a KeyRange.
type Bound[K any] struct {
	kind BoundKind
	key  K
}

// Unbounded returns an open bound.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{kind: BoundUnbounded}
}

// Included returns an inclusive bound at k.
func Included[K any](k K) Bound[K] {
	return Bound[K]{kind: BoundIncluded, key: k}
}

// Excluded returns an exclusive bound at k.
func Excluded[K any](k K) Bound[K] {
	return Bound[K]{kind: BoundExcluded, key: k}
}

// KeyRange bounds a range query. Bounds are interpreted in the key codec's
// encoded byte order, which for BytesKeyDatabase and RawDatabase is plain
// lexicographic byte order of the keys themselves.
type KeyRange[K any] struct {
	Lower Bound[K]
	Upper Bound[K]
}

// FullRange matches every key.
func FullRange[K any]() KeyRange[K] {
	return KeyRange[K]{Lower: Unbounded[K](), Upper: Unbounded[K]()}
}

// rawBounds is a KeyRange with both ends encoded to bytes.
type rawBounds struct {
	lower, upper         []byte
	hasLower, hasUpper   bool
	lowerExcl, upperExcl bool
}

func encodeBounds[K any](r KeyRange[K], codec Codec[K]) (rawBounds, error) {
	var rb rawBounds
	if r.Lower.kind != BoundUnbounded {
		b, err := codec.Encode(r.Lower.key)
		if err != nil {
			return rb, fmt.Errorf("%w: encode lower bound: %v", ErrEncoding, err)
		}
		rb.lower, rb.hasLower = b, true
		rb.lowerExcl = r.Lower.kind == BoundExcluded
	}
	if r.Upper.kind != BoundUnbounded {
		b, err := codec.Encode(r.Upper.key)
		if err != nil {
			return rb, fmt.Errorf("%w: encode upper bound: %v", ErrEncoding, err)
		}
		rb.upper, rb.hasUpper = b, true
		rb.upperExcl = r.Upper.kind == BoundExcluded
	}
	return rb, nil
}

// contains reports whether the encoded user key lies within the bounds.
func (rb rawBounds) contains(key []byte) bool {
	if rb.hasLower {
		c := bytes.Compare(key, rb.lower)
		if c < 0 || (c == 0 && rb.lowerExcl) {
			return false
		}
	}
	if rb.hasUpper {
		c := bytes.Compare(key, rb.upper)
		if c > 0 || (c == 0 && rb.upperExcl) {
			return false
		}
	}
	return true
}

// rawIter walks one sub-database lazily, yielding encoded user keys and
// values. For a named scope it seeks to the scope's first composite key and
// stops at the first key that fails the scope fence; keys whose user part
// falls outside the bounds are skipped, not terminal, because the
// length-prefixed layout does not keep a user-key interval contiguous.
type rawIter struct {
	txn    *gdbx.Txn
	dbi    gdbx.DBI
	scoped bool
	id     uint32
	bounds rawBounds

	cur  *gdbx.Cursor
	done bool
	err  error

	key, val []byte
}

func (it *rawIter) next() bool {
	if it.done {
		return false
	}
	for {
		var k, v []byte
		var err error
		if it.cur == nil {
			it.cur, err = it.txn.OpenCursor(it.dbi)
			if err != nil {
				it.fail(fmt.Errorf("scoped: iter cursor: %w", err))
				return false
			}
			if it.scoped {
				k, v, err = it.cur.Get(keycodec.ScopeStart(it.id), nil, gdbx.SetRange)
			} else {
				k, v, err = it.cur.Get(nil, nil, gdbx.First)
			}
		} else {
			k, v, err = it.cur.Get(nil, nil, gdbx.Next)
		}
		if err != nil {
			if errors.Is(err, gdbx.ErrNotFoundError) {
				it.finish()
			} else {
				it.fail(fmt.Errorf("scoped: iter scan: %w", err))
			}
			return false
		}

		userKey := k
		if it.scoped {
			if !keycodec.HasScope(k, it.id) {
				it.finish()
				return false
			}
			_, uk, derr := keycodec.Decode(k)
			if derr != nil {
				it.fail(fmt.Errorf("%w: composite key: %v", ErrEncoding, derr))
				return false
			}
			userKey = uk
		}
		if !it.bounds.contains(userKey) {
			continue
		}
		it.key, it.val = userKey, v
		return true
	}
}

func (it *rawIter) finish() {
	it.done = true
	it.closeCursor()
}

func (it *rawIter) fail(err error) {
	it.err = err
	it.done = true
	it.closeCursor()
}

func (it *rawIter) closeCursor() {
	if it.cur != nil {
		it.cur.Close()
		it.cur = nil
	}
}

func (it *rawIter) reset() {
	it.closeCursor()
	it.done = false
	it.err = nil
	it.key, it.val = nil, nil
}

// Iter is a lazy, restartable traversal of one scope's entries.
//
// Usage:
//
//	it := db.Iter(txn, scope)
//	defer it.Close()
//	for it.Next() {
//	    k, v, err := it.Item()
//	    if err != nil {
//	        continue // skip the undecodable item, or stop; caller's choice
//	    }
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// Next advances over stored entries; Item decodes the current one, so a
// key or value the codecs cannot decode never terminates the traversal.
// Err reports engine-level failures and stored composite keys whose prefix
// is malformed; either one ends the traversal. The iterator borrows the
// transaction it was created from and must not outlive it.
type Iter[K, V any] struct {
	raw      rawIter
	keyCodec Codec[K]
	valCodec Codec[V]
}

// Next advances to the next entry of the scope, reporting false at the end
// of the scope or on an engine error (see Err).
func (it *Iter[K, V]) Next() bool {
	return it.raw.next()
}

// Item decodes and returns the current entry.
func (it *Iter[K, V]) Item() (key K, value V, err error) {
	key, err = it.keyCodec.Decode(it.raw.key)
	if err != nil {
		return key, value, fmt.Errorf("%w: decode key: %v", ErrEncoding, err)
	}
	value, err = it.valCodec.Decode(it.raw.val)
	if err != nil {
		return key, value, fmt.Errorf("%w: decode value: %v", ErrEncoding, err)
	}
	return key, value, nil
}

// RawItem returns the current entry's encoded user key and value without
// decoding. The slices alias engine memory and are valid only until the
// cursor moves or the transaction ends.
func (it *Iter[K, V]) RawItem() (key, value []byte) {
	return it.raw.key, it.raw.val
}

// Err returns the error that stopped the traversal, if any: an engine error,
// or an ErrEncoding error for a stored composite key that fails to decode.
// Codec decode failures are reported per item by Item, not here.
func (it *Iter[K, V]) Err() error {
	return it.raw.err
}

// Count consumes the remaining entries and returns how many were visited.
func (it *Iter[K, V]) Count() (int, error) {
	n := 0
	for it.Next() {
		n++
	}
	return n, it.Err()
}

// Reset rewinds the iterator so the next call to Next starts over from the
// beginning of the scope.
func (it *Iter[K, V]) Reset() {
	it.raw.reset()
}

// Close releases the underlying cursor. Safe to call more than once; the
// cursor is also released automatically when the traversal ends.
func (it *Iter[K, V]) Close() {
	it.raw.closeCursor()
	it.raw.done = true
}

func newIter[K, V any](txn *gdbx.Txn, dbi gdbx.DBI, scope Scope, bounds rawBounds, kc Codec[K], vc Codec[V]) *Iter[K, V] {
	it := &Iter[K, V]{
		raw:      rawIter{txn: txn, dbi: dbi, bounds: bounds},
		keyCodec: kc,
		valCodec: vc,
	}
	if id, ok := scope.ID(); ok {
		it.raw.scoped = true
		it.raw.id = id
	}
	return it
}
