package keycodec

import (
	"math"

	"github.com/verse-pbc/scopedkv/internal/buf"
)

// PrefixLen is the size of the mandatory composite-key header.
const PrefixLen = 12

// Encode returns the composite key for (id, key).
func Encode(id uint32, key []byte) []byte {
	return AppendEncode(make([]byte, 0, PrefixLen+len(key)), id, key)
}

// AppendEncode appends the composite key for (id, key) to dst and returns
// the extended slice. Passing a scratch buffer avoids the per-operation
// allocation on hot write paths.
func AppendEncode(dst []byte, id uint32, key []byte) []byte {
	dst = buf.AppendU32BE(dst, id)
	dst = buf.AppendU64BE(dst, uint64(len(key)))
	return append(dst, key...)
}

// Decode splits a composite key into its scope id and user-key bytes.
// The returned key aliases b; copy it before the transaction ends if it is
// retained. Inputs shorter than the prefix, or shorter than the prefix plus
// the declared length, are rejected.
func Decode(b []byte) (uint32, []byte, error) {
	if len(b) < PrefixLen {
		return 0, nil, ErrShortKey
	}
	id := buf.U32BE(b)
	n := buf.U64BE(b[4:])
	if n > uint64(math.MaxInt) {
		return 0, nil, ErrKeyLength
	}
	key, ok := buf.Slice(b, PrefixLen, int(n))
	if !ok {
		return 0, nil, ErrKeyLength
	}
	return id, key, nil
}

// HasScope reports whether b is a composite key carrying the given scope id.
// This is the scope fence applied to every key visited by a cursor.
func HasScope(b []byte, id uint32) bool {
	return len(b) >= PrefixLen && buf.U32BE(b) == id
}

// ScopeStart returns the smallest composite key of the scope: (id, "").
func ScopeStart(id uint32) []byte {
	return Encode(id, nil)
}

// ScopeEnd returns the exclusive upper fence of the scope, (id+1, ""), and
// ok = true. For the maximum id there is no successor; ok is false and the
// caller must instead run fence-checked to the end of the database.
func ScopeEnd(id uint32) (end []byte, ok bool) {
	if id == math.MaxUint32 {
		return nil, false
	}
	return Encode(id+1, nil), true
}

// EncodeID returns the 4-byte big-endian registry key for a scope id.
func EncodeID(id uint32) []byte {
	return buf.AppendU32BE(make([]byte, 0, 4), id)
}

// DecodeID parses a 4-byte big-endian registry key.
func DecodeID(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrShortID
	}
	return buf.U32BE(b), nil
}
