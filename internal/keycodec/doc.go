// Package keycodec implements the on-disk key layout for scoped entries.
//
// Every entry belonging to a named scope is stored under a composite key:
//
//	bytes[0:4]   scope id, uint32 big-endian
//	bytes[4:12]  user-key length, uint64 big-endian
//	bytes[12:]   user-key bytes
//
// The 12-byte prefix is present even for zero-length user keys.
//
// Both integers are big-endian so that MDBX's lexicographic byte comparator
// orders composite keys first by numeric scope id, then by user key. All
// entries of one scope therefore form a single contiguous key range, and
// [ScopeStart(id), ScopeStart(id+1)) fences the scope exactly. Read paths
// still verify the prefix of every visited key with HasScope; the prefix
// check is the authoritative scope filter.
package keycodec
