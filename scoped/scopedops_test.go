package scoped

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-pbc/scopedkv/internal/keycodec"
	"github.com/verse-pbc/scopedkv/internal/testutil"
)

// The maximum scope id has no successor to fence with, so clear and
// emptiness walks must terminate on the prefix check alone. Seed composite
// keys directly to pin the ids.
func Test_ClearScope_MaxID(t *testing.T) {
	env := testutil.OpenTestEnv(t, 8)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	db, err := CreateRawDatabase(txn, "cache", reg)
	require.NoError(t, err)

	const maxID = uint32(math.MaxUint32)
	neighbor := maxID - 1
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, txn.Put(db.scopedDBI, keycodec.Encode(maxID, []byte(k)), []byte("v"), 0))
		require.NoError(t, txn.Put(db.scopedDBI, keycodec.Encode(neighbor, []byte(k)), []byte("v"), 0))
	}

	empty, err := scopeIsEmpty(txn, db.scopedDBI, maxID)
	require.NoError(t, err)
	assert.False(t, empty)

	require.NoError(t, clearScope(txn, db.scopedDBI, maxID))

	empty, err = scopeIsEmpty(txn, db.scopedDBI, maxID)
	require.NoError(t, err)
	assert.True(t, empty)

	// The neighboring scope is untouched.
	empty, err = scopeIsEmpty(txn, db.scopedDBI, neighbor)
	require.NoError(t, err)
	assert.False(t, empty)

	testutil.MustCommit(t, txn)
}

// Scope ids differing only in their high byte must not bleed into one
// another's walks.
func Test_ScopeFence_HighBytes(t *testing.T) {
	env := testutil.OpenTestEnv(t, 8)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	db, err := CreateRawDatabase(txn, "cache", reg)
	require.NoError(t, err)

	low := uint32(0x00000001)
	high := uint32(0x01000001)
	require.NoError(t, txn.Put(db.scopedDBI, keycodec.Encode(low, []byte("k")), []byte("low"), 0))
	require.NoError(t, txn.Put(db.scopedDBI, keycodec.Encode(high, []byte("k")), []byte("high"), 0))

	require.NoError(t, clearScope(txn, db.scopedDBI, low))

	empty, err := scopeIsEmpty(txn, db.scopedDBI, low)
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = scopeIsEmpty(txn, db.scopedDBI, high)
	require.NoError(t, err)
	assert.False(t, empty)

	testutil.MustCommit(t, txn)
}

func Test_DBIIsEmpty(t *testing.T) {
	env := testutil.OpenTestEnv(t, 8)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	db, err := CreateRawDatabase(txn, "cache", reg)
	require.NoError(t, err)

	empty, err := dbiIsEmpty(txn, db.defaultDBI)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, db.Put(txn, DefaultScope(), []byte("k"), []byte("v")))

	empty, err = dbiIsEmpty(txn, db.defaultDBI)
	require.NoError(t, err)
	assert.False(t, empty)

	testutil.MustCommit(t, txn)
}
