package scoped

import (
	"testing"

	"github.com/Giulio2002/gdbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-pbc/scopedkv/internal/testutil"
)

func Test_RawDatabase_PutGetDelete(t *testing.T) {
	env := testutil.OpenTestEnv(t, 8)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	db, err := CreateRawDatabase(txn, "cache", reg)
	require.NoError(t, err)

	tenant := mustScope(t, "tenant1")
	require.NoError(t, db.Put(txn, tenant, []byte("k"), []byte{0x00, 0xFF, 0x10}))
	require.NoError(t, db.Put(txn, DefaultScope(), []byte("k"), []byte("plain")))
	testutil.MustCommit(t, txn)

	txn, err = env.BeginTxn(nil, 0)
	require.NoError(t, err)

	v, ok, err := db.Get(txn, tenant, []byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0x00, 0xFF, 0x10}, v)

	v, ok, err = db.Get(txn, DefaultScope(), []byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("plain"), v)

	removed, err := db.Delete(txn, tenant, []byte("k"))
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok, err = db.Get(txn, tenant, []byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)

	testutil.MustCommit(t, txn)
}

// Cross-container prune: a scope written in two databases survives prune
// until it is empty in both.
func Test_Prune_CrossContainer(t *testing.T) {
	env := testutil.OpenTestEnv(t, 16)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	users, err := NewJSONDatabase[string, string](txn, "users", reg)
	require.NoError(t, err)
	posts, err := NewBytesKeyJSONDatabase[string](txn, "posts", reg)
	require.NoError(t, err)

	tenant := mustScope(t, "t")
	require.NoError(t, users.Put(txn, tenant, "u1", "alice"))
	require.NoError(t, posts.Put(txn, tenant, []byte("p1"), "hello"))
	testutil.MustCommit(t, txn)

	checkers := []EmptinessChecker{users, posts}

	// Still used by posts: prune removes nothing.
	txn, err = env.BeginTxn(nil, 0)
	require.NoError(t, err)
	require.NoError(t, users.Clear(txn, tenant))
	removed, err := reg.PruneGloballyUnused(txn, checkers)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	testutil.MustCommit(t, txn)

	// Empty everywhere: prune removes it and only the default scope remains.
	txn, err = env.BeginTxn(nil, 0)
	require.NoError(t, err)
	require.NoError(t, posts.Clear(txn, tenant))
	removed, err = reg.PruneGloballyUnused(txn, checkers)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	scopes, err := reg.ListAll(txn)
	require.NoError(t, err)
	require.Len(t, scopes, 1)
	assert.True(t, scopes[0].IsDefault())
	testutil.MustCommit(t, txn)
}

// A checker set missing one container can prune a scope that container
// still uses; the contract is explicit about reflecting only the supplied
// set.
func Test_Prune_OmittedContainer(t *testing.T) {
	env := testutil.OpenTestEnv(t, 16)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	users, err := NewJSONDatabase[string, string](txn, "users", reg)
	require.NoError(t, err)
	posts, err := NewBytesKeyJSONDatabase[string](txn, "posts", reg)
	require.NoError(t, err)

	tenant := mustScope(t, "t")
	require.NoError(t, posts.Put(txn, tenant, []byte("p1"), "hello"))

	removed, err := reg.PruneGloballyUnused(txn, []EmptinessChecker{users})
	require.NoError(t, err)
	assert.Equal(t, 1, removed, "prune sees only the supplied checkers")

	// The data itself is untouched; the next write re-registers.
	v, ok, err := posts.Get(txn, tenant, []byte("p1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	testutil.MustCommit(t, txn)
}
