package scoped

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Giulio2002/gdbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-pbc/scopedkv/internal/testutil"
)

func newTestBytesDB(t *testing.T, name string) (*gdbx.Env, *Registry, *BytesKeyDatabase[string]) {
	t.Helper()
	env := testutil.OpenTestEnv(t, 16)

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	reg, err := NewRegistry(txn)
	require.NoError(t, err)
	db, err := NewBytesKeyJSONDatabase[string](txn, name, reg)
	require.NoError(t, err)
	testutil.MustCommit(t, txn)

	return env, reg, db
}

func Test_BytesKeyDatabase_PutGet(t *testing.T) {
	env, _, db := newTestBytesDB(t, "events")
	tenant := mustScope(t, "tenant1")

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	require.NoError(t, db.Put(txn, tenant, []byte("binary\x00key"), "value"))
	require.NoError(t, db.Put(txn, tenant, []byte{}, "empty-key-value"))
	testutil.MustCommit(t, txn)

	rtxn, err := env.BeginTxn(nil, gdbx.TxnReadOnly)
	require.NoError(t, err)
	defer rtxn.Abort()

	v, ok, err := db.Get(rtxn, tenant, []byte("binary\x00key"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", v)

	// Zero-length user keys are legal: the 12-byte prefix still fences them.
	v, ok, err = db.Get(rtxn, tenant, []byte{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "empty-key-value", v)
}

// Range fencing across overlapping key spaces: two scopes share key names,
// a bounded range in each yields only its own entries.
func Test_BytesKeyDatabase_RangeFencing(t *testing.T) {
	env, _, db := newTestBytesDB(t, "events")
	a := mustScope(t, "A")
	b := mustScope(t, "B")

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, db.Put(txn, a, fmt.Appendf(nil, "key%02d", i), fmt.Sprintf("A_%d", i)))
	}
	for i := 5; i < 15; i++ {
		require.NoError(t, db.Put(txn, b, fmt.Appendf(nil, "key%02d", i), fmt.Sprintf("B_%d", i)))
	}
	testutil.MustCommit(t, txn)

	rtxn, err := env.BeginTxn(nil, gdbx.TxnReadOnly)
	require.NoError(t, err)
	defer rtxn.Abort()

	for _, tc := range []struct {
		scope  Scope
		prefix string
		want   int
	}{
		{a, "A_", 4},
		{b, "B_", 4},
	} {
		it, err := db.Range(rtxn, tc.scope, KeyRange[[]byte]{
			Lower: Included([]byte("key05")),
			Upper: Included([]byte("key08")),
		})
		require.NoError(t, err)

		n := 0
		for it.Next() {
			_, v, err := it.Item()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(v, tc.prefix),
				"scope %s yielded foreign value %q", tc.scope, v)
			n++
		}
		require.NoError(t, it.Err())
		assert.Equal(t, tc.want, n)
		it.Close()
	}
}

func Test_BytesKeyDatabase_ClearAndEmptiness(t *testing.T) {
	env, _, db := newTestBytesDB(t, "events")
	a := mustScope(t, "A")
	b := mustScope(t, "B")

	txn, err := env.BeginTxn(nil, 0)
	require.NoError(t, err)
	require.NoError(t, db.Put(txn, a, []byte("k"), "va"))
	require.NoError(t, db.Put(txn, b, []byte("k"), "vb"))
	require.NoError(t, db.Clear(txn, a))

	isEmpty, err := db.IsScopeEmptyInDB(txn, a)
	require.NoError(t, err)
	assert.True(t, isEmpty)

	v, ok, err := db.Get(txn, b, []byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "vb", v)

	testutil.MustCommit(t, txn)
}
