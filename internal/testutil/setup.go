// Package testutil provides shared environment setup for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Giulio2002/gdbx"
)

// OpenTestEnv creates an MDBX environment in a temporary directory with room
// for maxDBs sub-databases. The environment is closed when the test ends.
//
// Example:
//
//	env := testutil.OpenTestEnv(t, 8)
//	txn, err := env.BeginTxn(nil, 0)
func OpenTestEnv(t *testing.T, maxDBs int) *gdbx.Env {
	t.Helper()

	env, err := gdbx.NewEnv(gdbx.Default)
	if err != nil {
		t.Fatalf("create env: %v", err)
	}
	env.SetMaxDBs(maxDBs)

	path := filepath.Join(t.TempDir(), "scoped.db")
	if err := env.Open(path, gdbx.NoSubdir|gdbx.NoMetaSync, 0644); err != nil {
		env.Close()
		t.Fatalf("open env: %v", err)
	}

	t.Cleanup(func() { env.Close() })
	return env
}

// MustCommit commits txn and fails the test on error.
func MustCommit(t *testing.T, txn *gdbx.Txn) {
	t.Helper()
	if _, err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}
