// Package scoped provides Redis-style logical database partitioning on top
// of a single MDBX environment.
//
// # Overview
//
// A scope is an isolated namespace inside one database: the same key bytes in
// two different scopes refer to distinct values, iteration in one scope never
// observes another, and clearing one scope leaves all others intact. Scopes
// are addressed by name; each name maps deterministically to a 32-bit id that
// prefixes every stored key of that scope.
//
// # Key Types
//
//   - Scope: value object naming either the default scope or a named scope
//     with a cached 32-bit id
//   - Registry: the per-environment persistent id -> name mapping shared by
//     every database bound to the environment
//   - Database[K, V]: typed database with codec-serialized keys and values
//   - BytesKeyDatabase[V]: raw byte keys, codec-serialized values
//   - RawDatabase: raw byte keys and values
//   - Builder: constructs any of the three flavors against a shared Registry
//
// # Storage Layout
//
// A database named "users" occupies two MDBX sub-databases: "users" holds
// default-scope entries under the plain user key, and "users_scoped" holds
// named-scope entries under a composite key (4-byte big-endian scope id,
// 8-byte big-endian key length, key bytes). The registry lives in the
// reserved sub-database "__global_scope_metadata". Open the environment with
// room for 2N+1 sub-databases for N databases.
//
// Because the default sub-database is named exactly like the database, a
// pre-existing plain MDBX database of that name opens cleanly and its
// entries appear under the default scope.
//
// # Transactions
//
// Every operation takes a *gdbx.Txn supplied by the caller, who is
// responsible for commit or abort. The library never retains a transaction
// beyond the call that received it, and iterators must not outlive the
// transaction they were created from.
//
//	env, _ := gdbx.NewEnv(gdbx.Default)
//	env.SetMaxDBs(8)
//	env.Open(path, gdbx.NoSubdir, 0644)
//
//	txn, _ := env.BeginTxn(nil, 0)
//	reg, _ := scoped.NewRegistry(txn)
//	db, _ := scoped.NewJSONDatabase[string, string](txn, "users", reg)
//
//	tenant, _ := scoped.Named("tenant1")
//	db.Put(txn, tenant, "mykey", "value")
//	txn.Commit()
//
// # Scope Lifecycle
//
// A named scope is registered on its first write (or explicitly via
// RegisterScope) and stays registered across writes, reads and clears.
// Registry.PruneGloballyUnused removes scopes that every supplied database
// reports empty; a later write re-registers the scope under the same id.
package scoped
