package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verse-pbc/scopedkv/scoped"
)

func init() {
	rootCmd.AddCommand(newScopesCmd())
	rootCmd.AddCommand(newPruneCmd())
}

func newScopesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List every scope registered in the environment",
		Long: `The scopes command lists the default scope and every named scope recorded
in the environment's registry, with their 32-bit ids.

Example:
  scopedctl scopes --env app.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScopes()
		},
	}
}

func runScopes() error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	txn, err := env.BeginTxn(nil, 0)
	if err != nil {
		return fmt.Errorf("begin txn: %w", err)
	}
	defer txn.Abort()

	reg, db, err := openDatabase(txn)
	if err != nil {
		return err
	}

	scopes, err := reg.ListAll(txn)
	if err != nil {
		return err
	}

	if jsonOut {
		type entry struct {
			Name    string `json:"name"`
			ID      uint32 `json:"id,omitempty"`
			Default bool   `json:"default,omitempty"`
			Empty   bool   `json:"empty"`
		}
		out := make([]entry, 0, len(scopes))
		for _, s := range scopes {
			e := entry{Default: s.IsDefault()}
			e.Name, _ = s.Name()
			e.ID, _ = s.ID()
			e.Empty, err = db.IsScopeEmptyInDB(txn, s)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return printJSON(out)
	}

	for _, s := range scopes {
		if s.IsDefault() {
			printInfo("<default>\n")
			continue
		}
		id, _ := s.ID()
		empty, err := db.IsScopeEmptyInDB(txn, s)
		if err != nil {
			return err
		}
		marker := ""
		if empty {
			marker = " (empty in " + dbName + ")"
		}
		printInfo("%s  id=%08x%s\n", s, id, marker)
	}
	return nil
}

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune [database...]",
		Short: "Unregister scopes that are empty in the named databases",
		Long: `The prune command removes registry entries for scopes that hold no data in
ANY of the named databases (defaulting to --database). Pruning reflects only
the databases listed here, so list every database of the environment that
may hold scoped data.

Example:
  scopedctl prune --env app.db users posts cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(args)
		},
	}
}

func runPrune(names []string) error {
	if len(names) == 0 {
		names = []string{dbName}
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	txn, err := env.BeginTxn(nil, 0)
	if err != nil {
		return fmt.Errorf("begin txn: %w", err)
	}

	reg, err := scoped.NewRegistry(txn)
	if err != nil {
		txn.Abort()
		return err
	}

	checkers := make([]scoped.EmptinessChecker, 0, len(names))
	for _, name := range names {
		printVerbose("Opening database: %s\n", name)
		db, err := scoped.CreateRawDatabase(txn, name, reg)
		if err != nil {
			txn.Abort()
			return err
		}
		checkers = append(checkers, db)
	}

	removed, err := reg.PruneGloballyUnused(txn, checkers)
	if err != nil {
		txn.Abort()
		return err
	}
	if _, err := txn.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	printInfo("Pruned %d scope(s)\n", removed)
	return nil
}
