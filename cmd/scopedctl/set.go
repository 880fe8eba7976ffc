package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSetCmd())
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <scope> <key> <value>",
		Short: "Store a value in a scope",
		Long: `The set command stores one key-value pair. Writing to a named scope
registers it in the environment's registry if needed. Use an empty scope
name ("") for the default scope.

Example:
  scopedctl set tenant1 session abc123 --env app.db --database users`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	txn, err := env.BeginTxn(nil, 0)
	if err != nil {
		return fmt.Errorf("begin txn: %w", err)
	}

	_, db, err := openDatabase(txn)
	if err != nil {
		txn.Abort()
		return err
	}

	scope := scopeFromFlag(args[0])
	if err := db.Put(txn, scope, []byte(args[1]), []byte(args[2])); err != nil {
		txn.Abort()
		return err
	}
	if _, err := txn.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	printVerbose("Stored %q in scope %s\n", args[1], scope)
	return nil
}
