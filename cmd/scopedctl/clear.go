package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newClearCmd())
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <scope>",
		Short: "Remove every entry of a scope",
		Long: `The clear command deletes all entries within one scope of the target
database. Other scopes are untouched and the scope stays registered. Use an
empty scope name ("") for the default scope.

Example:
  scopedctl clear tenant1 --env app.db --database users`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(args)
		},
	}
}

func runClear(args []string) error {
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
	if err := db.Clear(txn, scope); err != nil {
		txn.Abort()
		return err
	}
	if _, err := txn.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	printInfo("Cleared scope %s in %s\n", scope, dbName)
	return nil
}
