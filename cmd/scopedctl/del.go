package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDelCmd())
}

func newDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <scope> <key>",
		Short: "Delete a key from a scope",
		Long: `The del command removes one key. Deleting an absent key is reported, not
an error. Use an empty scope name ("") for the default scope.

Example:
  scopedctl del tenant1 session --env app.db --database users`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDel(args)
		},
	}
}

func runDel(args []string) error {
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
	removed, err := db.Delete(txn, scope, []byte(args[1]))
	if err != nil {
		txn.Abort()
		return err
	}
	if _, err := txn.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if removed {
		printInfo("Deleted %q from scope %s\n", args[1], scope)
	} else {
		printInfo("Key %q was not present in scope %s\n", args[1], scope)
	}
	return nil
}
