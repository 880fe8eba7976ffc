package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keysWithValues bool

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVar(&keysWithValues, "values", false, "Print values next to keys")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <scope>",
		Short: "List the keys of a scope",
		Long: `The keys command iterates one scope of the target database and prints its
keys in stored order. Use an empty scope name ("") for the default scope.

Example:
  scopedctl keys tenant1 --env app.db --database users --values`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
}

func runKeys(args []string) error {
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

	_, db, err := openDatabase(txn)
	if err != nil {
		return err
	}

	scope := scopeFromFlag(args[0])
	it := db.Iter(txn, scope)
	defer it.Close()

	n := 0
	for it.Next() {
		k, v := it.RawItem()
		if keysWithValues {
			printInfo("%s\t%s\n", k, v)
		} else {
			printInfo("%s\n", k)
		}
		n++
	}
	if err := it.Err(); err != nil {
		return err
	}
	printVerbose("%d key(s) in scope %s\n", n, scope)
	return nil
}
