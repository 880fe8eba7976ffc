package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var getHex bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getHex, "hex", false, "Output the value as hex")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <scope> <key>",
		Short: "Get a value from a scope",
		Long: `The get command retrieves a single value. Use an empty scope name ("") for
the default scope.

Example:
  scopedctl get tenant1 session --env app.db --database users
  scopedctl get "" config --hex`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
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
	printVerbose("Reading %q from scope %s\n", args[1], scope)

	value, ok, err := db.Get(txn, scope, []byte(args[1]))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("key %q not found in scope %s", args[1], scope)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"scope": scope.String(),
			"key":   args[1],
			"value": string(value),
		})
	}
	if getHex {
		printInfo("%s\n", hex.EncodeToString(value))
		return nil
	}
	printInfo("%s\n", value)
	return nil
}
