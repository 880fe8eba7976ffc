package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Giulio2002/gdbx"
	"github.com/spf13/cobra"

	"github.com/verse-pbc/scopedkv/scoped"
)

var (
	// Global flags
	envPath string
	dbName  string
	verbose bool
	quiet   bool
	jsonOut bool
	maxDBs  int
)

var rootCmd = &cobra.Command{
	Use:   "scopedctl",
	Short: "Inspect and manipulate scoped MDBX databases",
	Long: `scopedctl is a tool for inspecting and manipulating scoped key-value
databases stored in an MDBX environment. It operates on raw byte keys and
values; every data command targets one database and one scope within it.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "scoped.db", "Path to the MDBX environment file")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "default", "Database name inside the environment")
	rootCmd.PersistentFlags().IntVar(&maxDBs, "max-dbs", 64, "Maximum number of sub-databases in the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openEnv opens the MDBX environment from the global flags.
func openEnv() (*gdbx.Env, error) {
	env, err := gdbx.NewEnv(gdbx.Default)
	if err != nil {
		return nil, fmt.Errorf("create env: %w", err)
	}
	env.SetMaxDBs(maxDBs)
	if err := env.Open(envPath, gdbx.NoSubdir, 0644); err != nil {
		env.Close()
		return nil, fmt.Errorf("open env %s: %w", envPath, err)
	}
	return env, nil
}

// openDatabase opens the registry and the target raw database under txn.
func openDatabase(txn *gdbx.Txn) (*scoped.Registry, *scoped.RawDatabase, error) {
	reg, err := scoped.NewRegistry(txn)
	if err != nil {
		return nil, nil, err
	}
	db, err := scoped.CreateRawDatabase(txn, dbName, reg)
	if err != nil {
		return nil, nil, err
	}
	return reg, db, nil
}

// scopeFromFlag converts a scope argument; "" selects the default scope.
func scopeFromFlag(name string) scoped.Scope {
	return scoped.FromName(name)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
