package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vippsas/sqlfront/dialect"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlfront",
		Short:        "sqlfront",
		SilenceUsage: true,
		Long:         `Diagnostic CLI for the sqlfront tokenizer/parser/resolver: tokenize, parse, and explain SQL text under a chosen dialect.`,
	}

	dialectMode    string
	dialectProfile string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&dialectMode, "mode", "regular", "compatibility mode (regular, mysql, postgresql, oracle, sqlserver, mssqlserver, db2, derby, hsqldb)")
	rootCmd.PersistentFlags().StringVar(&dialectProfile, "dialect-profile", "", "path to a YAML file overriding individual dialect flags")
	return rootCmd.Execute()
}

func currentFlags() (dialect.Flags, error) {
	return loadFlags(dialectMode, dialectProfile)
}

func init() {
}
