package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/parser"
)

var explainAnalyze bool

var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Parse a single statement and print it wrapped in EXPLAIN",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sql, err := readSource(args)
		if err != nil {
			return err
		}
		flags, err := currentFlags()
		if err != nil {
			return err
		}
		session := newCLISession(flags)
		prepared, err := parser.PrepareCommand(sql, session)
		if err != nil {
			return err
		}
		fmt.Println((&ast.Explain{Analyze: explainAnalyze, Target: prepared.Command}).String())
		return nil
	},
}

func init() {
	explainCmd.Flags().BoolVar(&explainAnalyze, "analyze", false, "emit EXPLAIN ANALYZE instead of EXPLAIN")
	rootCmd.AddCommand(explainCmd)
}
