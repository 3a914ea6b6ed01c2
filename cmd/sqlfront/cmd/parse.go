package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vippsas/sqlfront/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse SQL text (possibly a `;`-separated script) and print the resulting command tree",
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
		prepared, err := parser.Prepare(sql, session)
		if err != nil {
			return err
		}
		fmt.Println(prepared.Command.String())
		fmt.Printf("-- params=%d recompile=%v\n", prepared.ParamCount, prepared.Recompile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
