package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vippsas/sqlfront/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize SQL text and print one line per token",
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
		toks, err := lexer.Tokenize(sql, flags)
		if err != nil {
			return err
		}
		for _, t := range toks {
			if t.Kind.String() == "Keyword" {
				fmt.Printf("%-24s %-16s %q\n", t.Kind, t.Keyword, t.Text)
				continue
			}
			fmt.Printf("%-24s %-16s %q\n", t.Kind, "", t.Text)
		}
		return nil
	},
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
