package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/leaf/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive leaf read-eval-print loop",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	r, err := repl.New(Version)
	if err != nil {
		return err
	}
	r.Start(os.Stdin, os.Stdout)
	return nil
}
