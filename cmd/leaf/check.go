package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunholo/leaf/internal/config"
	"github.com/sunholo/leaf/internal/program"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check and link a leaf program without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, cerr := config.Resolve(path)
	if cerr != nil {
		return cerr
	}

	prog, perr := program.Load(cfg, path)
	if perr != nil {
		return reportDiag(perr, path)
	}

	mod := prog.Table.Modules[prog.EntryModuleID]
	fmt.Printf("%s %s: %d function(s), %d type(s) — OK\n", dimColor("checked"), path, len(mod.Functions), len(mod.Types))
	return nil
}
