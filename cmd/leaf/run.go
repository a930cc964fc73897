package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/config"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/program"
	"github.com/sunholo/leaf/internal/runtime"
)

var (
	runDumpAST bool
	runTrace   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a leaf program, evaluating its \"main\" function",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump each declared function's body as JSON before running")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace tail-rewrite steps during evaluation")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, cerr := config.Resolve(path)
	if cerr != nil {
		return cerr
	}
	cfg.DumpAST = runDumpAST
	cfg.Trace = runTrace

	prog, perr := program.Load(cfg, path)
	if perr != nil {
		return reportDiag(perr, path)
	}

	if cfg.DumpAST {
		dumpEntryModuleAST(prog)
	}
	if verbose {
		dumpLinkedRuntime(prog)
	}

	var val runtime.Value
	var rerr *diag.Error
	if cfg.Trace {
		val, rerr = prog.RunTraced(os.Stderr)
	} else {
		val, rerr = prog.Run()
	}
	if rerr != nil {
		return reportDiag(rerr, path)
	}
	fmt.Println(val.String())
	return nil
}

func dumpEntryModuleAST(prog *program.Program) {
	mod := prog.Table.Modules[prog.EntryModuleID]
	for _, fn := range mod.Functions {
		fmt.Fprintf(os.Stderr, "%s %s\n", dimColor("fn"), fn.Name)
		fmt.Fprintln(os.Stderr, ast.Print(fn.Body.Inner))
	}
}

// dumpLinkedRuntime spew-dumps the flattened instruction table ("--verbose"):
// unlike --dump-ast, which prints each function's checked AST before
// linking, this shows the actual ir.Entity tree internal/runtime.Eval walks,
// indices and all.
func dumpLinkedRuntime(prog *program.Program) {
	fmt.Fprintln(os.Stderr, dimColor("linked runtime:"))
	spew.Fdump(os.Stderr, prog.Runtime)
}

// reportDiag renders a *diag.Error with source context when the failing
// file is readable, falling back to a bare error line otherwise (e.g. for
// errors with no meaningful position, or an unreadable path).
func reportDiag(err *diag.Error, path string) error {
	src, _ := os.ReadFile(path)
	fmt.Fprint(os.Stderr, renderError(err, src))
	return fmt.Errorf("leaf: %s failed", path)
}
