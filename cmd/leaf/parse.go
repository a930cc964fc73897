package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/module"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a leaf source file and print each function's AST as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	mod, perr := module.Parse(src, module.FileSource{Kind: module.SourceProjectRelative, Path: path})
	if perr != nil {
		fmt.Fprint(os.Stderr, renderError(perr, src))
		return fmt.Errorf("leaf: parsing %s failed", path)
	}

	for _, fn := range mod.Functions {
		fmt.Printf("%s %s\n", dimColor("fn"), fn.Name)
		fmt.Println(ast.Print(fn.Body.Inner))
	}
	return nil
}
