// Command leaf is the compiler-front-end and evaluator CLI: parse, check,
// run, or interactively evaluate ".lf" source.
//
// Grounded on go-dws's cmd/dwscript/cmd package (rootCmd/Execute/
// PersistentFlags shape) and ailang's cmd/ailang/main.go (trace/dump-ast
// flag naming), rebuilt around leaf's own module/check/link/runtime
// pipeline via internal/program.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
