package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags (-ldflags "-X main.Version=...").
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "leaf",
	Short: "leaf compiler front-end and evaluator",
	Long: `leaf parses, type-checks, links and evaluates programs written in a
small, statically-typed, purely functional expression-oriented language.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
