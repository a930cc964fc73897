package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL drives one interactive session: a liner-backed line editor wrapped
// around a Session.
type REPL struct {
	session *Session
	version string
}

// New builds a REPL with a fresh Session.
func New(version string) (*REPL, error) {
	s, err := NewSession()
	if err != nil {
		return nil, fmt.Errorf("initializing prelude: %w", err)
	}
	if version == "" {
		version = "dev"
	}
	return &REPL{session: s, version: version}, nil
}

// Start runs the read-eval-print loop until in reaches EOF or the user
// types ":quit".
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".leaf_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("leaf"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("leaf> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if input == ":help" || input == ":h" {
			r.printHelp(out)
			continue
		}

		r.evalLine(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) evalLine(input string, out io.Writer) {
	res, err := r.session.Eval(input)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	switch res.Kind {
	case ResultDeclaration:
		fmt.Fprintf(out, "%s %s\n", green("declared"), strings.Join(res.Declared, ", "))
	case ResultValue:
		fmt.Fprintln(out, yellow(res.Value.String()))
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, dim("Commands:"))
	fmt.Fprintln(out, "  :help, :h          show this message")
	fmt.Fprintln(out, "  :quit, :q, :exit   leave the REPL")
	fmt.Fprintln(out, dim("Anything else is either a top-level \"fn\"/\"type\"/\"enum\" declaration"))
	fmt.Fprintln(out, dim("or a bare expression evaluated against everything declared so far."))
}
