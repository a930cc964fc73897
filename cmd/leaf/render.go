package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sunholo/leaf/internal/diag"
)

var (
	errColor = color.New(color.FgRed, color.Bold).SprintFunc()
	posColor = color.New(color.FgCyan).SprintFunc()
	dimColor = color.New(color.Faint).SprintFunc()
)

// renderError formats a *diag.Error the way go-dws's
// internal/errors.CompilerError.Format renders a compiler error: a
// file:line:col header, the offending source line with a gutter, and a
// caret under the reported column — but through fatih/color's SprintFunc
// helpers rather than go-dws's own raw ANSI escapes, per this project's
// convention of always going through the color library.
func renderError(err *diag.Error, src []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s: %s\n", errColor("error["+err.Code+"]"), posColor(err.Pos.String()), err.Msg)

	if err.Pos.Line <= 0 || src == nil {
		return sb.String()
	}
	lines := strings.Split(string(src), "\n")
	if err.Pos.Line > len(lines) {
		return sb.String()
	}
	srcLine := lines[err.Pos.Line-1]
	gutter := fmt.Sprintf("%4d | ", err.Pos.Line)
	fmt.Fprintf(&sb, "%s%s\n", dimColor(gutter), srcLine)

	col := err.Pos.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(&sb, "%s%s\n", strings.Repeat(" ", len(gutter)+col-1), errColor("^"))
	return sb.String()
}
