package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/connerohnesorge/asciidork/internal/theme"
	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether w (when it is a terminal) supports ANSI
// rendering; diagnostics printed to a pipe or file fall back to plain
// text.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printDiagnostics renders each diagnostic as one line: severity
// (colored per th when color is true), its byte-offset span, and the
// message. Line/column positions are only resolvable for the primary
// source, since the CLI holds the primary file's bytes but not an
// included file's.
func printDiagnostics(w io.Writer, primary []byte, diags []asciidoc.Diagnostic, th *theme.Theme, color bool) {
	errStyle := lipgloss.NewStyle().Bold(true)
	warnStyle := lipgloss.NewStyle()
	if color {
		errStyle = errStyle.Foreground(th.SeverityColor(true))
		warnStyle = warnStyle.Foreground(th.SeverityColor(false))
	}

	for _, d := range diags {
		style := warnStyle
		if d.Severity == asciidoc.SeverityError {
			style = errStyle
		}

		label := style.Render(d.Severity.String())
		loc := formatLocation(primary, d.Location)
		fmt.Fprintf(w, "%s: %s: %s\n", label, loc, d.Message)
	}
}

// formatLocation renders loc as line:column when it falls in the
// primary source (the only bytes the CLI holds directly) and as a bare
// source-index/byte-offset pair for anything pulled in via include.
func formatLocation(primary []byte, loc asciidoc.MultiSourceLocation) string {
	if loc.StartSourceIdx != 0 || len(primary) == 0 {
		return fmt.Sprintf("source #%d byte %d", loc.StartSourceIdx, loc.StartByte)
	}

	line, col := 1, 0
	offset := loc.StartByte
	if offset > len(primary) {
		offset = len(primary)
	}
	for i := 0; i < offset; i++ {
		if primary[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	return fmt.Sprintf("%d:%d", line, col)
}
