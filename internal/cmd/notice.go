package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// User-facing confirmations go to stderr so stdout stays clean for
// redirected output. Styling is dropped when stderr is not a terminal;
// lipgloss only probes stdout on its own.
var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleNotice  = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
)

var stderrIsTerminal = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

func render(style lipgloss.Style, msg string) string {
	if !stderrIsTerminal {
		return msg
	}
	return style.Render(msg)
}

// successf prints a confirmation line to stderr.
func successf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, render(styleSuccess, fmt.Sprintf(format, args...)))
}

// noticef prints an informational line to stderr.
func noticef(format string, args ...any) {
	fmt.Fprintln(os.Stderr, render(styleNotice, fmt.Sprintf(format, args...)))
}
