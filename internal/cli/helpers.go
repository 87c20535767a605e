package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/remat/internal/logging"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// createLogger configures the command logger. Verbose mode writes debug lines
// to Stderr; otherwise logging is off to keep the report output clean.
func createLogger(verbose bool) *slog.Logger {
	if verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// renderMarkdown pretty-prints a markdown report when stdout is a terminal
// and falls back to the raw text when piped.
func renderMarkdown(markdown string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return markdown
	}

	width := 100
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
