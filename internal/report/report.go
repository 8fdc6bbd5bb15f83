// Package report renders picker list models for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bagtoad/pix/internal/aggregate"
)

// Options controls text output.
type Options struct {
	// Color styles section headers and selection marks.
	Color bool
	// FullLocators prints whole locators instead of base names.
	FullLocators bool
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
)

// Print writes the list model in display order followed by a short summary.
func Print(w io.Writer, result aggregate.Result, opts Options) {
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	if len(result.FullList) == 0 {
		fmt.Fprintln(w, "No media found.")
		return
	}

	for _, e := range result.FullList {
		if e.IsHeader() {
			fmt.Fprintln(w)
			fmt.Fprintln(w, style(headerStyle, "== "+e.HeaderDate+" =="))
			continue
		}
		mark := "[ ]"
		if e.Selected {
			mark = style(selectedStyle, "[x]")
		}
		name := e.Locator
		if !opts.FullLocators {
			name = filepath.Base(name)
		}
		fmt.Fprintf(w, "  %s %4s  %-5s %s\n", mark, e.SequenceKey, e.Kind, name)
	}

	items := len(result.Items())
	sections := len(result.Sections())
	fmt.Fprintln(w)
	fmt.Fprintln(w, style(dimStyle, strings.Repeat("-", 24)))
	fmt.Fprintf(w, "Items:     %d\n", items)
	fmt.Fprintf(w, "Sections:  %d\n", sections)
	fmt.Fprintf(w, "Selected:  %d\n", len(result.Selected))
}

// JSON writes result as {"list": [...], "selection": [...]}.
func JSON(w io.Writer, result aggregate.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
