// Package theme builds the terminal styles for the console surface.
package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/quote-saver/internal/config"
)

type Styles struct {
	Title        lipgloss.Style
	Count        lipgloss.Style
	Index        lipgloss.Style
	Quote        lipgloss.Style
	Editing      lipgloss.Style
	Empty        lipgloss.Style
	Warning      lipgloss.Style
	Prompt       lipgloss.Style
	PromptUpdate lipgloss.Style
	Help         lipgloss.Style
}

// New builds styles for output written to w. Colours are dropped when w is
// not a terminal.
func New(cfg config.ThemeConfig, w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)

	accent := lipgloss.Color(cfg.Accent)
	muted := lipgloss.Color(cfg.Muted)
	update := lipgloss.Color(cfg.Update)

	return Styles{
		Title:        r.NewStyle().Foreground(accent).Bold(true),
		Count:        r.NewStyle().Foreground(muted),
		Index:        r.NewStyle().Foreground(muted).Width(4).Align(lipgloss.Right),
		Quote:        r.NewStyle().Foreground(lipgloss.Color(cfg.Quote)).PaddingLeft(1),
		Editing:      r.NewStyle().Foreground(update).Bold(true).PaddingLeft(1),
		Empty:        r.NewStyle().Foreground(muted).Italic(true).PaddingLeft(2),
		Warning:      r.NewStyle().Foreground(lipgloss.Color(cfg.Warning)).Bold(true),
		Prompt:       r.NewStyle().Foreground(accent).Bold(true),
		PromptUpdate: r.NewStyle().Foreground(update).Bold(true),
		Help:         r.NewStyle().Foreground(muted),
	}
}
