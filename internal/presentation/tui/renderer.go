package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a markdown document for the terminal using glamour.
// It falls back to the raw markdown when the renderer cannot be built.
func RenderMarkdown(markdown string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
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
