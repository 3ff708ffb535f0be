package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"docstudio/internal/viewmodel"
	"docstudio/internal/viewmodel/doclist"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)

	versionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AF87FF"))
)

// tagColors maps the list view's tag colours onto terminal colours
var tagColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("#04B575"),
	"orange": lipgloss.Color("#FFA500"),
	"red":    lipgloss.Color("#FF5F87"),
}

func (a *app) style(s lipgloss.Style, text string) string {
	if a.plain {
		return text
	}
	return s.Render(text)
}

func (a *app) statusTag(status string) string {
	label := doclist.StatusLabel(status)
	color, ok := tagColors[doclist.StatusColor(status)]
	if a.plain || !ok {
		return label
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}

// printNotice writes a view-model notice, if any
func (a *app) printNotice(n *viewmodel.Notice) {
	if n == nil {
		return
	}
	style := mutedStyle
	switch n.Level {
	case viewmodel.LevelSuccess:
		style = successStyle
	case viewmodel.LevelWarning:
		style = warningStyle
	case viewmodel.LevelError:
		style = errorStyle
	}
	fmt.Fprintln(a.out, a.style(style, n.Text))
}

// renderMarkdown renders generated documentation for the terminal.
// Falls back to the raw text when rendering fails.
func (a *app) renderMarkdown(md string) string {
	if a.plain {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		a.logger.Warn("markdown renderer unavailable", "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		a.logger.Warn("failed to render markdown", "error", err)
		return md
	}
	return out
}

func rule(width int) string {
	return strings.Repeat("─", width)
}
