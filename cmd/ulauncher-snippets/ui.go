package main

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// outputFormat selects between styled terminal output and plain text
type outputFormat int

const (
	formatTerminal outputFormat = iota
	formatText
)

// detectFormat determines the output format from the environment and
// terminal capabilities
func detectFormat(output *os.File) outputFormat {
	if os.Getenv("NO_COLOR") != "" {
		return formatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return formatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return formatText
	}
	return formatTerminal
}

func styled() bool {
	return detectFormat(os.Stdout) == formatTerminal
}

func nameStyle() lipgloss.Style {
	if !styled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})
}

func descStyle() lipgloss.Style {
	if !styled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "244", Dark: "246"})
}

func pathStyle() lipgloss.Style {
	if !styled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "35"})
}

func errorStyle() lipgloss.Style {
	if detectFormat(os.Stderr) != formatTerminal {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
}

// previewMarkdown renders markdown for the terminal, falling back to
// the raw content when the renderer is unavailable or output is piped
func previewMarkdown(content string) string {
	if !styled() {
		return content
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
