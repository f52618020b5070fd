package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/nocap-placify/placify/pkg/presentation/view"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Markdown describes a view as a markdown document.
func Markdown(v view.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", v.WizardTitle)
	fmt.Fprintf(&b, "## %s\n\n", v.Step.Title)
	if v.Step.Subtitle != "" {
		fmt.Fprintf(&b, "_%s_\n\n", v.Step.Subtitle)
	}
	fmt.Fprintf(&b, "Step %d of %d (%d%%)\n\n", v.Progress.Current, v.Progress.Total, v.Progress.Percent)

	if v.Message != "" {
		fmt.Fprintf(&b, "> **%s**\n\n", v.Message)
	}
	if v.Failure != nil {
		fmt.Fprintf(&b, "> **Submission failed** (%s): %s\n\n", v.Failure.Reason, v.Failure.Message)
	}

	switch {
	case len(v.Review) > 0:
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, f := range v.Review {
			fmt.Fprintf(&b, "| %s | %s |\n", f.Label, escapeCell(f.Value))
		}
		b.WriteString("\n")
	case len(v.Fields) > 0:
		for _, f := range v.Fields {
			value := f.Value
			if value == "" {
				value = "_empty_"
			}
			marker := ""
			if f.Error {
				marker = " **(invalid)**"
			}
			fmt.Fprintf(&b, "- **%s**: %s%s\n", f.Label, value, marker)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
