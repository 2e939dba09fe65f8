package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func RenderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label+":") + " " + value
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// Section is one localized block of a detail view.
type Section struct {
	Heading string
	Body    string
}

// RenderSections renders sections as markdown, one heading each. Empty
// bodies are skipped.
func RenderSections(sections []Section) (string, error) {
	var sb strings.Builder
	for _, s := range sections {
		if strings.TrimSpace(s.Body) == "" {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", s.Heading, s.Body)
	}
	if sb.Len() == 0 {
		return "", nil
	}
	return RenderMarkdown(sb.String())
}

func RenderSuccess(msg string) string { return successStyle.Render("✓ " + msg) }
func RenderFailure(msg string) string { return failureStyle.Render("✗ " + msg) }
