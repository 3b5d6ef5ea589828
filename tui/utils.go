package tui

import (
	"fmt"
	"strings"

	"github.com/bassamadnan/codeshare/document"
	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to a max length, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// renderOutput formats the last execution result for the output pane.
func renderOutput(result *document.ExecutionResult) string {
	if result == nil {
		return OutputPlaceholderStyle.Render(outputHint)
	}
	style := OutputStyle
	if result.IsError {
		style = OutputErrorStyle
	}
	lines := make([]string, len(result.OutputLines))
	for i, line := range result.OutputLines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// renderAccessList draws the collaborator list. In removal mode every entry
// gets a revoke marker; entries with a change in flight are dimmed.
func renderAccessList(access []string, selected int, removing bool, updating func(string) bool, width int) string {
	if len(access) == 0 {
		return DimStyle.Render(" Not shared with anyone yet")
	}
	lines := make([]string, 0, len(access))
	for i, email := range access {
		marker := "  "
		if removing {
			marker = RemoveMarkerStyle.Render(removeMarker) + " "
		}
		text := truncate(email, width-lipgloss.Width(selectedPrefix)-3)
		if updating != nil && updating(email) {
			text = DimStyle.Render(text + " …")
		}
		if i == selected {
			lines = append(lines, SelectedListItemStyle.Render(selectedPrefix+marker+text))
			continue
		}
		lines = append(lines, ListItemStyle.Render("  "+marker+text))
	}
	return strings.Join(lines, "\n")
}

// formatHeader builds the title shown above the editor.
func formatHeader(title, documentID, language string) string {
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%s (%s) · %s", title, documentID, language)
}

// clamp keeps i inside [0, n).
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
