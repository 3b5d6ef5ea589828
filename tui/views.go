package tui

import (
	"strings"

	"github.com/bassamadnan/codeshare/document"
	"github.com/charmbracelet/lipgloss"
)

// paneSizes splits the screen between the editor and the side pane.
// Returned sizes include borders.
func (m *Model) paneSizes() (editorWidth, sideWidth, height int) {
	height = m.height - headerHeight - statusBarHeight
	if height < 0 {
		height = 0
	}
	editorWidth = m.width * 3 / 5
	if editorWidth < minPaneWidth {
		editorWidth = minPaneWidth
	}
	if editorWidth > m.width {
		editorWidth = m.width
	}
	sideWidth = m.width - editorWidth
	return editorWidth, sideWidth, height
}

// layout resizes the widgets after a terminal resize.
func (m *Model) layout() {
	editorWidth, sideWidth, height := m.paneSizes()
	inner := height - PaneStyle.GetVerticalFrameSize() - 1
	if inner < 1 {
		inner = 1
	}
	m.editor.SetWidth(max(editorWidth-PaneStyle.GetHorizontalFrameSize(), 1))
	m.editor.SetHeight(inner)
	m.output.Width = max(sideWidth-PaneStyle.GetHorizontalFrameSize(), 0)
	m.output.Height = inner
	m.email.Width = max(sideWidth-ModalStyle.GetHorizontalFrameSize()-6, 1)
	m.help.Width = m.width
	m.refreshOutput()
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing terminal size..."
	}

	editorWidth, sideWidth, height := m.paneSizes()
	editorPane := m.renderPane("Editor", m.editor.View(), editorWidth, height, m.overlay == overlayNone)

	var side string
	switch m.overlay {
	case overlayMenu:
		side = m.renderPane("Menu", m.renderMenu(), sideWidth, height, true)
	case overlayAccess, overlayAddEmail:
		side = m.renderPane("Access", m.renderAccessPane(sideWidth), sideWidth, height, true)
	default:
		side = m.renderPane("Output", m.output.View(), sideWidth, height, false)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, editorPane, side)
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatusBar()))
}

func (m *Model) renderHeader() string {
	code := m.session.Access.Code()
	title := HeaderStyle.Render("codeshare")
	meta := HeaderMetaStyle.
		Width(max(m.width-lipgloss.Width(title), 0)).
		Render(truncate(formatHeader(code.Title, m.documentID, m.language), m.width-lipgloss.Width(title)-2))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, meta)
}

func (m *Model) renderPane(title, content string, width, height int, focused bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := PaneStyle
	if focused {
		style = FocusedPaneStyle
	}
	inner := lipgloss.JoinVertical(lipgloss.Left, PaneTitleStyle.Render(title), content)
	return style.
		Width(max(width-style.GetHorizontalFrameSize(), 0)).
		Height(max(height-style.GetVerticalFrameSize(), 0)).
		MaxHeight(height).
		Render(inner)
}

func (m *Model) renderMenu() string {
	lines := make([]string, len(menuItems))
	for i, item := range menuItems {
		if i == m.menuIdx {
			lines[i] = SelectedListItemStyle.Render(selectedPrefix + item.String())
			continue
		}
		lines[i] = ListItemStyle.Render("  " + item.String())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAccessPane(width int) string {
	access := m.session.Access
	innerWidth := width - PaneStyle.GetHorizontalFrameSize()

	var b strings.Builder
	if !access.Loaded() && access.Refreshing() {
		b.WriteString(DimStyle.Render(" " + m.spinner.View() + " Loading collaborators..."))
	} else {
		b.WriteString(renderAccessList(access.Access(), m.accessIdx, access.Mode() == document.AccessRemoving, access.Updating, innerWidth))
	}

	if m.overlay == overlayAddEmail {
		modal := ModalStyle.Width(max(innerWidth-ModalStyle.GetHorizontalFrameSize(), 0)).Render(
			lipgloss.JoinVertical(lipgloss.Left, "Share with", m.email.View()),
		)
		b.WriteString("\n\n" + modal)
	}

	b.WriteString("\n\n" + m.help.ShortHelpView(m.keys.accessHelp()))
	return b.String()
}

func (m *Model) renderStatusBar() string {
	if t, ok := m.toasts.current(); ok {
		style := StatusBarInfoStyle
		switch t.Severity {
		case document.SeveritySuccess:
			style = StatusBarSuccessStyle
		case document.SeverityError:
			style = StatusBarErrorStyle
		}
		text := t.Title
		if t.Description != "" {
			text += ": " + t.Description
		}
		return style.Width(m.width).Render(truncate(text, m.width-style.GetHorizontalPadding()))
	}

	var activity string
	switch {
	case m.session.Execution.Loading():
		activity = m.spinner.View() + " Running... "
	case m.session.Persistence.Loading():
		activity = m.spinner.View() + " Saving... "
	case m.session.Access.Refreshing():
		activity = m.spinner.View() + " Loading... "
	}
	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	return StatusBarNormalStyle.Width(m.width).Render(activity + hints)
}
