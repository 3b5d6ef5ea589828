package tui

import "github.com/charmbracelet/lipgloss"

var (
	// General
	AppStyle = lipgloss.NewStyle().Padding(0, 0)

	HeaderStyle     = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	HeaderMetaStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("250")).Padding(0, 1)

	// Panes
	PaneStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).BorderForeground(lipgloss.Color("240"))
	FocusedPaneStyle = PaneStyle.BorderForeground(lipgloss.Color("99"))
	PaneTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).PaddingLeft(1)

	// Output
	OutputStyle            = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
	OutputErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	OutputPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"}).Italic(true)

	// Access list and menu
	ListItemStyle         = lipgloss.NewStyle().PaddingLeft(1)
	SelectedListItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("99")).Bold(true)
	RemoveMarkerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	DimStyle              = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "238"})
	ModalStyle            = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1)

	// Status Bar
	StatusBarSuccessStyle = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	StatusBarNormalStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	StatusBarErrorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	StatusBarInfoStyle    = lipgloss.NewStyle().Background(lipgloss.Color("25")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)

const (
	removeMarker   = "x"
	selectedPrefix = "› "
	outputHint     = "Run the code to see the output here"
)
