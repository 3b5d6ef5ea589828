package tui

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/bassamadnan/codeshare/config"
	"github.com/bassamadnan/codeshare/document"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// overlay is what, if anything, is drawn over the output pane.
type overlay int

const (
	overlayNone overlay = iota
	overlayMenu
	overlayAccess
	overlayAddEmail
)

type menuItem int

const (
	menuRun menuItem = iota
	menuSave
	menuShare
	menuLanguage
)

var menuItems = []menuItem{menuRun, menuSave, menuShare, menuLanguage}

func (i menuItem) String() string {
	switch i {
	case menuRun:
		return "Run code"
	case menuSave:
		return "Save code"
	case menuShare:
		return "Manage access"
	case menuLanguage:
		return "Next language"
	}
	return ""
}

const (
	headerHeight    = 1
	statusBarHeight = 1
	minPaneWidth    = 20
)

// Model is the bubbletea model for one open document.
type Model struct {
	session    *document.Session
	toasts     *toastQueue
	cfgManager *config.Manager

	documentID string
	toastFor   time.Duration
	languages  []string
	language   string
	hydrated   bool

	editor  textarea.Model
	output  viewport.Model
	email   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	overlay   overlay
	menuIdx   int
	accessIdx int
	spinning  bool

	width, height int
}

// newModel builds the model for session. toasts must be the sink the
// session was created with.
func newModel(session *document.Session, toasts *toastQueue, cfgManager *config.Manager, documentID string, settings config.Settings) *Model {
	editor := textarea.New()
	editor.Placeholder = "Write your code here..."
	editor.CharLimit = 0
	editor.ShowLineNumbers = true
	editor.Focus()

	email := textinput.New()
	email.Placeholder = "name@example.com"
	email.CharLimit = 254

	languages := settings.Languages()
	language := settings.Language
	if !slices.Contains(languages, language) && len(languages) > 0 {
		language = languages[0]
	}

	m := &Model{
		session:    session,
		toasts:     toasts,
		cfgManager: cfgManager,
		documentID: documentID,
		toastFor:   settings.ToastDuration(),
		languages:  languages,
		language:   language,
		editor:     editor,
		output:     viewport.New(0, 0),
		email:      email,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
	m.refreshOutput()
	return m
}

func (m *Model) Init() tea.Cmd {
	log.Printf("TUI: opening document %s", m.documentID)
	return tea.Batch(m.session.Init(), textarea.Blink, m.startSpinner())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.session.Handle(msg) {
		m.syncWithSession()
	} else {
		switch msg := msg.(type) {
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
			m.layout()

		case tea.KeyMsg:
			cmds = append(cmds, m.handleKey(msg))

		case spinner.TickMsg:
			if !m.loading() {
				m.spinning = false
				break
			}
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)

		case toastExpiredMsg:
			m.toasts.expire(msg.id)

		case ErrorMsg:
			log.Printf("TUI: %v", msg.Err)
			m.toasts.Notify(document.Notification{
				Title:       "Settings not saved",
				Description: msg.Err.Error(),
				Severity:    document.SeverityError,
				Duration:    m.toastFor,
			})

		default:
			cmds = append(cmds, m.updateInputs(msg))
		}
	}

	cmds = append(cmds, m.toasts.drain()...)
	return m, tea.Batch(cmds...)
}

// syncWithSession reflects a freshly applied result in the widgets.
func (m *Model) syncWithSession() {
	access := m.session.Access
	if !m.hydrated && access.Loaded() {
		m.hydrated = true
		code := access.Code()
		if m.editor.Value() == "" {
			m.editor.SetValue(code.Content)
		}
		if slices.Contains(m.languages, code.Language) {
			m.language = code.Language
		}
	}
	if m.overlay == overlayAddEmail && access.Mode() != document.AccessAdding {
		m.closeEmailInput()
	}
	m.accessIdx = clamp(m.accessIdx, len(access.Access()))
	m.refreshOutput()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		log.Println("TUI: quit requested")
		return tea.Quit
	}

	switch m.overlay {
	case overlayAddEmail:
		return m.handleAddEmailKey(msg)
	case overlayAccess:
		return m.handleAccessKey(msg)
	case overlayMenu:
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Run):
		return m.run()
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Menu):
		m.openOverlay(overlayMenu)
		return nil
	case key.Matches(msg, m.keys.Share):
		m.openOverlay(overlayAccess)
		return nil
	case key.Matches(msg, m.keys.Language):
		return m.cycleLanguage()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
		m.closeOverlay()
	case key.Matches(msg, m.keys.Up):
		m.menuIdx = clamp(m.menuIdx-1, len(menuItems))
	case key.Matches(msg, m.keys.Down):
		m.menuIdx = clamp(m.menuIdx+1, len(menuItems))
	case key.Matches(msg, m.keys.Select):
		item := menuItems[m.menuIdx]
		m.closeOverlay()
		switch item {
		case menuRun:
			return m.run()
		case menuSave:
			return m.save()
		case menuShare:
			m.openOverlay(overlayAccess)
		case menuLanguage:
			return m.cycleLanguage()
		}
	}
	return nil
}

func (m *Model) handleAccessKey(msg tea.KeyMsg) tea.Cmd {
	access := m.session.Access
	list := access.Access()

	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Share):
		if access.Mode() == document.AccessRemoving {
			access.ToggleRemoval()
		}
		m.closeOverlay()
	case key.Matches(msg, m.keys.Add):
		access.OpenAdd()
		m.overlay = overlayAddEmail
		m.email.SetValue(access.Pending())
		return m.email.Focus()
	case key.Matches(msg, m.keys.Remove):
		access.ToggleRemoval()
	case key.Matches(msg, m.keys.Up):
		m.accessIdx = clamp(m.accessIdx-1, len(list))
	case key.Matches(msg, m.keys.Down):
		m.accessIdx = clamp(m.accessIdx+1, len(list))
	case key.Matches(msg, m.keys.Select):
		if access.Mode() != document.AccessRemoving || len(list) == 0 {
			return nil
		}
		return access.Revoke(list[clamp(m.accessIdx, len(list))])
	}
	return nil
}

func (m *Model) handleAddEmailKey(msg tea.KeyMsg) tea.Cmd {
	access := m.session.Access
	switch {
	case key.Matches(msg, m.keys.Close):
		access.CloseAdd()
		m.closeEmailInput()
		return nil
	case key.Matches(msg, m.keys.Select):
		access.SetPending(m.email.Value())
		return access.GrantPending()
	}
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	access.SetPending(m.email.Value())
	return cmd
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.overlay == overlayAddEmail {
		m.email, cmd = m.email.Update(msg)
		return cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) run() tea.Cmd {
	cmd := m.session.Execution.Run(m.editor.Value(), m.language)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) save() tea.Cmd {
	cmd := m.session.Persistence.Save(m.editor.Value())
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) cycleLanguage() tea.Cmd {
	if len(m.languages) == 0 {
		return nil
	}
	idx := slices.Index(m.languages, m.language)
	m.language = m.languages[(idx+1)%len(m.languages)]
	m.toasts.Notify(document.Notification{
		Title:       "Language",
		Description: fmt.Sprintf("Code will run as %s", m.language),
		Severity:    document.SeverityInfo,
		Duration:    m.toastFor,
	})
	return saveLanguageCmd(m.cfgManager, m.language)
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) loading() bool {
	return m.session.Busy() || m.session.Access.Refreshing()
}

func (m *Model) openOverlay(o overlay) {
	m.overlay = o
	m.menuIdx = 0
	m.editor.Blur()
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.editor.Focus()
}

func (m *Model) closeEmailInput() {
	m.email.Blur()
	m.email.Reset()
	m.overlay = overlayAccess
}

func (m *Model) refreshOutput() {
	m.output.SetContent(renderOutput(m.session.Execution.Result()))
	m.output.GotoBottom()
}
