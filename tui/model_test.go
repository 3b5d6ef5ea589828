package tui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bassamadnan/codeshare/codes"
	"github.com/bassamadnan/codeshare/config"
	"github.com/bassamadnan/codeshare/document"
	"github.com/bassamadnan/codeshare/piston"
	"github.com/bassamadnan/codeshare/remote"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	code     codes.Code
	saveErr  error
	stage    piston.Stage
	granted  []string
	revoked  []string
	ran      []string
	language string
}

func (f *fakeBackend) GetCode(ctx context.Context, id string) (codes.Code, error) {
	return f.code, nil
}

func (f *fakeBackend) GiveAccess(ctx context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.granted = append(f.granted, email)
	return nil
}

func (f *fakeBackend) TakeAccess(ctx context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, email)
	return nil
}

func (f *fakeBackend) SaveCode(ctx context.Context, id, content string) error {
	return f.saveErr
}

func (f *fakeBackend) Execute(ctx context.Context, language, source string) (piston.Stage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ran = append(f.ran, source)
	f.language = language
	return f.stage, nil
}

func newTestModel(t *testing.T, backend *fakeBackend) (*Model, *config.Manager) {
	t.Helper()
	t.Setenv("CODESHARE_LANGUAGE", "")
	t.Setenv("CODESHARE_TOAST_SECONDS", "60")

	cfgManager, err := config.NewManager(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	app, err := NewApp(context.Background(), cfgManager, "doc-1", Services{
		Access: backend,
		Saver:  backend,
		Runner: backend,
	})
	require.NoError(t, err)

	m := app.model
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, cfgManager
}

// collect runs cmd and returns the messages it produced. Commands that do not
// finish quickly, such as timers and cursor blinks, are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// process feeds every message produced by cmd back into m until nothing is left.
func process(m *Model, cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		_, next := m.Update(msg)
		process(m, next)
	}
}

func press(m *Model, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	process(m, cmd)
}

func typeText(m *Model, s string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModelHydratesFromFirstLoad(t *testing.T) {
	backend := &fakeBackend{code: codes.Code{
		ID:       "doc-1",
		Title:    "Fizzbuzz",
		Content:  "print('fizz')",
		Language: "go",
		Access:   []string{"a@x.com"},
	}}
	m, _ := newTestModel(t, backend)

	process(m, m.Init())

	assert.Equal(t, "print('fizz')", m.editor.Value())
	assert.Equal(t, "go", m.language)
	assert.Equal(t, []string{"a@x.com"}, m.session.Access.Access())
	assert.Contains(t, ansi.Strip(m.View()), "Fizzbuzz (doc-1) · go")
}

func TestModelRunShowsOutput(t *testing.T) {
	backend := &fakeBackend{stage: piston.Stage{Output: "1\n2\n3"}}
	m, _ := newTestModel(t, backend)
	assert.Contains(t, ansi.Strip(m.View()), outputHint)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Empty(t, backend.ran, "empty editor is not run")

	m.editor.SetValue("for i in range(1, 4): print(i)")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Len(t, backend.ran, 1)
	assert.Equal(t, "python", backend.language)
	require.NotNil(t, m.session.Execution.Result())
	assert.Equal(t, []string{"1", "2", "3"}, m.session.Execution.Result().OutputLines)
	assert.False(t, m.session.Busy())
	assert.NotContains(t, ansi.Strip(m.View()), outputHint)
}

func TestModelSaveFailureShowsToast(t *testing.T) {
	backend := &fakeBackend{saveErr: &remote.Error{Op: "save code", Kind: remote.KindRejected, Status: 403, Message: "Not allowed"}}
	m, _ := newTestModel(t, backend)

	m.editor.SetValue("print(1)")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	cur, ok := m.toasts.current()
	require.True(t, ok)
	assert.Equal(t, document.SeverityError, cur.Severity)
	assert.Contains(t, ansi.Strip(m.View()), "Could not save code: Not allowed")

	m.Update(toastExpiredMsg{id: cur.id})
	assert.NotContains(t, ansi.Strip(m.View()), "Could not save code")
}

func TestModelGrantThroughModal(t *testing.T) {
	backend := &fakeBackend{code: codes.Code{Access: []string{"a@x.com"}}}
	m, _ := newTestModel(t, backend)
	process(m, m.Init())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	require.Equal(t, overlayAccess, m.overlay)

	typeText(m, "a")
	require.Equal(t, overlayAddEmail, m.overlay)
	assert.Equal(t, document.AccessAdding, m.session.Access.Mode())

	typeText(m, "b@x.com")
	assert.Equal(t, "b@x.com", m.session.Access.Pending())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"b@x.com"}, backend.granted)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, m.session.Access.Access())
	assert.Equal(t, overlayAccess, m.overlay, "modal closes after a confirmed grant")
	assert.Equal(t, "", m.email.Value())
	assert.Equal(t, "", m.session.Access.Pending())
}

func TestModelCancelAddEmail(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	typeText(m, "a")
	typeText(m, "c@x.com")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, overlayAccess, m.overlay)
	assert.Equal(t, document.AccessBrowsing, m.session.Access.Mode())
}

func TestModelRevokeInRemovalMode(t *testing.T) {
	backend := &fakeBackend{code: codes.Code{Access: []string{"a@x.com", "b@x.com"}}}
	m, _ := newTestModel(t, backend)
	process(m, m.Init())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	press(m, tea.KeyMsg{Type: tea.KeyDown})

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, backend.revoked, "enter does nothing outside removal mode")

	typeText(m, "d")
	assert.Equal(t, document.AccessRemoving, m.session.Access.Mode())
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"b@x.com"}, backend.revoked)
	assert.Equal(t, []string{"a@x.com"}, m.session.Access.Access())
	assert.Equal(t, 0, m.accessIdx)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, document.AccessBrowsing, m.session.Access.Mode())
}

func TestModelCycleLanguagePersists(t *testing.T) {
	m, cfgManager := newTestModel(t, &fakeBackend{})
	require.Equal(t, "python", m.language)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, "typescript", m.language)
	assert.Equal(t, "typescript", cfgManager.GetSettings().Language)
}

func TestModelMenu(t *testing.T) {
	backend := &fakeBackend{stage: piston.Stage{Output: "ok"}}
	m, _ := newTestModel(t, backend)
	m.editor.SetValue("print('ok')")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Equal(t, overlayMenu, m.overlay)
	assert.Contains(t, ansi.Strip(m.View()), menuShare.String())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, overlayNone, m.overlay)
	assert.Len(t, backend.ran, 1)
}

func TestModelViewBeforeResize(t *testing.T) {
	m, _ := newTestModel(t, &fakeBackend{})
	m.width, m.height = 0, 0
	assert.Equal(t, "Initializing terminal size...", m.View())
}
