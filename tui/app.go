package tui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bassamadnan/codeshare/config"
	"github.com/bassamadnan/codeshare/document"
	tea "github.com/charmbracelet/bubbletea"
)

// Services are the remote collaborators of an open document.
type Services struct {
	Access document.AccessService
	Saver  document.CodeSaver
	Runner document.Runner
}

// App runs the terminal UI for one document.
type App struct {
	model   *Model
	program *tea.Program
}

// NewApp wires a document session to the terminal UI. Cancelling ctx aborts
// in-flight requests and stops the program.
func NewApp(ctx context.Context, cfgManager *config.Manager, documentID string, services Services) (*App, error) {
	settings := cfgManager.GetSettings()
	toasts := newToastQueue()

	session, err := document.NewSession(document.Config{
		DocumentID:    documentID,
		Sink:          toasts,
		Context:       ctx,
		Timeout:       settings.Timeout(),
		ToastDuration: settings.ToastDuration(),
	}, services.Access, services.Saver, services.Runner)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	model := newModel(session, toasts, cfgManager, documentID, settings)
	return &App{
		model:   model,
		program: tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)),
	}, nil
}

// Run blocks until the user quits or the context is cancelled.
func (a *App) Run() error {
	log.Println("TUI: starting program")
	if _, err := a.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
