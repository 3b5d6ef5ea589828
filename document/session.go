package document

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Session bundles the controllers of one open document. They share the
// document id and the notification sink but nothing else: each keeps its
// own in-flight request and phase.
type Session struct {
	Access      *AccessController
	Execution   *ExecutionController
	Persistence *PersistenceController
}

// NewSession builds the three controllers from one shared cfg.
func NewSession(cfg Config, access AccessService, saver CodeSaver, runner Runner) (*Session, error) {
	ac, err := NewAccessController(cfg, access)
	if err != nil {
		return nil, err
	}
	ec, err := NewExecutionController(cfg, runner)
	if err != nil {
		return nil, err
	}
	pc, err := NewPersistenceController(cfg, saver)
	if err != nil {
		return nil, err
	}
	return &Session{Access: ac, Execution: ec, Persistence: pc}, nil
}

// Init loads the collaborator list as soon as the session is associated with
// its document.
func (s *Session) Init() tea.Cmd {
	return s.Access.Load()
}

// Handle routes a result message to the controller that issued it. It
// reports whether any controller consumed msg.
func (s *Session) Handle(msg tea.Msg) bool {
	return s.Access.Handle(msg) || s.Execution.Handle(msg) || s.Persistence.Handle(msg)
}

// Busy reports whether a run or save is in flight.
func (s *Session) Busy() bool {
	return s.Execution.Loading() || s.Persistence.Loading()
}
