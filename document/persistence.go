package document

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

const saveFailure = "The code could not be saved. Please try again."

// CodeSaver persists a document's source.
type CodeSaver interface {
	SaveCode(ctx context.Context, id, content string) error
}

type savedMsg struct {
	gen uint64
	err error
}

// PersistenceController owns the "save code" lifecycle. It keeps no copy of
// the saved content; the editor stays the source of truth for the text.
type PersistenceController struct {
	cfg    Config
	saver  CodeSaver
	notify notifier

	phase Phase
	task  slot
}

// NewPersistenceController creates a controller that saves through saver.
func NewPersistenceController(cfg Config, saver CodeSaver) (*PersistenceController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if saver == nil {
		return nil, fmt.Errorf("%w: saver is nil", ErrConfiguration)
	}
	cfg.applyDefaults()
	return &PersistenceController{cfg: cfg, saver: saver, notify: cfg.notifier()}, nil
}

// Phase returns the state of the latest save.
func (c *PersistenceController) Phase() Phase { return c.phase }

// Loading reports whether a save is in flight.
func (c *PersistenceController) Loading() bool { return c.phase.Loading() }

// Save stores content as the document's source. Empty content is ignored.
// A save started while another is in flight cancels and supersedes it.
func (c *PersistenceController) Save(content string) tea.Cmd {
	if content == "" {
		return nil
	}
	ctx, gen := c.task.start(c.cfg.Context, c.cfg.Timeout)
	c.phase = Running

	saver, id := c.saver, c.cfg.DocumentID
	return func() tea.Msg {
		return savedMsg{gen: gen, err: saver.SaveCode(ctx, id, content)}
	}
}

// Handle applies a save result. It reports whether msg belonged to this
// controller.
func (c *PersistenceController) Handle(msg tea.Msg) bool {
	m, ok := msg.(savedMsg)
	if !ok {
		return false
	}
	c.applySave(m)
	return true
}

func (c *PersistenceController) applySave(msg savedMsg) {
	if !c.task.current(msg.gen) {
		return
	}
	defer c.task.finish(msg.gen)

	phase := Failed
	defer func() { c.phase = phase }()

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return
		}
		c.notify.failure("Could not save code", describe(msg.err, saveFailure), msg.err)
		return
	}
	c.notify.success("Code saved", "Your changes are stored")
	phase = Succeeded
}
