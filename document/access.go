package document

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bassamadnan/codeshare/codes"
	"github.com/bassamadnan/codeshare/remote"
	tea "github.com/charmbracelet/bubbletea"
)

const genericFailure = "Something went wrong. Please try again."

// AccessService is the document authority as seen by AccessController.
//
// Contract:
// - Context: calls must honor cancellation and deadlines.
// - Errors: failures should be *remote.Error so the server message can be shown.
type AccessService interface {
	GetCode(ctx context.Context, id string) (codes.Code, error)
	GiveAccess(ctx context.Context, id, email string) error
	TakeAccess(ctx context.Context, id, email string) error
}

// AccessMode is the presentation state of the collaborator list.
type AccessMode int

const (
	// AccessBrowsing shows the list without revoke affordances.
	AccessBrowsing AccessMode = iota
	// AccessRemoving shows a revoke affordance per entry.
	AccessRemoving
	// AccessAdding has the add-email modal open. Opening it leaves removal mode.
	AccessAdding
)

func (m AccessMode) String() string {
	switch m {
	case AccessRemoving:
		return "removing"
	case AccessAdding:
		return "adding"
	default:
		return "browsing"
	}
}

// loadedMsg reports the result of loading the document's metadata.
type loadedMsg struct {
	gen  uint64
	code codes.Code
	err  error
}

type accessOp int

const (
	opGrant accessOp = iota
	opRevoke
)

type accessChangedMsg struct {
	op    accessOp
	email string
	err   error
}

// AccessController keeps a local copy of the document's collaborator list
// that only changes when the server confirms a load, grant or revoke.
type AccessController struct {
	cfg     Config
	service AccessService
	notify  notifier

	access  []string
	code    codes.Code
	loaded  bool
	mode    AccessMode
	pending string

	load    slot
	updates map[string]accessOp
}

// NewAccessController creates a controller for cfg.DocumentID.
func NewAccessController(cfg Config, service AccessService) (*AccessController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("%w: access service is nil", ErrConfiguration)
	}
	cfg.applyDefaults()
	return &AccessController{
		cfg:     cfg,
		service: service,
		notify:  cfg.notifier(),
		access:  []string{},
		updates: make(map[string]accessOp),
	}, nil
}

// Access returns a copy of the last confirmed collaborator list.
func (c *AccessController) Access() []string {
	return slices.Clone(c.access)
}

// Code returns the metadata from the last successful load.
func (c *AccessController) Code() codes.Code { return c.code }

// Loaded reports whether a load has succeeded at least once.
func (c *AccessController) Loaded() bool { return c.loaded }

// Refreshing reports whether a load is in flight.
func (c *AccessController) Refreshing() bool { return c.load.busy() }

// Mode returns the current presentation state.
func (c *AccessController) Mode() AccessMode { return c.mode }

// Pending returns the add-email input buffer.
func (c *AccessController) Pending() string { return c.pending }

// SetPending replaces the add-email input buffer.
func (c *AccessController) SetPending(email string) { c.pending = email }

// Updating reports whether a grant or revoke for email is in flight.
func (c *AccessController) Updating(email string) bool {
	_, ok := c.updates[email]
	return ok
}

// ToggleRemoval flips removal mode. It has no network effect.
func (c *AccessController) ToggleRemoval() {
	if c.mode == AccessRemoving {
		c.mode = AccessBrowsing
		return
	}
	c.mode = AccessRemoving
}

// OpenAdd opens the add-email modal.
func (c *AccessController) OpenAdd() { c.mode = AccessAdding }

// CloseAdd closes the add-email modal without granting anything.
func (c *AccessController) CloseAdd() {
	if c.mode == AccessAdding {
		c.mode = AccessBrowsing
	}
}

// Load fetches the document's collaborator list. A newer Load supersedes
// an older one still in flight.
func (c *AccessController) Load() tea.Cmd {
	ctx, gen := c.load.start(c.cfg.Context, c.cfg.Timeout)
	service, id := c.service, c.cfg.DocumentID
	return func() tea.Msg {
		code, err := service.GetCode(ctx, id)
		return loadedMsg{gen: gen, code: code, err: err}
	}
}

// Grant shares the document with email. Blank emails are ignored.
func (c *AccessController) Grant(email string) tea.Cmd {
	return c.mutate(opGrant, email)
}

// GrantPending grants access to the email in the input buffer.
func (c *AccessController) GrantPending() tea.Cmd {
	return c.Grant(c.pending)
}

// Revoke stops sharing the document with email. Blank emails are ignored.
func (c *AccessController) Revoke(email string) tea.Cmd {
	return c.mutate(opRevoke, email)
}

func (c *AccessController) mutate(op accessOp, email string) tea.Cmd {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, busy := c.updates[email]; busy {
		c.notify.info("Please wait", "Still updating access for "+email)
		return nil
	}
	c.updates[email] = op

	// Mutations are never cancelled: the server may already have applied them.
	ctx, cancel := context.WithTimeout(c.cfg.Context, c.cfg.Timeout)
	service, id := c.service, c.cfg.DocumentID
	return func() tea.Msg {
		defer cancel()
		var err error
		if op == opGrant {
			err = service.GiveAccess(ctx, id, email)
		} else {
			err = service.TakeAccess(ctx, id, email)
		}
		return accessChangedMsg{op: op, email: email, err: err}
	}
}

// Handle applies a result message produced by one of the controller's
// commands. It reports whether msg belonged to this controller.
func (c *AccessController) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case loadedMsg:
		c.applyLoad(msg)
		return true
	case accessChangedMsg:
		c.applyChange(msg)
		return true
	}
	return false
}

func (c *AccessController) applyLoad(msg loadedMsg) {
	if !c.load.current(msg.gen) {
		return
	}
	defer c.load.finish(msg.gen)

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return
		}
		c.notify.failure("Could not load collaborators", describe(msg.err, genericFailure), msg.err)
		return
	}
	access := msg.code.Access
	if access == nil {
		access = []string{}
	}
	c.access = slices.Clone(access)
	c.code = msg.code
	c.loaded = true
}

func (c *AccessController) applyChange(msg accessChangedMsg) {
	delete(c.updates, msg.email)

	switch msg.op {
	case opGrant:
		if msg.err != nil {
			c.notify.failure("Could not give access", describe(msg.err, genericFailure), msg.err)
			return
		}
		c.access = append(c.access, msg.email)
		c.pending = ""
		c.CloseAdd()
		c.notify.success("Access granted", msg.email+" can now open this code")

	case opRevoke:
		if msg.err != nil {
			c.notify.failure("Could not remove access", describe(msg.err, genericFailure), msg.err)
			return
		}
		kept := make([]string, 0, len(c.access))
		for _, e := range c.access {
			if e != msg.email {
				kept = append(kept, e)
			}
		}
		c.access = kept
		c.notify.success("Access removed", msg.email+" can no longer open this code")
	}
}

// describe returns the server-provided message of err, or fallback.
func describe(err error, fallback string) string {
	if _, message := remote.Classify(err); message != "" {
		return message
	}
	return fallback
}
