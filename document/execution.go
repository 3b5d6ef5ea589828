package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bassamadnan/codeshare/piston"
	"github.com/bassamadnan/codeshare/remote"
	tea "github.com/charmbracelet/bubbletea"
)

const runFailure = "The code could not be run. Please try again."

// Runner is the remote execution service.
type Runner interface {
	Execute(ctx context.Context, language, source string) (piston.Stage, error)
}

// ExecutionResult is the output of the last successful run.
type ExecutionResult struct {
	OutputLines []string
	IsError     bool
}

// newExecutionResult splits output on newlines and flags the result as an
// error when the service reported anything on stderr.
func newExecutionResult(stage piston.Stage) *ExecutionResult {
	return &ExecutionResult{
		OutputLines: strings.Split(stage.Output, "\n"),
		IsError:     stage.Stderr != "",
	}
}

type ranMsg struct {
	gen   uint64
	stage piston.Stage
	err   error
}

// ExecutionController owns the "run code" lifecycle.
type ExecutionController struct {
	cfg    Config
	runner Runner
	notify notifier

	phase  Phase
	result *ExecutionResult
	task   slot
}

// NewExecutionController creates a controller that runs code through runner.
func NewExecutionController(cfg Config, runner Runner) (*ExecutionController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if runner == nil {
		return nil, fmt.Errorf("%w: runner is nil", ErrConfiguration)
	}
	cfg.applyDefaults()
	return &ExecutionController{cfg: cfg, runner: runner, notify: cfg.notifier()}, nil
}

// Phase returns the state of the latest run.
func (c *ExecutionController) Phase() Phase { return c.phase }

// Loading reports whether a run is in flight.
func (c *ExecutionController) Loading() bool { return c.phase.Loading() }

// Result returns the output of the last successful run, or nil before the
// first one.
func (c *ExecutionController) Result() *ExecutionResult { return c.result }

// Run submits source for execution. Empty source is ignored. A run started
// while another is in flight cancels and supersedes it.
func (c *ExecutionController) Run(source, language string) tea.Cmd {
	if source == "" {
		return nil
	}
	ctx, gen := c.task.start(c.cfg.Context, c.cfg.Timeout)
	c.phase = Running

	runner := c.runner
	return func() tea.Msg {
		stage, err := runner.Execute(ctx, language, source)
		return ranMsg{gen: gen, stage: stage, err: err}
	}
}

// Handle applies a run result. It reports whether msg belonged to this
// controller.
func (c *ExecutionController) Handle(msg tea.Msg) bool {
	m, ok := msg.(ranMsg)
	if !ok {
		return false
	}
	c.applyRun(m)
	return true
}

func (c *ExecutionController) applyRun(msg ranMsg) {
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
		c.notify.failure("Could not run code", runMessage(msg.err), msg.err)
		return
	}
	c.result = newExecutionResult(msg.stage)
	phase = Succeeded
}

// runMessage prefers the server's message, then the error's own text.
func runMessage(err error) string {
	if _, message := remote.Classify(err); message != "" {
		return message
	}
	if text := err.Error(); text != "" {
		return text
	}
	return runFailure
}
