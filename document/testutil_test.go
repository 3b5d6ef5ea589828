package document

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/bassamadnan/codeshare/codes"
	"github.com/bassamadnan/codeshare/piston"
	"github.com/bassamadnan/codeshare/remote"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

const testDocID = "doc-1"

// recorder is a Sink that keeps every notification.
type recorder struct {
	notes []Notification
}

func (r *recorder) Notify(n Notification) { r.notes = append(r.notes, n) }

func (r *recorder) last(t *testing.T) Notification {
	t.Helper()
	require.NotEmpty(t, r.notes, "expected a notification")
	return r.notes[len(r.notes)-1]
}

// fakeServer implements AccessService, CodeSaver and Runner. Errors are
// returned as configured; a cancelled context wins over everything.
type fakeServer struct {
	mu sync.Mutex

	code    codes.Code
	loadErr error

	grantErr  error
	revokeErr error
	saveErr   error

	stage  piston.Stage
	runErr error

	calls map[string]int
	saved []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{calls: make(map[string]int)}
}

func (f *fakeServer) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeServer) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeServer) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeServer) GetCode(ctx context.Context, id string) (codes.Code, error) {
	f.record("get")
	if err := ctx.Err(); err != nil {
		return codes.Code{}, err
	}
	return f.code, f.loadErr
}

func (f *fakeServer) GiveAccess(ctx context.Context, id, email string) error {
	f.record("give")
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.grantErr
}

func (f *fakeServer) TakeAccess(ctx context.Context, id, email string) error {
	f.record("take")
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.revokeErr
}

func (f *fakeServer) SaveCode(ctx context.Context, id, content string) error {
	f.record("save")
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.saveErr == nil {
		f.mu.Lock()
		f.saved = append(f.saved, content)
		f.mu.Unlock()
	}
	return f.saveErr
}

func (f *fakeServer) Execute(ctx context.Context, language, source string) (piston.Stage, error) {
	f.record("run")
	if err := ctx.Err(); err != nil {
		return piston.Stage{}, err
	}
	return f.stage, f.runErr
}

func rejected(op, message string) error {
	return &remote.Error{Op: op, Kind: remote.KindRejected, Status: http.StatusBadRequest, Message: message}
}

func testConfig(sink Sink) Config {
	return Config{DocumentID: testDocID, Sink: sink}
}

// resolve runs cmd synchronously and returns its message.
func resolve(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	return cmd()
}
