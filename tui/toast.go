package tui

import (
	"github.com/bassamadnan/codeshare/document"
	tea "github.com/charmbracelet/bubbletea"
)

type toast struct {
	id int
	document.Notification
}

// toastQueue collects notifications from the document controllers. The
// newest toast is shown in the status bar until it expires.
type toastQueue struct {
	nextID int
	items  []toast
	fresh  []toast
}

func newToastQueue() *toastQueue {
	return &toastQueue{}
}

// Notify implements document.Sink.
func (q *toastQueue) Notify(n document.Notification) {
	q.nextID++
	t := toast{id: q.nextID, Notification: n}
	q.items = append(q.items, t)
	q.fresh = append(q.fresh, t)
}

// drain returns one expiry timer per toast added since the last call.
func (q *toastQueue) drain() []tea.Cmd {
	if len(q.fresh) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.fresh))
	for _, t := range q.fresh {
		cmds = append(cmds, expireToastCmd(t.id, t.Duration))
	}
	q.fresh = q.fresh[:0]
	return cmds
}

func (q *toastQueue) expire(id int) {
	for i, t := range q.items {
		if t.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// current returns the newest toast still on screen.
func (q *toastQueue) current() (toast, bool) {
	if len(q.items) == 0 {
		return toast{}, false
	}
	return q.items[len(q.items)-1], true
}
