package document

import (
	"context"
	"time"
)

// Phase is the lifecycle of a run or save request.
//
//	Idle -> Running -> Succeeded | Failed
//
// Succeeded and Failed are idle states that remember how the last call ended.
type Phase int

const (
	Idle Phase = iota
	Running
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Loading reports whether a request is in flight.
func (p Phase) Loading() bool { return p == Running }

// slot is a single-slot task handle. Starting a new task cancels the previous
// one, and only the result tagged with the current generation is applied.
type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// start cancels any in-flight task and returns the context and generation
// for a new one.
func (s *slot) start(parent context.Context, timeout time.Duration) (context.Context, uint64) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	s.gen++
	s.cancel = cancel
	return ctx, s.gen
}

// current reports whether gen belongs to the latest task.
func (s *slot) current(gen uint64) bool {
	return gen == s.gen
}

// finish releases the task's context if gen is still the latest task.
func (s *slot) finish(gen uint64) {
	if gen != s.gen || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// busy reports whether a task is in flight.
func (s *slot) busy() bool {
	return s.cancel != nil
}
