package document

import (
	"log"
	"time"
)

// Severity classifies a notification for presentation.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient, user-visible message that dismisses itself
// after Duration.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
	Duration    time.Duration
}

// Sink receives every notification the controllers emit.
//
// Contract:
// - Notify is called from the goroutine that drives the controllers.
// - Notify must not block.
type Sink interface {
	Notify(Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }

// notifier stamps the configured duration onto notifications and logs errors.
type notifier struct {
	sink     Sink
	duration time.Duration
}

func (n notifier) info(title, description string) {
	n.emit(Notification{Title: title, Description: description, Severity: SeverityInfo})
}

func (n notifier) success(title, description string) {
	n.emit(Notification{Title: title, Description: description, Severity: SeveritySuccess})
}

func (n notifier) failure(title, description string, err error) {
	log.Printf("Document: %s: %s: %v", title, description, err)
	n.emit(Notification{Title: title, Description: description, Severity: SeverityError})
}

func (n notifier) emit(note Notification) {
	if note.Duration == 0 {
		note.Duration = n.duration
	}
	n.sink.Notify(note)
}
