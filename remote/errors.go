package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying a failed call with errors.Is.
var (
	// ErrNetwork indicates the request could not complete: connection
	// failures, timeouts, cancellation, or an unreadable reply.
	ErrNetwork = errors.New("network failure")

	// ErrRejected indicates the server answered with a non-success status.
	ErrRejected = errors.New("request rejected")
)

// Kind is the closed set of ways a remote call can fail.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is returned by every call made through a Requester.
type Error struct {
	// Op names the operation, e.g. "give access".
	Op string

	Kind Kind

	// Status is the HTTP status code for KindRejected, zero otherwise.
	Status int

	// Message is the server-provided message, if the reply carried one.
	Message string

	// RequestID is the X-Request-ID sent with the request.
	RequestID string

	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRejected && e.Message != "":
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Message)
	case e.Kind == KindRejected:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrRejected:
		return e.Kind == KindRejected
	}
	return false
}

// Classify reports the kind and server message of err. Errors that did not
// come from a Requester are treated as network failures.
func Classify(err error) (Kind, string) {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Kind, remoteErr.Message
	}
	return KindNetwork, ""
}
