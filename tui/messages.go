package tui

// A message to indicate an error occurred, typically from a command.
type ErrorMsg struct{ Err error }

// Error makes it compatible with the error interface.
func (e ErrorMsg) Error() string { return e.Err.Error() }

// Message to drop a toast once its duration has elapsed.
type toastExpiredMsg struct{ id int }
