// Package document holds the client-side state of one shared code document:
// who it is shared with, the output of the last run, and whether a save is
// in progress.
//
// Controllers never block. Each operation returns a tea.Cmd that performs
// the remote call, and the resulting message must be passed back to Handle
// on the goroutine that owns the controller. Local state changes only there,
// and only after the remote side confirmed the action.
package document
