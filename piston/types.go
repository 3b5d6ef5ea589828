package piston

// File is one source file sent for execution.
type File struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// ExecuteRequest is the body of POST /execute.
type ExecuteRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Files    []File `json:"files"`
}

// Stage is the outcome of one stage (compile or run) of an execution.
type Stage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	// Output interleaves stdout and stderr in the order they were written.
	Output string  `json:"output"`
	Code   *int    `json:"code"`
	Signal *string `json:"signal"`
}

// Failed reports whether the stage exited unsuccessfully.
func (s Stage) Failed() bool {
	return (s.Code != nil && *s.Code != 0) || (s.Signal != nil && *s.Signal != "")
}

// ExecuteResponse is the reply of POST /execute.
type ExecuteResponse struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Run      Stage  `json:"run"`
	Compile  *Stage `json:"compile,omitempty"`
}
