package runtime

import "errors"

// Sentinel errors for orchestration failures.
var (
	// ErrNoToolOutputs indicates the run paused for tool outputs but the
	// handler produced none. The remote run cannot proceed without output,
	// so this is a handler or configuration bug, not a transient fault.
	ErrNoToolOutputs = errors.New("runtime: run requires tool outputs but handler returned none")

	// ErrPollBudgetExceeded indicates the optional poll bound was hit before
	// the run reached a terminal status.
	ErrPollBudgetExceeded = errors.New("runtime: poll budget exceeded before run reached a terminal status")
)
