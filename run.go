package aviary

// Agent is a remotely hosted agent configuration.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Thread is a remote conversation session associated with an agent.
type Thread struct {
	ID string `json:"id"`
}

// RunStatus is the state of a remote run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// IsTerminal returns true if the run has finished, successfully or not.
// A failed run is reported, not re-driven.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// IsPolling returns true if the run is still progressing remotely and the
// caller should wait and re-check.
func (s RunStatus) IsPolling() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}

// RunError describes why a run ended in a failed status.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitToolOutputsAction lists the tool calls the run is waiting on.
type SubmitToolOutputsAction struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// RequiredAction is present on a run snapshot while the run status is
// requires_action.
type RequiredAction struct {
	Type              string                   `json:"type"`
	SubmitToolOutputs *SubmitToolOutputsAction `json:"submit_tool_outputs,omitempty"`
}

// Run is a point-in-time snapshot of a remote run.
type Run struct {
	ID             string          `json:"id"`
	ThreadID       string          `json:"thread_id"`
	AgentID        string          `json:"agent_id"`
	Status         RunStatus       `json:"status"`
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	LastError      *RunError       `json:"last_error,omitempty"`
}

// PendingToolCalls returns the tool calls the run is waiting on, or nil if
// the snapshot carries no required action.
func (r *Run) PendingToolCalls() []ToolCall {
	if r == nil || r.RequiredAction == nil || r.RequiredAction.SubmitToolOutputs == nil {
		return nil
	}
	return r.RequiredAction.SubmitToolOutputs.ToolCalls
}
