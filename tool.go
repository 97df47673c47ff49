package aviary

import "encoding/json"

// ToolType identifies the kind of a tool or tool call.
type ToolType string

const (
	// ToolTypeFunction is a function executed locally by the caller.
	ToolTypeFunction ToolType = "function"
	// ToolTypeCodeInterpreter is a sandbox executed by the remote platform.
	ToolTypeCodeInterpreter ToolType = "code_interpreter"
)

// FunctionDefinition describes a locally executed function to the remote
// agent: the name it is called by, what it does, and its parameter schema.
type FunctionDefinition struct {
	// Name is the unique identifier for the function.
	Name string `json:"name"`
	// Description explains what the function does (helps the remote agent
	// decide when to call it).
	Description string `json:"description,omitempty"`
	// Parameters is a JSON Schema object defining the function parameters.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// Tool is a descriptor attached to an agent at provisioning time.
type Tool struct {
	Type     ToolType            `json:"type"`
	Function *FunctionDefinition `json:"function,omitempty"`
}

// NewFunctionTool creates a function tool descriptor.
func NewFunctionTool(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: &FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// CodeInterpreterTool creates a descriptor for the platform-hosted code
// interpreter. It has no local handler; the platform executes it itself.
func CodeInterpreterTool() Tool {
	return Tool{Type: ToolTypeCodeInterpreter}
}

// FunctionCall holds the name and raw arguments of a requested function call.
type FunctionCall struct {
	Name string `json:"name"`
	// Arguments is a JSON string. It may be malformed; consumers decode it
	// fail-soft so the tool itself can report missing fields.
	Arguments string `json:"arguments"`
}

// ToolCall is a request emitted by a run asking the caller to execute a
// named local function. Only calls with type "function" are actionable.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     ToolType     `json:"type"`
	Function FunctionCall `json:"function"`
}

// ToolOutput is the result of a tool call, submitted back to resume the run.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// NewToolOutput creates a tool output paired with the originating call.
func NewToolOutput(callID, output string) ToolOutput {
	return ToolOutput{ToolCallID: callID, Output: output}
}
