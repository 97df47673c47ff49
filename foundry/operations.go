package foundry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	ai "github.com/aviary-ai/aviary"
)

type createAgentRequest struct {
	Model        string    `json:"model"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	Tools        []ai.Tool `json:"tools"`
}

// CreateAgent provisions a remote agent.
// tools may be empty; the slice order is preserved on the wire.
func (c *Client) CreateAgent(ctx context.Context, model, name, instructions string, tools []ai.Tool) (*ai.Agent, error) {
	if tools == nil {
		tools = []ai.Tool{}
	}
	var agent ai.Agent
	err := c.do(ctx, http.MethodPost, "/agents", createAgentRequest{
		Model:        model,
		Name:         name,
		Instructions: instructions,
		Tools:        tools,
	}, &agent)
	if err != nil {
		return nil, err
	}
	if agent.ID == "" {
		return nil, ai.NewPermanentError("foundry: create agent response missing id", 0, nil)
	}
	return &agent, nil
}

// DeleteAgent removes a remote agent.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodDelete, "/agents/"+url.PathEscape(agentID), nil, nil)
}

// CreateThread opens a new conversation thread.
func (c *Client) CreateThread(ctx context.Context) (*ai.Thread, error) {
	var thread ai.Thread
	if err := c.do(ctx, http.MethodPost, "/threads", struct{}{}, &thread); err != nil {
		return nil, err
	}
	if thread.ID == "" {
		return nil, ai.NewPermanentError("foundry: create thread response missing id", 0, nil)
	}
	return &thread, nil
}

type createMessageRequest struct {
	Role    ai.Role `json:"role"`
	Content string  `json:"content"`
}

// CreateMessage appends a message to a thread.
func (c *Client) CreateMessage(ctx context.Context, threadID string, role ai.Role, content string) (*ai.ThreadMessage, error) {
	var msg ai.ThreadMessage
	path := fmt.Sprintf("/threads/%s/messages", url.PathEscape(threadID))
	if err := c.do(ctx, http.MethodPost, path, createMessageRequest{Role: role, Content: content}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

type createRunRequest struct {
	AgentID                string `json:"agent_id"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

// CreateRun starts a run in interactive mode. The caller is responsible for
// polling the run and submitting tool outputs until it reaches a terminal
// status.
func (c *Client) CreateRun(ctx context.Context, threadID, agentID, additionalInstructions string) (*ai.Run, error) {
	var run ai.Run
	path := fmt.Sprintf("/threads/%s/runs", url.PathEscape(threadID))
	err := c.do(ctx, http.MethodPost, path, createRunRequest{
		AgentID:                agentID,
		AdditionalInstructions: additionalInstructions,
	}, &run)
	if err != nil {
		return nil, err
	}
	return c.validateRun(&run, threadID)
}

// CreateAndProcessRun starts a run and waits for it to reach a terminal
// status without any local intervention. No tool calls are possible on this
// path: a run that pauses in requires_action has nobody to feed it, which is
// reported as a permanent error rather than polled forever.
func (c *Client) CreateAndProcessRun(ctx context.Context, threadID, agentID, additionalInstructions string) (*ai.Run, error) {
	run, err := c.CreateRun(ctx, threadID, agentID, additionalInstructions)
	if err != nil {
		return nil, err
	}

	for !run.Status.IsTerminal() {
		if run.Status == ai.RunStatusRequiresAction {
			return nil, ai.NewPermanentError(
				fmt.Sprintf("foundry: run %s requires tool outputs but no handler is attached", run.ID), 0, nil)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		run, err = c.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return nil, err
		}
	}

	return run, nil
}

// GetRun fetches the current snapshot of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*ai.Run, error) {
	var run ai.Run
	path := fmt.Sprintf("/threads/%s/runs/%s", url.PathEscape(threadID), url.PathEscape(runID))
	if err := c.doGet(ctx, path, &run); err != nil {
		return nil, err
	}
	return c.validateRun(&run, threadID)
}

type submitToolOutputsRequest struct {
	ToolOutputs []ai.ToolOutput `json:"tool_outputs"`
}

// SubmitToolOutputs feeds tool results back so a paused run can continue.
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ai.ToolOutput) (*ai.Run, error) {
	if len(outputs) == 0 {
		return nil, ai.NewUserInputError("foundry: submit requires at least one tool output", 0, nil)
	}
	var run ai.Run
	path := fmt.Sprintf("/threads/%s/runs/%s/submit_tool_outputs", url.PathEscape(threadID), url.PathEscape(runID))
	if err := c.do(ctx, http.MethodPost, path, submitToolOutputsRequest{ToolOutputs: outputs}, &run); err != nil {
		return nil, err
	}
	return c.validateRun(&run, threadID)
}

type listMessagesResponse struct {
	Data []ai.ThreadMessage `json:"data"`
}

// ListMessages returns the thread's messages in service order.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]ai.ThreadMessage, error) {
	var resp listMessagesResponse
	path := fmt.Sprintf("/threads/%s/messages", url.PathEscape(threadID))
	if err := c.doGet(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SaveFile downloads a generated file and writes it to the given path,
// creating parent directories as needed.
func (c *Client) SaveFile(ctx context.Context, fileID, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/files/%s/content", c.base.String(), url.PathEscape(fileID)), nil)
	if err != nil {
		return ai.NewPermanentError("foundry: build file request", 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return ai.NewTransientError(fmt.Sprintf("foundry: fetch file %s", fileID), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(http.MethodGet, "/files/"+fileID+"/content", resp.StatusCode, nil)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ai.NewPermanentError(fmt.Sprintf("foundry: create directory for %s", path), 0, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return ai.NewPermanentError(fmt.Sprintf("foundry: create %s", path), 0, err)
	}
	defer f.Close()

	if _, err := f.ReadFrom(resp.Body); err != nil {
		return ai.NewTransientError(fmt.Sprintf("foundry: write file %s", fileID), 0, err)
	}
	return nil
}

// validateRun checks the invariants every run snapshot must satisfy.
// The thread id is filled in from the request when the service omits it.
func (c *Client) validateRun(run *ai.Run, threadID string) (*ai.Run, error) {
	if run.ID == "" {
		return nil, ai.NewPermanentError("foundry: run response missing id", 0, nil)
	}
	if run.Status == "" {
		return nil, ai.NewPermanentError(fmt.Sprintf("foundry: run %s response missing status", run.ID), 0, nil)
	}
	if run.ThreadID == "" {
		run.ThreadID = threadID
	}
	return run, nil
}
