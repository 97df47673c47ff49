package runtime

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/aviary-ai/aviary"
)

// fakeAPI is a scripted project client for orchestrator tests.
type fakeAPI struct {
	agent        *ai.Agent
	thread       *ai.Thread
	snapshots    []*ai.Run // consumed by GetRun in order; last entry repeats
	processedRun *ai.Run
	messages     []ai.ThreadMessage

	createAgentErr error

	createAgentCalls   int
	createThreadCalls  int
	createMessageCalls int
	createRunCalls     int
	autoProcessCalls   int
	getRunCalls        int
	submitCalls        int
	listMessagesCalls  int
	deletedAgents      []string
	savedFiles         map[string]string
	submitted          [][]ai.ToolOutput
	postedContent      []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		agent:        &ai.Agent{ID: "agent-123", Name: "test-agent"},
		thread:       &ai.Thread{ID: "thread-456"},
		processedRun: &ai.Run{ID: "run-789", ThreadID: "thread-456", Status: ai.RunStatusCompleted},
		messages: []ai.ThreadMessage{
			ai.NewTextMessage(ai.RoleAssistant, "All done"),
		},
		savedFiles: map[string]string{},
	}
}

func (f *fakeAPI) CreateAgent(ctx context.Context, model, name, instructions string, tools []ai.Tool) (*ai.Agent, error) {
	f.createAgentCalls++
	if f.createAgentErr != nil {
		return nil, f.createAgentErr
	}
	return f.agent, nil
}

func (f *fakeAPI) CreateThread(ctx context.Context) (*ai.Thread, error) {
	f.createThreadCalls++
	return f.thread, nil
}

func (f *fakeAPI) CreateMessage(ctx context.Context, threadID string, role ai.Role, content string) (*ai.ThreadMessage, error) {
	f.createMessageCalls++
	f.postedContent = append(f.postedContent, content)
	msg := ai.NewTextMessage(role, content)
	return &msg, nil
}

func (f *fakeAPI) CreateRun(ctx context.Context, threadID, agentID, additionalInstructions string) (*ai.Run, error) {
	f.createRunCalls++
	return &ai.Run{ID: "run-tool", ThreadID: threadID, AgentID: agentID, Status: ai.RunStatusQueued}, nil
}

func (f *fakeAPI) CreateAndProcessRun(ctx context.Context, threadID, agentID, additionalInstructions string) (*ai.Run, error) {
	f.autoProcessCalls++
	return f.processedRun, nil
}

func (f *fakeAPI) GetRun(ctx context.Context, threadID, runID string) (*ai.Run, error) {
	idx := f.getRunCalls
	f.getRunCalls++
	if idx >= len(f.snapshots) {
		idx = len(f.snapshots) - 1
	}
	return f.snapshots[idx], nil
}

func (f *fakeAPI) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ai.ToolOutput) (*ai.Run, error) {
	f.submitCalls++
	f.submitted = append(f.submitted, outputs)
	return &ai.Run{ID: runID, ThreadID: threadID, Status: ai.RunStatusQueued}, nil
}

func (f *fakeAPI) ListMessages(ctx context.Context, threadID string) ([]ai.ThreadMessage, error) {
	f.listMessagesCalls++
	return f.messages, nil
}

func (f *fakeAPI) DeleteAgent(ctx context.Context, agentID string) error {
	f.deletedAgents = append(f.deletedAgents, agentID)
	return nil
}

func (f *fakeAPI) SaveFile(ctx context.Context, fileID, path string) error {
	f.savedFiles[fileID] = path
	return nil
}

func newTestRunner(api API) *Runner {
	return NewRunner(api, zerolog.Nop())
}

func TestRunRejectsEmptyInput(t *testing.T) {
	api := newFakeAPI()
	_, err := newTestRunner(api).Run(context.Background(), AgentConfig{Name: "test-agent"}, "")

	assert.True(t, ai.IsUserInput(err))
	// Rejected before any provisioning call
	assert.Equal(t, 0, api.createAgentCalls)
	assert.Equal(t, 0, api.createThreadCalls)
}

func TestRunAcceptsWhitespaceInput(t *testing.T) {
	// Only the empty string is rejected. Anything else, including
	// whitespace, is posted as-is; trimming is the CLI's concern.
	api := newFakeAPI()
	result, err := newTestRunner(api).Run(context.Background(), AgentConfig{Name: "test-agent"}, "   ")
	require.NoError(t, err)

	assert.Equal(t, 1, api.autoProcessCalls)
	assert.Equal(t, []string{"   "}, api.postedContent)
	assert.Equal(t, ai.RunStatusCompleted, result.Status)
}

func TestRunWithoutHandlerUsesAutoProcessing(t *testing.T) {
	api := newFakeAPI()
	runner := newTestRunner(api)

	result, err := runner.Run(context.Background(), AgentConfig{Name: "test-agent", Model: "test-model"}, "Hello")
	require.NoError(t, err)

	assert.Equal(t, 1, api.autoProcessCalls)
	assert.Equal(t, 0, api.createRunCalls)
	assert.Equal(t, 0, api.getRunCalls)
	assert.Equal(t, 0, api.submitCalls)

	assert.Equal(t, "agent-123", result.AgentID)
	assert.Equal(t, "test-agent", result.AgentName)
	assert.Equal(t, "thread-456", result.ThreadID)
	assert.Equal(t, "run-789", result.RunID)
	assert.Equal(t, ai.RunStatusCompleted, result.Status)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "All done", result.Messages[0].Text())

	assert.Equal(t, []string{"Hello"}, api.postedContent)
	assert.Empty(t, api.deletedAgents)
}

func TestRunPostRunHookAndAutoDelete(t *testing.T) {
	api := newFakeAPI()
	runner := newTestRunner(api)

	hookCalled := false
	hook := func(ctx context.Context, hookAPI API, result *RunResult) error {
		hookCalled = true
		// Hook runs while the session is still usable and before deletion.
		assert.Empty(t, api.deletedAgents)
		return hookAPI.SaveFile(ctx, "file-1", "tmp/images/file-1_image_file.png")
	}

	result, err := runner.Run(context.Background(), AgentConfig{Name: "test-agent"}, "Hello",
		WithPostRunHook(hook),
		WithAutoDeleteAgent(),
	)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, hookCalled)
	assert.Equal(t, "tmp/images/file-1_image_file.png", api.savedFiles["file-1"])
	assert.Equal(t, []string{"agent-123"}, api.deletedAgents)
}

func TestRunPropagatesProvisioningFailure(t *testing.T) {
	api := newFakeAPI()
	api.createAgentErr = ai.NewPermanentError("quota exceeded", 403, nil)

	_, err := newTestRunner(api).Run(context.Background(), AgentConfig{Name: "test-agent"}, "Hello")
	assert.True(t, ai.IsPermanent(err))
	// No retry at this layer: exactly one provisioning attempt.
	assert.Equal(t, 1, api.createAgentCalls)
}

func TestRunWithHandlerUsesInteractiveRun(t *testing.T) {
	api := newFakeAPI()
	api.snapshots = []*ai.Run{
		{ID: "run-tool", ThreadID: "thread-456", Status: ai.RunStatusCompleted},
	}
	runner := newTestRunner(api)

	handler := func(ctx context.Context, hAPI API, calls []ai.ToolCall) ([]ai.ToolOutput, error) {
		t.Fatal("handler must not be called for a run that completes immediately")
		return nil, nil
	}

	result, err := runner.Run(context.Background(), AgentConfig{Name: "test-agent"}, "Hello",
		WithToolCallHandler(handler),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, api.createRunCalls)
	assert.Equal(t, 0, api.autoProcessCalls)
	assert.Equal(t, "run-tool", result.RunID)
}
