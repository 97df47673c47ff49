package runtime

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	ai "github.com/aviary-ai/aviary"
	"github.com/aviary-ai/aviary/foundry"
)

// API is the project client capability set the orchestrator depends on.
// *foundry.Client implements it; tests substitute hand-rolled fakes.
type API interface {
	CreateAgent(ctx context.Context, model, name, instructions string, tools []ai.Tool) (*ai.Agent, error)
	CreateThread(ctx context.Context) (*ai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, role ai.Role, content string) (*ai.ThreadMessage, error)
	CreateRun(ctx context.Context, threadID, agentID, additionalInstructions string) (*ai.Run, error)
	CreateAndProcessRun(ctx context.Context, threadID, agentID, additionalInstructions string) (*ai.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (*ai.Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ai.ToolOutput) (*ai.Run, error)
	ListMessages(ctx context.Context, threadID string) ([]ai.ThreadMessage, error)
	DeleteAgent(ctx context.Context, agentID string) error
	SaveFile(ctx context.Context, fileID, path string) error
}

// AgentConfig is a declarative definition for provisioning a remote agent.
// It is constructed per run and not mutated afterwards.
type AgentConfig struct {
	// Name identifies the agent in the service and in transcripts.
	Name string
	// Instructions is the agent's system prompt.
	Instructions string
	// Tools are the descriptors attached at provisioning time. May be empty.
	Tools []ai.Tool
	// Model is the model deployment the agent runs on.
	Model string
}

// RunResult collects the important objects from one orchestrated run.
// It is owned by the caller after return.
type RunResult struct {
	AgentID   string
	AgentName string
	ThreadID  string
	RunID     string
	Status    ai.RunStatus
	Messages  []ai.ThreadMessage
}

// ToolCallHandler is invoked whenever the run status is requires_action.
// It receives the pending tool calls and must return at least one output;
// an empty result set aborts the run with ErrNoToolOutputs.
type ToolCallHandler func(ctx context.Context, api API, calls []ai.ToolCall) ([]ai.ToolOutput, error)

// PostRunHook is invoked after the run reaches a terminal status, while the
// session is still open. Useful for side effects that need the client, such
// as persisting generated files.
type PostRunHook func(ctx context.Context, api API, result *RunResult) error

// Runner orchestrates interactions against a project client.
type Runner struct {
	api API
	log zerolog.Logger

	// sleep is replaceable in tests to observe poll waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRunner creates a Runner on top of the given project client.
func NewRunner(api API, log zerolog.Logger) *Runner {
	return &Runner{
		api:   api,
		log:   log,
		sleep: sleepContext,
	}
}

// Run provisions a remote agent and thread, posts userInput as the first
// user turn, drives the run to a terminal status, and returns the collected
// result.
//
// Without a tool call handler the run is started on the service's
// auto-processing path and no local dispatch happens. With a handler the run
// is started in interactive mode and polled until it terminates, dispatching
// pending tool calls along the way.
//
// Provisioning and API failures propagate to the caller without retry at
// this layer: the service is idempotent only at the create granularity, so a
// blind retry risks duplicate agents and threads.
func (r *Runner) Run(ctx context.Context, cfg AgentConfig, userInput string, opts ...Option) (*RunResult, error) {
	if userInput == "" {
		return nil, ai.ErrEmptyUserInput
	}

	options := ApplyOptions(opts...)

	agent, err := r.api.CreateAgent(ctx, cfg.Model, cfg.Name, cfg.Instructions, cfg.Tools)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("agent_id", agent.ID).Str("agent_name", agent.Name).Msg("created agent")

	thread, err := r.api.CreateThread(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("thread_id", thread.ID).Msg("created thread")

	if _, err := r.api.CreateMessage(ctx, thread.ID, ai.RoleUser, userInput); err != nil {
		return nil, err
	}

	var run *ai.Run
	if options.Handler != nil {
		run, err = r.api.CreateRun(ctx, thread.ID, agent.ID, options.AdditionalInstructions)
		if err == nil {
			run, err = r.pollRun(ctx, thread.ID, run.ID, options)
		}
	} else {
		run, err = r.api.CreateAndProcessRun(ctx, thread.ID, agent.ID, options.AdditionalInstructions)
	}
	if err != nil {
		return nil, err
	}

	messages, err := r.api.ListMessages(ctx, thread.ID)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		AgentID:   agent.ID,
		AgentName: agent.Name,
		ThreadID:  thread.ID,
		RunID:     run.ID,
		Status:    run.Status,
		Messages:  messages,
	}

	if options.PostRunHook != nil {
		if err := options.PostRunHook(ctx, r.api, result); err != nil {
			return nil, err
		}
	}

	if options.AutoDeleteAgent {
		if err := r.api.DeleteAgent(ctx, agent.ID); err != nil {
			return nil, err
		}
		r.log.Debug().Str("agent_id", agent.ID).Msg("deleted agent")
	}

	return result, nil
}

// Interact opens a project client from clientCfg, runs one interaction, and
// guarantees the client is closed on every exit path.
func Interact(ctx context.Context, clientCfg foundry.Config, agentCfg AgentConfig, userInput string, opts ...Option) (*RunResult, error) {
	client, err := foundry.New(clientCfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	log := zerolog.Nop()
	if clientCfg.Logger != nil {
		log = *clientCfg.Logger
	}

	return NewRunner(client, log).Run(ctx, agentCfg, userInput, opts...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
