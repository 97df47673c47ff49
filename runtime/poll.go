package runtime

import (
	"context"
	"fmt"

	ai "github.com/aviary-ai/aviary"
)

// pollRun drives a run started in interactive mode until it reaches a
// terminal status.
//
// Each iteration fetches the current snapshot and acts on its status:
//
//   - terminal: return the snapshot. Failure statuses are reported upward,
//     not re-driven.
//   - requires_action: hand the pending tool calls to the handler, submit
//     the outputs, and re-poll immediately; the new state is unknown until
//     fetched.
//   - queued, in_progress, or anything unrecognized: wait one poll interval
//     and re-check. Unknown statuses are treated as in-flight to tolerate
//     protocol additions.
//
// This is a fixed-interval busy poll; the service offers no push mechanism.
func (r *Runner) pollRun(ctx context.Context, threadID, runID string, options *Options) (*ai.Run, error) {
	polls := 0

	for {
		if options.MaxPolls > 0 && polls >= options.MaxPolls {
			return nil, fmt.Errorf("%w (run %s after %d polls)", ErrPollBudgetExceeded, runID, polls)
		}

		run, err := r.api.GetRun(ctx, threadID, runID)
		if err != nil {
			return nil, err
		}
		polls++

		switch {
		case run.Status.IsTerminal():
			if run.Status != ai.RunStatusCompleted {
				ev := r.log.Warn().Str("run_id", runID).Str("status", string(run.Status))
				if run.LastError != nil {
					ev = ev.Str("code", run.LastError.Code).Str("error", run.LastError.Message)
				}
				ev.Msg("run ended without completing")
			}
			return run, nil

		case run.Status == ai.RunStatusRequiresAction:
			calls := run.PendingToolCalls()
			outputs, err := options.Handler(ctx, r.api, calls)
			if err != nil {
				return nil, fmt.Errorf("runtime: tool call handler: %w", err)
			}
			if len(outputs) == 0 {
				return nil, ErrNoToolOutputs
			}
			if _, err := r.api.SubmitToolOutputs(ctx, threadID, runID, outputs); err != nil {
				return nil, err
			}

		default:
			if !run.Status.IsPolling() {
				r.log.Debug().Str("run_id", runID).Str("status", string(run.Status)).
					Msg("unknown run status, waiting")
			}
			if err := r.sleep(ctx, options.PollInterval); err != nil {
				return nil, err
			}
		}
	}
}
