// Package runtime orchestrates a single interaction against the hosted
// agents service: provision an agent and thread, post the user message,
// start a run, and drive the run's status state machine to completion.
//
// A run moves through queued and in_progress (wait and re-check), may pause
// in requires_action (the remote agent wants a locally executed tool), and
// ends in one of completed, failed, cancelled, or expired. When a tool call
// handler is attached, the [Runner] polls the run at a fixed interval and
// dispatches pending tool calls to local functions through a [Dispatcher];
// without a handler it delegates to the service's auto-processing path.
//
// Each invocation is a single logical thread of control with no shared
// mutable state; concurrent interactions are independent invocations, each
// against its own remote agent and thread.
package runtime
