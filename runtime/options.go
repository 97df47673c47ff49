package runtime

import "time"

// Options contains configuration for one orchestrated interaction.
type Options struct {
	// Handler is invoked whenever the run pauses in requires_action.
	// If nil, the run is started on the auto-processing path and no tool
	// calls are possible.
	Handler ToolCallHandler

	// AdditionalInstructions are run-scoped instructions appended to the
	// agent's own, mirroring the service parameter.
	AdditionalInstructions string

	// PollInterval is the fixed delay between status checks while the run is
	// queued or in progress. Default is 1 second.
	PollInterval time.Duration

	// PostRunHook runs after the terminal status, before the session closes.
	PostRunHook PostRunHook

	// AutoDeleteAgent deletes the temporary agent after the run completes.
	AutoDeleteAgent bool

	// MaxPolls bounds the number of status fetches. 0 means unbounded: a run
	// that never leaves a polling state blocks indefinitely.
	MaxPolls int
}

// Option is a functional option for configuring an interaction.
type Option func(*Options)

// WithToolCallHandler attaches the handler invoked on requires_action.
func WithToolCallHandler(h ToolCallHandler) Option {
	return func(o *Options) {
		o.Handler = h
	}
}

// WithAdditionalInstructions sets run-scoped instructions.
func WithAdditionalInstructions(instructions string) Option {
	return func(o *Options) {
		o.AdditionalInstructions = instructions
	}
}

// WithPollInterval sets the delay between status checks. Default is 1 second.
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) {
		o.PollInterval = d
	}
}

// WithPostRunHook sets a callback invoked before the session closes.
func WithPostRunHook(h PostRunHook) Option {
	return func(o *Options) {
		o.PostRunHook = h
	}
}

// WithAutoDeleteAgent deletes the temporary agent after the run completes.
func WithAutoDeleteAgent() Option {
	return func(o *Options) {
		o.AutoDeleteAgent = true
	}
}

// WithMaxPolls bounds the number of status fetches per run.
// The default of 0 keeps the historical unbounded behavior.
func WithMaxPolls(n int) Option {
	return func(o *Options) {
		o.MaxPolls = n
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		PollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
