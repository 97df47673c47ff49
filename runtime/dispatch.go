package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	ai "github.com/aviary-ai/aviary"
)

// Handler executes one tool call and returns the output string shown to the
// remote agent. Tool functions absorb their own failures into descriptive
// strings; an error returned here is still captured as output rather than
// aborting the run, so the agent can recover conversationally.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// TypedHandler executes a tool call with arguments unmarshaled into T.
// A malformed argument string yields the zero value of T: the function
// validates its own required fields and reports them as missing in its
// return string.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// Registration pairs a tool descriptor with its handler.
type Registration struct {
	Tool    ai.Tool
	Handler Handler
}

// Func creates a Registration with the parameter schema generated from the
// typed handler's argument struct. Panics if schema generation fails.
//
// Example:
//
//	runtime.Func("get_weather", "Look up current conditions",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return lookup(ctx, args.Location), nil
//	    },
//	)
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	schema := ai.MustSchemaFor[T]()
	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			// Fail-soft: hand the function an empty argument set.
			var zero T
			args = zero
		}
		return fn(ctx, args)
	}
	return Registration{
		Tool:    ai.NewFunctionTool(name, description, schema),
		Handler: handler,
	}
}

// Dispatcher matches pending tool calls to registered local functions and
// packages their results as tool outputs. The name-to-handler mapping is
// built once at startup; Dispatch only reads it.
type Dispatcher struct {
	handlers map[string]Handler
	tools    []ai.Tool
	log      zerolog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register adds a tool with its handler. The tool must be a function tool
// with a name; duplicate names are rejected.
func (d *Dispatcher) Register(reg Registration) error {
	if reg.Tool.Type != ai.ToolTypeFunction || reg.Tool.Function == nil || reg.Tool.Function.Name == "" {
		return fmt.Errorf("runtime: registration requires a named function tool")
	}
	name := reg.Tool.Function.Name
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("runtime: tool already registered: %s", name)
	}
	d.handlers[name] = reg.Handler
	d.tools = append(d.tools, reg.Tool)
	return nil
}

// MustRegister is like Register but panics on error.
// Returns the dispatcher for fluent chaining.
func (d *Dispatcher) MustRegister(regs ...Registration) *Dispatcher {
	for _, reg := range regs {
		if err := d.Register(reg); err != nil {
			panic(err)
		}
	}
	return d
}

// Tools returns the registered tool descriptors in registration order.
// Pass these to the agent configuration.
func (d *Dispatcher) Tools() []ai.Tool {
	tools := make([]ai.Tool, len(d.tools))
	copy(tools, d.tools)
	return tools
}

// Len returns the number of registered tools.
func (d *Dispatcher) Len() int {
	return len(d.handlers)
}

// Dispatch decodes the pending tool calls, invokes the matching functions,
// and returns their outputs paired with the originating call ids.
//
// Calls whose type is not "function" and function calls with no registered
// handler are skipped with a log line rather than failing the run: a run may
// request several tools while only some are implemented locally.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []ai.ToolCall) []ai.ToolOutput {
	outputs := make([]ai.ToolOutput, 0, len(calls))

	for _, call := range calls {
		if call.Type != ai.ToolTypeFunction {
			d.log.Warn().Str("call_id", call.ID).Str("type", string(call.Type)).
				Msg("skipping unsupported tool call type")
			continue
		}

		handler, ok := d.handlers[call.Function.Name]
		if !ok {
			d.log.Warn().Str("call_id", call.ID).Str("function", call.Function.Name).
				Msg("skipping unknown function")
			continue
		}

		if args := call.Function.Arguments; args != "" && !json.Valid([]byte(args)) {
			d.log.Debug().Str("call_id", call.ID).Str("function", call.Function.Name).
				Msg("malformed tool arguments, dispatching with empty argument set")
		}

		output, err := handler(ctx, call)
		if err != nil {
			// Surface the failure to the remote agent instead of aborting.
			output = err.Error()
		}
		outputs = append(outputs, ai.NewToolOutput(call.ID, output))
	}

	return outputs
}

// Handler adapts the dispatcher to the orchestrator's ToolCallHandler.
func (d *Dispatcher) Handler() ToolCallHandler {
	return func(ctx context.Context, _ API, calls []ai.ToolCall) ([]ai.ToolOutput, error) {
		return d.Dispatch(ctx, calls), nil
	}
}
