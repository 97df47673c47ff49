// Package aviary provides the shared types for driving runs against a hosted
// agent platform.
//
// The platform owns the agents, conversation threads, and run execution; this
// library drives the remote state machine from the client side. A run moves
// through queued and in_progress statuses, may pause in requires_action when
// the remote agent wants a locally executed tool, and ends in one of the
// terminal statuses (completed, failed, cancelled, expired).
//
// # Packages
//
//   - [github.com/aviary-ai/aviary/foundry]: HTTP client for the hosted
//     agents service (agents, threads, messages, runs, files)
//   - [github.com/aviary-ai/aviary/runtime]: run orchestration and local
//     tool-call dispatch
//   - [github.com/aviary-ai/aviary/tools/weather]: Weatherstack tool function
//   - [github.com/aviary-ai/aviary/tools/stocks]: Alpha Vantage tool function
//   - [github.com/aviary-ai/aviary/retry]: backoff for transient errors
//
// # Basic Usage
//
//	client, err := foundry.New(foundry.Config{
//	    Endpoint: os.Getenv("FOUNDRY_ENDPOINT"),
//	    APIKey:   os.Getenv("FOUNDRY_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	dispatcher := runtime.NewDispatcher(logger).
//	    MustRegister(weather.NewClient(weatherCfg).Registration())
//
//	runner := runtime.NewRunner(client, logger)
//	result, err := runner.Run(ctx, runtime.AgentConfig{
//	    Name:         "weather-assistant",
//	    Instructions: "You are a helpful weather assistant.",
//	    Tools:        dispatcher.Tools(),
//	    Model:        "gpt-4o",
//	}, "What's the weather like in Seattle today?",
//	    runtime.WithToolCallHandler(dispatcher.Handler()),
//	)
package aviary
