package main

import (
	"context"

	"github.com/rs/zerolog"

	ai "github.com/aviary-ai/aviary"
	"github.com/aviary-ai/aviary/config"
	"github.com/aviary-ai/aviary/foundry"
	"github.com/aviary-ai/aviary/runtime"
	"github.com/aviary-ai/aviary/tools/stocks"
	"github.com/aviary-ai/aviary/tools/weather"
)

// runParams carries the per-invocation CLI arguments to an agent runner.
type runParams struct {
	prompt       string
	instructions string
	autoDelete   bool
}

type agentRunner func(ctx context.Context, cfg *config.Config, log zerolog.Logger, p runParams) (*runtime.RunResult, error)

var agentRegistry = map[string]agentRunner{
	"weather": runWeatherAgent,
	"stocks":  runStocksAgent,
	"charts":  runChartsAgent,
}

func clientConfig(cfg *config.Config, log zerolog.Logger) foundry.Config {
	return foundry.Config{
		Endpoint:     cfg.Endpoint,
		APIKey:       cfg.APIKey,
		Timeout:      cfg.RequestTimeout,
		PollInterval: cfg.PollInterval,
		Logger:       &log,
	}
}

func baseOptions(cfg *config.Config, p runParams, defaultInstructions string) []runtime.Option {
	instructions := p.instructions
	if instructions == "" {
		instructions = defaultInstructions
	}
	opts := []runtime.Option{
		runtime.WithAdditionalInstructions(instructions),
		runtime.WithPollInterval(cfg.PollInterval),
	}
	if p.autoDelete {
		opts = append(opts, runtime.WithAutoDeleteAgent())
	}
	return opts
}

// runWeatherAgent answers weather questions with live Weatherstack data.
func runWeatherAgent(ctx context.Context, cfg *config.Config, log zerolog.Logger, p runParams) (*runtime.RunResult, error) {
	weatherCfg, err := weather.LoadConfig()
	if err != nil {
		return nil, err
	}

	dispatcher := runtime.NewDispatcher(log).
		MustRegister(weather.NewClient(weatherCfg).Registration())

	agentCfg := runtime.AgentConfig{
		Name: "weather-assistant",
		Instructions: "You are a helpful weather assistant. Call the get_weatherstack_weather tool " +
			"to provide real-time conditions from the Weatherstack API. Mention when " +
			"historical dates are unavailable and clarify any assumptions you make.",
		Tools: dispatcher.Tools(),
		Model: cfg.ModelDeployment,
	}

	opts := append(baseOptions(cfg, p,
		"If no date is given, assume the request is for today and echo that assumption."),
		runtime.WithToolCallHandler(dispatcher.Handler()),
	)
	return runtime.Interact(ctx, clientConfig(cfg, log), agentCfg, p.prompt, opts...)
}

// runStocksAgent answers stock quote questions with Alpha Vantage data.
func runStocksAgent(ctx context.Context, cfg *config.Config, log zerolog.Logger, p runParams) (*runtime.RunResult, error) {
	stocksCfg, err := stocks.LoadConfig()
	if err != nil {
		return nil, err
	}

	dispatcher := runtime.NewDispatcher(log).
		MustRegister(stocks.NewClient(stocksCfg).Registration())

	agentCfg := runtime.AgentConfig{
		Name: "stock-market-assistant",
		Instructions: "You are a helpful stock market assistant. Call fetch_intraday_stock_price whenever the user " +
			"asks for a current or very recent stock quote. Mention that prices come from Alpha Vantage and " +
			"may be delayed. If the user supplies only a company name, pass it with the company parameter.",
		Tools: dispatcher.Tools(),
		Model: cfg.ModelDeployment,
	}

	opts := append(baseOptions(cfg, p,
		"Ask the user for the ticker if you cannot infer it. Use 5min interval when unsure."),
		runtime.WithToolCallHandler(dispatcher.Handler()),
	)
	return runtime.Interact(ctx, clientConfig(cfg, log), agentCfg, p.prompt, opts...)
}

// imageOutputDir is where the charts agent persists generated plots.
const imageOutputDir = "tmp/images"

// runChartsAgent helps with math questions and uses the platform-hosted code
// interpreter to draw graphs. The interpreter runs remotely, so this agent
// has no local tool handler and uses the auto-processing path; generated
// images are saved to disk by a post-run hook while the session is open.
func runChartsAgent(ctx context.Context, cfg *config.Config, log zerolog.Logger, p runParams) (*runtime.RunResult, error) {
	agentCfg := runtime.AgentConfig{
		Name: "math-agent-v1",
		Instructions: "You politely help with math questions. Use the Code Interpreter tool " +
			"when asked to visualize numbers.",
		Tools: []ai.Tool{ai.CodeInterpreterTool()},
		Model: cfg.ModelDeployment,
	}

	opts := append(baseOptions(cfg, p,
		"Please address the user as Jane Doe. The user has a premium account."),
		runtime.WithPostRunHook(runtime.SaveImageFiles(imageOutputDir, log)),
	)
	return runtime.Interact(ctx, clientConfig(cfg, log), agentCfg, p.prompt, opts...)
}
