// Command aviary runs one interaction against a hosted agent defined in this
// repository. Choose an agent and provide the user input via --prompt or
// interactively on stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aviary-ai/aviary/config"
	"github.com/aviary-ai/aviary/internal/logging"
	"github.com/aviary-ai/aviary/runtime"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("aviary", flag.ContinueOnError)
	agentName := fs.String("agent", "", "agent to run: "+strings.Join(agentNames(), ", "))
	prompt := fs.String("prompt", "", "user message to send to the agent (prompted interactively if omitted)")
	fs.StringVar(prompt, "p", "", "shorthand for --prompt")
	instructions := fs.String("instructions", "", "optional run-scoped instructions to pass to the agent")
	fs.StringVar(instructions, "i", "", "shorthand for --instructions")
	autoDelete := fs.Bool("auto-delete", false, "delete the temporary agent after the run completes")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	runAgent, ok := agentRegistry[*agentName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown agent %q; available agents: %s\n", *agentName, strings.Join(agentNames(), ", "))
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	input := strings.TrimSpace(*prompt)
	if input == "" {
		input = strings.TrimSpace(promptForInput())
	}
	if input == "" {
		fmt.Println("No prompt provided; exiting.")
		return 1
	}

	result, err := runAgent(context.Background(), cfg, log, runParams{
		prompt:       input,
		instructions: *instructions,
		autoDelete:   *autoDelete,
	})
	if err != nil {
		log.Error().Err(err).Msg("agent run failed")
		return 1
	}

	runtime.WriteTranscript(os.Stdout, result)
	return 0
}

func promptForInput() string {
	fmt.Print("Enter your message for the agent: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return line
}

func agentNames() []string {
	names := make([]string, 0, len(agentRegistry))
	for name := range agentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
