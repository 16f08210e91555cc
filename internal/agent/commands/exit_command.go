package commands

import (
	"context"
	"fmt"
)

// ExitCommand terminates the REPL.
type ExitCommand struct {
	*BaseCommand
}

// NewExitCommand creates a new exit command
func NewExitCommand(client ClientInterface, output OutputLogger, transport TransportInterface) *ExitCommand {
	return &ExitCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
	}
}

// Execute signals the REPL loop to stop.
func (e *ExitCommand) Execute(ctx context.Context, args []string) error {
	return fmt.Errorf("exit")
}

// Usage returns the usage string
func (e *ExitCommand) Usage() string {
	return "exit"
}

// Description returns the command description
func (e *ExitCommand) Description() string {
	return "Exit the agent"
}

// Completions returns possible completions
func (e *ExitCommand) Completions(input string) []string {
	return nil
}

// Aliases returns command aliases
func (e *ExitCommand) Aliases() []string {
	return []string{"quit", "q"}
}
