package commands

import (
	"context"
	"sort"
)

// HelpCommand prints usage for all commands or one command.
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command
func NewHelpCommand(client ClientInterface, output OutputLogger, transport TransportInterface, registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(client, output, transport),
		registry:    registry,
	}
}

// Execute prints the command overview, or detailed usage when a command
// name is given.
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return h.helpFor(args[0])
	}

	names := h.registry.List()
	sort.Strings(names)

	h.output.OutputLine("Available commands:")
	for _, name := range names {
		cmd, ok := h.registry.Get(name)
		if !ok {
			continue
		}
		h.output.OutputLine("  %-12s %s", name, cmd.Description())
	}
	h.output.OutputLine("")
	h.output.OutputLine("Use 'help <command>' for usage details.")
	return nil
}

func (h *HelpCommand) helpFor(name string) error {
	cmd, ok := h.registry.Get(name)
	if !ok {
		h.output.Error("Unknown command: %s", name)
		return nil
	}

	h.output.OutputLine("%s", cmd.Description())
	h.output.OutputLine("Usage: %s", cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		h.output.OutputLine("Aliases: %v", aliases)
	}
	return nil
}

// Usage returns the usage string
func (h *HelpCommand) Usage() string {
	return "help [command]"
}

// Description returns the command description
func (h *HelpCommand) Description() string {
	return "Show available commands or usage for one command"
}

// Completions returns command names
func (h *HelpCommand) Completions(input string) []string {
	return h.registry.List()
}

// Aliases returns command aliases
func (h *HelpCommand) Aliases() []string {
	return []string{"?"}
}
