// Package commands provides the command set of the featgate REPL.
//
// Every command implements the Command interface, which keeps parsing,
// execution, and completion logic together per command and lets the
// Registry resolve names and aliases uniformly.
package commands

import (
	"context"
)

// Command represents a REPL command that can be executed interactively.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns possible completions for the command.
	// The input parameter is the current partial input for context.
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// OutputLogger defines the interface for structured command output.
// User-facing output is separated from system messages so the REPL can
// keep results clean while still surfacing status and errors.
type OutputLogger interface {
	Output(format string, args ...interface{})
	OutputLine(format string, args ...interface{})

	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
	Success(format string, args ...interface{})

	SetVerbose(verbose bool)
}

// Registry manages available commands for the REPL.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry under its primary name and
// all of its aliases.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd

	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = name
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, true
	}

	if primary, exists := r.aliases[name]; exists {
		if cmd, exists := r.commands[primary]; exists {
			return cmd, true
		}
	}

	return nil, false
}

// List returns all registered primary command names.
func (r *Registry) List() []string {
	var names []string
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// AllCompletions returns all command names and aliases.
func (r *Registry) AllCompletions() []string {
	var completions []string

	for name := range r.commands {
		completions = append(completions, name)
	}
	for alias := range r.aliases {
		completions = append(completions, alias)
	}

	return completions
}
