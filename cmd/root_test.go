package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"featgate/internal/cli"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	// Test setting version
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	// Test root command properties
	if rootCmd.Use != "featgate" {
		t.Errorf("Expected Use to be 'featgate', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	// Create a new command to test version template
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "featgate version %s\n" .Version}}`)

	// Capture output
	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	// Execute version command
	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "featgate version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestSubcommands(t *testing.T) {
	// self-update is registered in Execute(), so add it here like Execute does
	rootCmd.AddCommand(newSelfUpdateCmd())

	commands := rootCmd.Commands()

	expectedCommands := []string{
		"version", "self-update", "serve", "agent", "list", "get",
		"status", "resolve", "reconcile", "serialize", "rule", "groups",
		"events", "check", "schema", "settings",
	}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: ExitCodeError,
		},
		{
			name: "connection error",
			err: &cli.ConnectionError{
				Endpoint: "http://localhost:8090/mcp",
				Type:     cli.ConnectionErrorNetwork,
				Reason:   errors.New("connection refused"),
			},
			expected: ExitCodeServerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.expected {
				t.Errorf("getExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRootCommandHelp(t *testing.T) {
	// Test that help can be generated without error
	var buf bytes.Buffer

	// Create a new command to avoid affecting the global one
	testRootCmd := &cobra.Command{
		Use:   "featgate",
		Short: "Declarative feature enablement and lifecycle management",
		Long: `featgate decides, from declarative configuration, which optional features
a host application should have active, and safely reconciles the live
feature set whenever the configuration changes.`,
		SilenceUsage: true,
	}

	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})

	err := testRootCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "featgate") {
		t.Errorf("Help output should contain 'featgate'. Got: %q", output)
	}

	if !strings.Contains(output, "declarative configuration") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}
