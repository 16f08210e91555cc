package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"featgate/internal/catalog"
	"featgate/internal/cli"
	"featgate/internal/config"
	"featgate/internal/lifecycle"
	"featgate/pkg/logging"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	schemaOutputFormat string
	schemaConfigPath   string
	schemaDevelopment  bool
)

// schemaCmd generates the feature configuration schema locally, without a
// running server. This is the same schema the controller registers with the
// host on load.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the feature configuration schema",
	Long: `Generate the configuration schema derived from the feature catalog: one
tri-state rule entry per feature, the enabled-groups list, and each
feature's own configuration schema merged in under its ID.

The catalog is read directly from the configuration directory; no running
server is needed.

Examples:
  featgate schema
  featgate schema -o json
  featgate schema --development`,
	Args:                  cobra.NoArgs,
	DisableFlagsInUseLine: true,
	RunE:                  runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	// The loader logs catalog progress; keep that off the schema output.
	logging.Init(logging.LevelWarn, os.Stderr)

	cat, err := catalog.LoadCatalog(schemaConfigPath)
	if err != nil {
		return err
	}

	schema := lifecycle.GenerateSchema(cat.Features(), schemaDevelopment)

	switch cli.OutputFormat(schemaOutputFormat) {
	case cli.OutputFormatJSON:
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case cli.OutputFormatYAML:
		data, err := yaml.Marshal(schema)
		if err != nil {
			return fmt.Errorf("failed to format schema: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		return fmt.Errorf("unsupported output format: %q (valid: json, yaml)", schemaOutputFormat)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaOutputFormat, "output", "o", "yaml", "Output format (json, yaml)")
	schemaCmd.Flags().StringVar(&schemaConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	schemaCmd.Flags().BoolVar(&schemaDevelopment, "development", false, "Annotate rule entries with provided/consumed capabilities")
}
