package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"runbeam/harmony-validator/pkg/cli"
)

// stdinPath is the config argument that reads TOML from standard input.
const stdinPath = "-"

var validateFlags struct {
	schemaPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a configuration file against a schema",
	Long: `Validate a Harmony configuration file against a TOML schema.

The configuration may be TOML or YAML, chosen by file extension. Use "-" to
read TOML from standard input. Validation stops at the first violation.

Exit status:
  0  configuration is valid
  1  configuration violates the schema (or cannot be read)
  2  schema cannot be loaded
  3  any other error

Examples:
  # Validate against the default schema (harmony-schema.toml)
  harmony-validator validate config.toml

  # Validate against a specific schema
  harmony-validator validate config.toml --schema schemas/proxy.toml

  # Validate stdin and print JSON
  cat config.toml | harmony-validator validate - --format json`,
	Args: cobra.ExactArgs(1),
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.schemaPath, "schema", "s", "", "schema file (default from config)")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	ctx, runID := commandContext(cmd)
	configPath := args[0]
	schemaPath := a.schemaPathOr(validateFlags.schemaPath)

	if configPath == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.NewCommandError("validate", fmt.Errorf("failed to read stdin: %w", err))
		}
		runErr := a.validator.ValidateContent(ctx, string(content), schemaPath)
		return a.report(runID, "<stdin>", schemaPath, runErr)
	}

	runErr := a.validator.ValidateFile(ctx, configPath, schemaPath)
	return a.report(runID, configPath, schemaPath, runErr)
}
