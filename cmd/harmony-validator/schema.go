package main

import (
	"github.com/spf13/cobra"
	"runbeam/harmony-validator/pkg/cli"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and inspect schema files",
	Long: `Check that a schema file loads, or print its tables and fields.

Without an argument the schema path from the tool configuration is used.`,
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check [schema-file]",
	Short: "Check that a schema file loads",
	Long: `Load a schema file and report whether it is well formed.

Exit status is 0 when the schema loads and 2 when it does not.

Examples:
  harmony-validator schema check harmony-schema.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkSchema,
}

var schemaInspectCmd = &cobra.Command{
	Use:   "inspect [schema-file]",
	Short: "Print the tables and fields of a schema",
	Long: `Load a schema file and print its metadata, tables, fields and constraints.

Examples:
  harmony-validator schema inspect harmony-schema.toml
  harmony-validator schema inspect harmony-schema.toml --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: inspectSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaCheckCmd)
	schemaCmd.AddCommand(schemaInspectCmd)
}

func checkSchema(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	ctx, runID := commandContext(cmd)
	schemaPath := a.schemaPathOr(firstArg(args))

	_, loadErr := a.validator.LoadSchemaFile(ctx, schemaPath)
	return a.report(runID, "", schemaPath, loadErr)
}

func inspectSchema(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	ctx, runID := commandContext(cmd)
	schemaPath := a.schemaPathOr(firstArg(args))

	def, loadErr := a.validator.LoadSchemaFile(ctx, schemaPath)
	if loadErr != nil {
		return a.report(runID, "", schemaPath, loadErr)
	}

	if err := a.formatter.FormatTo(a.out, cli.NewSchemaSummary(schemaPath, def)); err != nil {
		return cli.NewCommandError("schema inspect", err)
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
