/*
Package cli provides command-line helpers for harmony-validator.

Results are rendered by a Formatter chosen from the output format:

	formatter := cli.NewFormatter(cli.FormatJSON)
	result := cli.NewResult(runID, configPath, schemaPath, err, redactor)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

The text formatter understands *Result, *SchemaSummary and *RunList.

Exit Codes:

ExitCode maps a command error to the process exit status: 0 when the
configuration is valid, 1 for a validation failure, 2 when the schema
cannot be loaded and 3 for any other error.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, cancel := cli.SetupSignalHandler(context.Background())
	defer cancel()
*/
package cli
