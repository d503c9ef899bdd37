package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"runbeam/harmony-validator/pkg/cli"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "harmony-validator",
	Short: "Validate Harmony proxy configuration against a schema",
	Long: `harmony-validator checks Harmony proxy configuration files (TOML or YAML)
against a declarative TOML schema and reports the first violation found.

It provides:
  - One-shot validation with exit codes for CI pipelines
  - Schema checking and inspection
  - Watch mode with re-validation on change or on a cron schedule
  - Prometheus metrics, health probes and an optional run history`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the mapped exit code.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the exit code.
// Failures already printed as results are not printed again.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "tool config file (default harmony-validator.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only (overrides --verbose)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "", "output format: text, json (default from config)")
}
