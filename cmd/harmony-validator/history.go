package main

import (
	"time"

	"github.com/spf13/cobra"
	"runbeam/harmony-validator/pkg/cli"
	"runbeam/harmony-validator/pkg/history"
)

var historyFlags struct {
	limit      int
	outcome    string
	configPath string
	since      time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation runs",
	Long: `List recorded validation runs, newest first.

History must be enabled in the tool configuration (history.enabled: true).

Examples:
  # Show the most recent runs
  harmony-validator history

  # Show failures of one config over the last day
  harmony-validator history --outcome invalid --config-path config.toml --since 24h

  # Export as JSON
  harmony-validator history --limit 100 --format json`,
	Args: cobra.NoArgs,
	RunE: listHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 0, "maximum runs to list (default from config)")
	historyCmd.Flags().StringVar(&historyFlags.outcome, "outcome", "", "filter by outcome: valid, invalid, error")
	historyCmd.Flags().StringVar(&historyFlags.configPath, "config-path", "", "filter by validated config file")
	historyCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only runs started within this duration")
}

func listHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	if a.history == nil {
		return cli.NewConfigError("history.enabled", "run history is disabled")
	}

	query := &history.Query{
		ConfigPath: historyFlags.configPath,
		Limit:      historyFlags.limit,
	}
	if query.Limit <= 0 {
		query.Limit = a.cfg.History.DefaultLimit
	}

	switch outcome := history.Outcome(historyFlags.outcome); outcome {
	case "", history.OutcomeValid, history.OutcomeInvalid, history.OutcomeError:
		query.Outcome = outcome
	default:
		return cli.NewConfigError("outcome", "must be one of valid, invalid, error")
	}

	if historyFlags.since > 0 {
		since := time.Now().Add(-historyFlags.since)
		query.Since = &since
	}

	ctx, _ := commandContext(cmd)

	runs, err := a.history.List(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	total, err := a.history.Count(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if err := a.formatter.FormatTo(a.out, &cli.RunList{Total: total, Runs: runs}); err != nil {
		return cli.NewCommandError("history", err)
	}
	return nil
}
