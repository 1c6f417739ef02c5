package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"salarydash/internal/engine"
	"salarydash/internal/report"
)

var (
	summaryYears     []int
	summarySeniority []string
	summaryContract  []string
	summarySize      []string
	summaryTopN      int
	summaryNoColor   bool
	summaryCountries bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a dashboard summary to the terminal",
	Long: `Summary loads the dataset, applies the filter flags and prints the
headline metrics, the top roles by mean salary and the remote-work split.
Filters left unset keep every observed value.

Example:
  salarydash summary --year 2023 --year 2024 --seniority senior --top-n 5`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntSliceVar(&summaryYears, "year", nil, "Keep only these years (repeatable)")
	summaryCmd.Flags().StringSliceVar(&summarySeniority, "seniority", nil, "Keep only these seniority levels")
	summaryCmd.Flags().StringSliceVar(&summaryContract, "contract", nil, "Keep only these contract types")
	summaryCmd.Flags().StringSliceVar(&summarySize, "company-size", nil, "Keep only these company sizes")
	summaryCmd.Flags().IntVar(&summaryTopN, "top-n", 0, "Number of roles to rank (clamped to the configured bounds)")
	summaryCmd.Flags().BoolVar(&summaryNoColor, "no-color", false, "Disable colored output")
	summaryCmd.Flags().BoolVar(&summaryCountries, "countries", false, "Include the per-year country breakdown")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Debugw("loading dataset", "source", cfg.Data.Source)
	cs, err := retrieve(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if cs.Skipped > 0 {
		log.Warnw("skipped malformed rows", "skipped", cs.Skipped)
	}

	state := summaryState(cmd, cs)
	state.TopN = cfg.Dashboard.TopN.Default
	if summaryTopN > 0 {
		state.TopN = cfg.Dashboard.TopN.Clamp(summaryTopN)
	}
	state.Bins = cfg.Dashboard.Bins.Default

	data := engine.BuildDashboard(cs, state, engine.ViewOptions{
		TargetRole:  cfg.Dashboard.TargetRole,
		PreviewRows: 1,
	})
	report.Write(cmd.OutOrStdout(), data, report.Options{
		NoColor:   summaryNoColor,
		Countries: summaryCountries,
	})
	return nil
}

// summaryState keeps every observed value for filters not given on the
// command line.
func summaryState(cmd *cobra.Command, cs *engine.ColumnStore) engine.State {
	sel := engine.DefaultSelection(cs)
	flags := cmd.Flags()
	if flags.Changed("year") {
		sel.Years = summaryYears
	}
	if flags.Changed("seniority") {
		sel.Seniorities = summarySeniority
	}
	if flags.Changed("contract") {
		sel.Contracts = summaryContract
	}
	if flags.Changed("company-size") {
		sel.CompanySizes = summarySize
	}
	return engine.State{Selection: sel}
}
