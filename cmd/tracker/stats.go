package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print completion statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.cfg, opts.log, false)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.statsService().GetStatistics(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if report.Empty {
				fmt.Fprintln(w, "No completions yet")
				return nil
			}

			fmt.Fprintf(w, "Best period:        %d\n", report.BestPeriod)
			fmt.Fprintf(w, "Perfect days:       %d\n", report.PerfectDays)
			fmt.Fprintf(w, "Completed trackers: %d\n", report.CompletedTrackers)
			fmt.Fprintf(w, "Average value:      %d\n", report.AverageValue)
			return nil
		},
	}
}
