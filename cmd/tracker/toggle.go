package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newToggleCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "toggle <tracker-id>",
		Short: "Mark or unmark a tracker as done for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.cfg, opts.log, false)
			if err != nil {
				return err
			}
			defer a.Close()

			board := a.boardService(nil)

			day := board.Today()
			if date != "" {
				var parseErr error
				if day, parseErr = board.ParseDay(date); parseErr != nil {
					return parseErr
				}
			}

			out, err := board.Toggle(cmd.Context(), args[0], day)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s (%d done)\n",
				out.Result, out.TrackerID, out.Date, out.CompletionCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	return cmd
}

