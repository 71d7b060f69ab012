package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/habit-tracker/internal/core/services"
)

func newBoardCmd(opts *rootOptions) *cobra.Command {
	var (
		date   string
		search string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the trackers scheduled on a day",
		Example: `
tracker board
tracker board --date 2024-01-08 --filter uncompleted
tracker board --search run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseStatusFilter(filter)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts.cfg, opts.log, false)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.boardService(nil)

			var day time.Time
			if date != "" {
				if day, err = svc.ParseDay(date); err != nil {
					return err
				}
			}

			board, err := svc.Board(cmd.Context(), services.BoardInput{
				Date:   day,
				Search: search,
				Status: status,
			})
			if err != nil {
				return err
			}

			printBoard(cmd.OutOrStdout(), board)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to show as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&filter, "filter", "all", "all, today, completed or uncompleted")
	return cmd
}

func scheduleLabel(s domain.Schedule) string {
	if len(s) == len(domain.EveryDay()) {
		return "every day"
	}
	labels := make([]string, 0, len(s))
	for _, d := range s {
		labels = append(labels, d.Short())
	}
	return strings.Join(labels, " ")
}

func printBoard(w io.Writer, b *services.Board) {
	day, _ := domain.ParseDay(b.ReferenceDate)
	fmt.Fprintf(w, "%s (%s) filter=%s\n", b.ReferenceDate, domain.WeekdayOf(day).Short(), b.Filter)

	if b.Empty {
		fmt.Fprintln(w, "\nNothing found")
		return
	}

	for _, sec := range b.Sections {
		fmt.Fprintf(w, "\n%s\n", sec.Title)
		for _, card := range sec.Trackers {
			mark := " "
			if card.Completed {
				mark = "x"
			}
			fmt.Fprintf(w, "  [%s] %s %s  %s  %d done  %s\n",
				mark, card.Emoji, card.Name, scheduleLabel(card.Schedule), card.CompletionCount, card.ID)
		}
	}
}
