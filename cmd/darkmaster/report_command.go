package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"darkmaster/internal/runhistory"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var groupKey string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show past run decisions from the run-history ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := ctx.ensureHistory()
			if err != nil {
				return err
			}

			var decisions []runhistory.RunDecision
			if strings.TrimSpace(groupKey) != "" {
				decisions, err = history.DecisionsForGroup(cmd.Context(), groupKey)
			} else {
				decisions, err = history.RecentDecisions(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("query run history: %w", err)
			}

			printDecisions(cmd.OutOrStdout(), decisions)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of recent decisions to show (ignored with --group)")
	cmd.Flags().StringVar(&groupKey, "group", "", "Show every decision recorded for one group key, oldest first")
	return cmd
}

func printDecisions(out io.Writer, decisions []runhistory.RunDecision) {
	if len(decisions) == 0 {
		fmt.Fprintln(out, "No run-history decisions recorded yet.")
		return
	}

	headers := []string{"Run Started", "Group", "Decision", "Reason", "Frames Used/Total", "Master Path"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, []string{
			d.RunStartedAt.Format("2006-01-02 15:04:05"),
			d.GroupKey,
			string(d.Decision),
			d.Reason,
			strconv.Itoa(d.NFramesUsed) + "/" + strconv.Itoa(d.NFramesTotal),
			d.MasterPath,
		})
	}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}
