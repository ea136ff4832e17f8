package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"signdex/internal/catalog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent index builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.CatalogPath())
			if err != nil {
				return fmt.Errorf("open build catalog: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No index builds recorded yet")
				return nil
			}

			headers := []string{"Started", "Duration", "Files", "Skipped", "Cues", "Entries", "Copied", "Run ID"}
			aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Duration().Round(roundTo).String(),
					strconv.Itoa(run.CaptionFiles),
					strconv.Itoa(run.SkippedFiles),
					strconv.Itoa(run.Cues),
					strconv.Itoa(run.Entries),
					strconv.Itoa(run.CopiedMedia),
					run.ID,
				})
			}

			if isTerminal(out) {
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintf(out, "%s  %8s  files=%s skipped=%s cues=%s entries=%s copied=%s  %s\n",
					row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit runs as JSON")
	return cmd
}
