package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"signdex/internal/catalog"
	"signdex/internal/index"
	"signdex/internal/logging"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Scan the corpus and rebuild the gloss index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.CatalogPath())
			if err != nil {
				logger.Warn("catalog unavailable; build history will not be recorded", logging.Error(err))
				store = nil
			}
			if store != nil {
				defer store.Close()
			}

			result, err := index.NewBuilder(cfg, store, logger).Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %d caption file(s) in %s\n", result.CaptionFiles, result.Duration.Round(roundTo))
			fmt.Fprintf(out, "  Paired:   %d (skipped %d)\n", result.PairedFiles, result.SkippedFiles)
			fmt.Fprintf(out, "  Cues:     %d\n", result.Cues)
			fmt.Fprintf(out, "  Keys:     %d (%d distinct entries)\n", result.Keys, result.Entries)
			fmt.Fprintf(out, "  Copied:   %d media file(s)\n", result.CopiedMedia)
			fmt.Fprintf(out, "  Index:    %s\n", result.IndexPath)
			return nil
		},
	}
}
