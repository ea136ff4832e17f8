package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"signdex/internal/lookup"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var (
		asJSON      bool
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "lookup <gloss>...",
		Short: "Resolve glosses to video locators",
		Long: `Resolves each gloss against the index and prints one locator per line,
in argument order. Glosses with no matching sign resolve to an empty
locator rather than failing the whole invocation.

With index_url configured the index is fetched over HTTP; otherwise the
local index file is read.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var resolver lookup.Resolver
			if url := strings.TrimSpace(cfg.Lookup.IndexURL); url != "" {
				client := &http.Client{Timeout: 30 * time.Second}
				resolver = lookup.NewHTTPReader(url, client, logger)
			} else {
				resolver = lookup.NewFileReader(cfg.Paths.IndexPath, logger)
			}
			facade := lookup.NewFacade(resolver, logger)

			results, err := lookup.EnrichAll(cmd.Context(), facade, args, parallelism)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.VideoURL == "" {
					fmt.Fprintf(out, "%s\t(no sign found)\n", r.Gloss)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", r.Gloss, r.VideoURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "Maximum concurrent lookups (0 uses the default)")
	return cmd
}
