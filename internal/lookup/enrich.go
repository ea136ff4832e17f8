package lookup

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// defaultEnrichParallelism bounds concurrent resolutions per batch.
const defaultEnrichParallelism = 8

// Enrichment pairs a gloss with its resolved fragment URL. An empty VideoURL
// means no playable media was found; the gloss itself is still usable.
type Enrichment struct {
	Gloss    string
	VideoURL string
}

// EnrichAll resolves a sequence of glosses concurrently, reassembling the
// results in the original order. Per-gloss failures — unknown signs as well
// as an unavailable index — degrade to an empty URL rather than failing the
// batch: a gloss without video is a valid, degraded result. The only error
// returned is context cancellation.
func EnrichAll(ctx context.Context, facade *Facade, glosses []string, parallelism int) ([]Enrichment, error) {
	if parallelism <= 0 {
		parallelism = defaultEnrichParallelism
	}

	results := make([]Enrichment, len(glosses))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, glossText := range glosses {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			url, err := facade.Resolve(ctx, glossText)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				url = ""
			}
			results[i] = Enrichment{Gloss: glossText, VideoURL: url}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
