package lookup

import (
	"context"
	"log/slog"

	"signdex/internal/gloss"
	"signdex/internal/logging"
)

// Facade is the single entry point external callers use to resolve a
// display-form gloss to a playable fragment URL. It normalizes the gloss and
// delegates to whichever Resolver is configured; callers cannot tell which
// reader implementation is active.
type Facade struct {
	resolver Resolver
	logger   *slog.Logger
}

// NewFacade wraps a resolver.
func NewFacade(resolver Resolver, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Facade{
		resolver: resolver,
		logger:   logging.WithComponent(logger, "lookup"),
	}
}

// Resolve returns the best fragment URL for a display-form gloss.
// ErrNotFound covers absent keys and glosses that normalize to nothing;
// ErrUnavailable propagates from the underlying reader.
func (f *Facade) Resolve(ctx context.Context, glossText string) (string, error) {
	key := gloss.NormalizeKey(glossText)
	if key == "" {
		return "", ErrNotFound
	}
	candidate, err := f.resolver.Resolve(ctx, key)
	if err != nil {
		return "", err
	}
	f.logger.Debug("gloss resolved",
		logging.String("gloss", glossText),
		logging.String("key", key),
		logging.String("video", candidate.VideoURL))
	return candidate.VideoURL, nil
}
