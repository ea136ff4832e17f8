package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"signdex/internal/index"
	"signdex/internal/logging"
)

// HTTPDoer describes the HTTP client used by HTTPReader.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPReader fetches the index document over HTTP on first use and memoizes
// it for its lifetime. Concurrent first queries share a single in-flight
// fetch through singleflight: exactly one request goes out and every waiter
// observes its outcome. A failed fetch is reported to the callers that
// shared it and is NOT cached, so the next query retries; only success is
// remembered.
//
// No timeout is imposed here: cancellation and deadlines belong to the
// caller's context and the injected client.
type HTTPReader struct {
	url    string
	client HTTPDoer
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	idx   index.Index
}

// NewHTTPReader constructs a lazy reader for the document at url. A nil
// client falls back to http.DefaultClient.
func NewHTTPReader(url string, client HTTPDoer, logger *slog.Logger) *HTTPReader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HTTPReader{
		url:    url,
		client: client,
		logger: logging.WithComponent(logger, "http-reader"),
	}
}

// Resolve answers a point query, fetching and caching the index on first use.
func (r *HTTPReader) Resolve(ctx context.Context, key string) (index.Candidate, error) {
	idx, err := r.ensureIndex(ctx)
	if err != nil {
		return index.Candidate{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	best, ok := idx.Best(key)
	if !ok {
		return index.Candidate{}, ErrNotFound
	}
	return best, nil
}

func (r *HTTPReader) ensureIndex(ctx context.Context) (index.Index, error) {
	r.mu.RLock()
	idx := r.idx
	r.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	// All callers arriving before the fetch resolves attach to the same
	// in-flight operation.
	result, err, _ := r.group.Do("fetch", func() (any, error) {
		r.mu.RLock()
		cached := r.idx
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		fetched, err := r.fetch(ctx)
		if err != nil {
			r.logger.Warn("index fetch failed", logging.String("url", r.url), logging.Error(err))
			return nil, err
		}

		r.mu.Lock()
		r.idx = fetched
		r.mu.Unlock()
		r.logger.Info("index fetched", logging.String("url", r.url), logging.Int("entries", len(fetched)))
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(index.Index), nil
}

func (r *HTTPReader) fetch(ctx context.Context) (index.Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build index request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch index: unexpected status %s", resp.Status)
	}
	return index.DecodeDocument(resp.Body)
}
