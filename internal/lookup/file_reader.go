package lookup

import (
	"context"
	"log/slog"
	"sync"

	"signdex/internal/index"
	"signdex/internal/logging"
)

// FileReader serves queries from an index document on local disk. The
// document is loaded eagerly at construction; if that fails the reader runs
// degraded and retries the load on each query until one succeeds, so a
// document that appears after process start is picked up without a restart.
// A loaded index is immutable and kept for the reader's lifetime.
type FileReader struct {
	path   string
	logger *slog.Logger

	mu  sync.RWMutex
	idx index.Index
}

// NewFileReader constructs the reader and attempts the initial load. Load
// failure is not an error: the reader starts degraded and every query
// returns ErrUnavailable until the document becomes readable.
func NewFileReader(path string, logger *slog.Logger) *FileReader {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &FileReader{
		path:   path,
		logger: logging.WithComponent(logger, "file-reader"),
	}
	if err := r.load(); err != nil {
		r.logger.Warn("index not loaded at startup, serving degraded",
			logging.String("path", path),
			logging.Error(err))
	} else {
		r.logger.Info("index loaded", logging.String("path", path), logging.Int("entries", len(r.idx)))
	}
	return r
}

func (r *FileReader) load() error {
	idx, err := index.ReadDocument(r.path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.idx = idx
	r.mu.Unlock()
	return nil
}

// Resolve answers a point query for a canonical key.
func (r *FileReader) Resolve(_ context.Context, key string) (index.Candidate, error) {
	r.mu.RLock()
	idx := r.idx
	r.mu.RUnlock()

	if idx == nil {
		if err := r.load(); err != nil {
			return index.Candidate{}, ErrUnavailable
		}
		r.mu.RLock()
		idx = r.idx
		r.mu.RUnlock()
	}

	best, ok := idx.Best(key)
	if !ok {
		return index.Candidate{}, ErrNotFound
	}
	return best, nil
}
