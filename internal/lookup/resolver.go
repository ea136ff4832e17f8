package lookup

import (
	"context"
	"errors"

	"signdex/internal/index"
)

// ErrNotFound reports that the index holds no entry for a key. This is the
// normal outcome for an unknown sign, never a failure.
var ErrNotFound = errors.New("gloss not found")

// ErrUnavailable reports that the index itself could not be loaded or
// fetched. Callers must branch on this separately from ErrNotFound: "no such
// sign" and "index unavailable" are different answers.
var ErrUnavailable = errors.New("index unavailable")

// Resolver answers point queries against a gloss index. The key is expected
// to already be in canonical form; use Facade for display-form input.
//
// One interface, two deployment contexts: FileReader loads a local document
// once per process, HTTPReader fetches and memoizes a remote one on first
// use.
type Resolver interface {
	Resolve(ctx context.Context, key string) (index.Candidate, error)
}
