package lookup_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"signdex/internal/logging"
	"signdex/internal/lookup"
)

const indexJSON = `{"BONJOUR": [{"videoUrl": "/v/a.mp4#t=0,1", "source": "s", "score": 1.0}]}`

func TestHTTPReaderFetchesOnceAndCaches(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte(indexJSON))
	}))
	defer server.Close()

	reader := lookup.NewHTTPReader(server.URL, nil, logging.NewNop())

	for i := 0; i < 3; i++ {
		candidate, err := reader.Resolve(context.Background(), "BONJOUR")
		if err != nil {
			t.Fatal(err)
		}
		if candidate.VideoURL != "/v/a.mp4#t=0,1" {
			t.Fatalf("unexpected candidate: %+v", candidate)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", got)
	}
}

func TestHTTPReaderConcurrentQueriesShareOneFetch(t *testing.T) {
	var fetches atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		<-release // hold every fetch until all queries are in flight
		_, _ = w.Write([]byte(indexJSON))
	}))
	defer server.Close()

	reader := lookup.NewHTTPReader(server.URL, nil, logging.NewNop())

	const workers = 16
	var started, done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	errs := make([]error, workers)
	urls := make([]string, workers)

	for i := 0; i < workers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			candidate, err := reader.Resolve(context.Background(), "BONJOUR")
			errs[i] = err
			urls[i] = candidate.VideoURL
		}(i)
	}

	started.Wait()
	close(release)
	done.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected exactly 1 fetch for %d concurrent queries, got %d", workers, got)
	}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("query %d failed: %v", i, errs[i])
		}
		if urls[i] != "/v/a.mp4#t=0,1" {
			t.Fatalf("query %d got inconsistent result: %q", i, urls[i])
		}
	}
}

func TestHTTPReaderFailureNotCached(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fetches.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(indexJSON))
	}))
	defer server.Close()

	reader := lookup.NewHTTPReader(server.URL, nil, logging.NewNop())

	_, err := reader.Resolve(context.Background(), "BONJOUR")
	if !errors.Is(err, lookup.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on fetch failure, got %v", err)
	}

	// The failure must not poison the cache: the next query refetches.
	candidate, err := reader.Resolve(context.Background(), "BONJOUR")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if candidate.VideoURL != "/v/a.mp4#t=0,1" {
		t.Fatalf("unexpected candidate: %+v", candidate)
	}
	if got := fetches.Load(); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

func TestHTTPReaderMissingKeyAfterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(indexJSON))
	}))
	defer server.Close()

	reader := lookup.NewHTTPReader(server.URL, nil, logging.NewNop())
	_, err := reader.Resolve(context.Background(), "ABSENT")
	if !errors.Is(err, lookup.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPReaderMalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not an index</html>"))
	}))
	defer server.Close()

	reader := lookup.NewHTTPReader(server.URL, nil, logging.NewNop())
	_, err := reader.Resolve(context.Background(), "BONJOUR")
	if !errors.Is(err, lookup.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for malformed document, got %v", err)
	}
}
