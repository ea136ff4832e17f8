package lookup_test

import (
	"context"
	"testing"

	"signdex/internal/logging"
	"signdex/internal/lookup"
)

func TestEnrichAllPreservesOrder(t *testing.T) {
	resolver := newStaticResolver(map[string]string{
		"DEMAIN": "/v/demain.mp4#t=0,1",
		"PARIS":  "/v/paris.mp4#t=0,1",
		"ALLER":  "/v/aller.mp4#t=0,1",
	})
	facade := lookup.NewFacade(resolver, logging.NewNop())

	glosses := []string{"DEMAIN", "PARIS", "MOI", "ALLER"}
	results, err := lookup.EnrichAll(context.Background(), facade, glosses, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(glosses) {
		t.Fatalf("expected %d results, got %d", len(glosses), len(results))
	}
	for i, gloss := range glosses {
		if results[i].Gloss != gloss {
			t.Fatalf("order not preserved at %d: got %q want %q", i, results[i].Gloss, gloss)
		}
	}
	if results[0].VideoURL != "/v/demain.mp4#t=0,1" {
		t.Fatalf("unexpected URL for DEMAIN: %q", results[0].VideoURL)
	}
	// MOI is unknown: a degraded entry, not a failure.
	if results[2].VideoURL != "" {
		t.Fatalf("expected empty URL for unknown gloss, got %q", results[2].VideoURL)
	}
}

func TestEnrichAllSurvivesUnavailableIndex(t *testing.T) {
	facade := lookup.NewFacade(&staticResolver{failing: true}, logging.NewNop())

	glosses := []string{"BONJOUR", "MERCI"}
	results, err := lookup.EnrichAll(context.Background(), facade, glosses, 0)
	if err != nil {
		t.Fatalf("enrichment must not fail when the index is unavailable: %v", err)
	}
	for i, result := range results {
		if result.Gloss != glosses[i] {
			t.Fatalf("order not preserved: %+v", results)
		}
		if result.VideoURL != "" {
			t.Fatalf("expected empty URL, got %q", result.VideoURL)
		}
	}
}

func TestEnrichAllEmptyInput(t *testing.T) {
	facade := lookup.NewFacade(newStaticResolver(nil), logging.NewNop())

	results, err := lookup.EnrichAll(context.Background(), facade, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestEnrichAllCanceledContext(t *testing.T) {
	facade := lookup.NewFacade(newStaticResolver(nil), logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := lookup.EnrichAll(ctx, facade, []string{"BONJOUR"}, 1); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
