package index_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"signdex/internal/catalog"
	"signdex/internal/config"
	"signdex/internal/index"
	"signdex/internal/logging"
)

const speechSRT = `1
00:00:00,000 --> 00:00:01,500
Bonjour la France

2
00:00:02,000 --> 00:00:04,000
Le gouvernement travaille
`

func buildConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CorpusDir = filepath.Join(base, "corpus")
	cfg.Paths.MediaDir = filepath.Join(base, "public", "videos")
	cfg.Paths.IndexPath = filepath.Join(base, "public", "index.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfg.Paths.CorpusDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func writeCorpusFile(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(cfg.Paths.CorpusDir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildProducesIndex(t *testing.T) {
	cfg := buildConfig(t)
	writeCorpusFile(t, cfg, "speech_01.srt", speechSRT)
	writeCorpusFile(t, cfg, "speech_01.mp4", "fake video bytes")

	builder := index.NewBuilder(cfg, nil, logging.NewNop())
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if result.CaptionFiles != 1 || result.PairedFiles != 1 || result.SkippedFiles != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.Cues != 2 {
		t.Fatalf("expected 2 cues, got %d", result.Cues)
	}
	if result.CopiedMedia != 1 {
		t.Fatalf("expected media copy, got %d", result.CopiedMedia)
	}

	idx, err := index.ReadDocument(cfg.Paths.IndexPath)
	if err != nil {
		t.Fatal(err)
	}
	// "la" and "le" are too short; BONJOUR, FRANCE, GOUVERNEMENT, TRAVAILLE remain.
	for _, key := range []string{"BONJOUR", "FRANCE", "GOUVERNEMENT", "TRAVAILLE"} {
		candidates, ok := idx[key]
		if !ok || len(candidates) == 0 {
			t.Fatalf("missing key %q in index: %v", key, idx)
		}
	}
	if _, ok := idx["LA"]; ok {
		t.Fatal("short token LA indexed")
	}

	best, ok := idx.Best("BONJOUR")
	if !ok {
		t.Fatal("expected BONJOUR candidate")
	}
	want := "/matignon/videos/speech_01.mp4#t=0,1.5"
	if best.VideoURL != want {
		t.Fatalf("fragment locator = %q, want %q", best.VideoURL, want)
	}
	if best.Source != "Matignon-LSF" || best.Score != 1.0 {
		t.Fatalf("unexpected candidate metadata: %+v", best)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.MediaDir, "speech_01.mp4")); err != nil {
		t.Fatalf("media not copied: %v", err)
	}
}

func TestBuildSkipsUnpairedCaptions(t *testing.T) {
	cfg := buildConfig(t)
	writeCorpusFile(t, cfg, "orphan.srt", speechSRT)
	writeCorpusFile(t, cfg, "paired.srt", speechSRT)
	writeCorpusFile(t, cfg, "paired.mp4", "video")

	builder := index.NewBuilder(cfg, nil, logging.NewNop())
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.CaptionFiles != 2 || result.PairedFiles != 1 || result.SkippedFiles != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	idx, err := index.ReadDocument(cfg.Paths.IndexPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, candidates := range idx {
		for _, c := range candidates {
			if c.VideoURL == "" {
				t.Fatalf("empty locator in index: %+v", idx)
			}
			if !strings.HasPrefix(c.VideoURL, "/matignon/videos/paired.mp4") {
				t.Fatalf("orphan caption leaked into index: %q", c.VideoURL)
			}
		}
	}
}

func TestBuildIdempotentRebuild(t *testing.T) {
	cfg := buildConfig(t)
	writeCorpusFile(t, cfg, "speech_01.srt", speechSRT)
	writeCorpusFile(t, cfg, "speech_01.mp4", "video bytes")

	builder := index.NewBuilder(cfg, nil, logging.NewNop())
	if _, err := builder.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	firstDoc, err := os.ReadFile(cfg.Paths.IndexPath)
	if err != nil {
		t.Fatal(err)
	}

	// Change the sink copy; a re-run must not overwrite it.
	sinkPath := filepath.Join(cfg.Paths.MediaDir, "speech_01.mp4")
	if err := os.WriteFile(sinkPath, []byte("already copied"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.CopiedMedia != 0 {
		t.Fatalf("rebuild re-copied media: %+v", result)
	}

	secondDoc, err := os.ReadFile(cfg.Paths.IndexPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstDoc, secondDoc) {
		t.Fatal("rebuild over unchanged corpus produced a different document")
	}

	sink, err := os.ReadFile(sinkPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(sink) != "already copied" {
		t.Fatal("rebuild overwrote existing media asset")
	}
}

func TestBuildRecordsRunInCatalog(t *testing.T) {
	cfg := buildConfig(t)
	writeCorpusFile(t, cfg, "speech_01.srt", speechSRT)
	writeCorpusFile(t, cfg, "speech_01.mp4", "video")
	writeCorpusFile(t, cfg, "orphan.srt", speechSRT)

	store, err := catalog.Open(cfg.CatalogPath())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	builder := index.NewBuilder(cfg, store, logging.NewNop())
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	runs, err := store.ListRuns(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != result.RunID {
		t.Fatalf("run not recorded: %+v", runs)
	}
	if runs[0].SkippedFiles != 1 || runs[0].PairedFiles != 1 {
		t.Fatalf("unexpected recorded counts: %+v", runs[0])
	}

	files, err := store.RunFiles(context.Background(), result.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 file records, got %d", len(files))
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	cfg := buildConfig(t)

	builder := index.NewBuilder(cfg, nil, logging.NewNop())
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.CaptionFiles != 0 || result.Entries != 0 {
		t.Fatalf("unexpected result for empty corpus: %+v", result)
	}

	idx, err := index.ReadDocument(cfg.Paths.IndexPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx) != 0 {
		t.Fatalf("expected empty index, got %v", idx)
	}
}
