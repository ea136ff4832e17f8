package index_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"signdex/internal/index"
)

func TestDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")

	idx := index.Index{}
	idx.Add("BONJOUR", index.Candidate{VideoURL: "/videos/a.mp4#t=0,1.5", Source: "Matignon-LSF", Score: 1.0})
	idx.Add("MERCI", index.Candidate{VideoURL: "/videos/a.mp4#t=3.4,5", Source: "Matignon-LSF", Score: 1.0})
	idx.Add("MERCI", index.Candidate{VideoURL: "/videos/b.mp4#t=0,2", Source: "Matignon-LSF", Score: 1.0})

	if err := index.WriteDocument(path, idx); err != nil {
		t.Fatal(err)
	}

	loaded, err := index.ReadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(loaded))
	}
	if len(loaded["MERCI"]) != 2 {
		t.Fatalf("expected 2 candidates for MERCI, got %d", len(loaded["MERCI"]))
	}
	if loaded["MERCI"][0].VideoURL != "/videos/a.mp4#t=3.4,5" {
		t.Fatalf("candidate order lost: %+v", loaded["MERCI"])
	}
}

func TestWriteDocumentDeterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	idx := index.Index{}
	idx.Add("ZEBRE", index.Candidate{VideoURL: "/v/z.mp4#t=0,1", Source: "s", Score: 1.0})
	idx.Add("ABRICOT", index.Candidate{VideoURL: "/v/a.mp4#t=0,1", Source: "s", Score: 1.0})

	if err := index.WriteDocument(first, idx); err != nil {
		t.Fatal(err)
	}
	if err := index.WriteDocument(second, idx); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("repeated writes of the same index differ")
	}
	// Keys must come out sorted for stable diffs.
	if bytes.Index(a, []byte("ABRICOT")) > bytes.Index(a, []byte("ZEBRE")) {
		t.Fatal("document keys not sorted")
	}
}

func TestDecodeDocumentToleratesUnknownFields(t *testing.T) {
	doc := `{"BONJOUR": [{"videoUrl": "/v/a.mp4#t=0,1", "source": "s", "score": 1.0, "language": "fr"}]}`
	idx, err := index.DecodeDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(idx["BONJOUR"]) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", idx)
	}
}

func TestDecodeDocumentRejectsGarbage(t *testing.T) {
	if _, err := index.DecodeDocument(strings.NewReader("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestReadDocumentMissingFile(t *testing.T) {
	if _, err := index.ReadDocument(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing document")
	}
}
