package index

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"signdex/internal/fileutil"
)

// WriteDocument serializes idx as indented JSON and writes it atomically:
// the document is staged next to path and renamed into place, so a reader
// never observes a partial index. encoding/json emits map keys in sorted
// order, which makes rebuilds over an unchanged corpus byte-identical.
func WriteDocument(path string, idx Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write index document: %w", err)
	}
	return nil
}

// ReadDocument loads an index document from disk.
func ReadDocument(path string) (Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index document: %w", err)
	}
	defer file.Close()
	return DecodeDocument(file)
}

// DecodeDocument parses an index document from r. Unknown fields inside
// candidate objects are ignored so older readers tolerate newer documents.
func DecodeDocument(r io.Reader) (Index, error) {
	var idx Index
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode index document: %w", err)
	}
	if idx == nil {
		idx = Index{}
	}
	return idx, nil
}
