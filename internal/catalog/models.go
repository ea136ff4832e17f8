package catalog

import "time"

// Run summarizes one index build over the corpus.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	IndexPath    string
	CaptionFiles int
	PairedFiles  int
	SkippedFiles int
	Cues         int
	Keys         int
	Entries      int
	CopiedMedia  int
}

// Duration returns the wall time the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// FileRecord captures the outcome for one caption file within a run.
type FileRecord struct {
	RunID       string
	Base        string
	CaptionFile string
	MediaFile   string
	Cues        int
	Keys        int
	Copied      bool
	Skipped     bool
	Reason      string
}
