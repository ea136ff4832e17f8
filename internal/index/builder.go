package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"signdex/internal/captions"
	"signdex/internal/catalog"
	"signdex/internal/config"
	"signdex/internal/fileutil"
	"signdex/internal/gloss"
	"signdex/internal/logging"
)

// Builder scans a corpus of paired caption/media files and produces the
// gloss index document. It is a one-shot batch process: each run regenerates
// the full index, while media copies are idempotent.
type Builder struct {
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger
}

// Result summarizes a completed build.
type Result struct {
	RunID        string
	IndexPath    string
	CaptionFiles int
	PairedFiles  int
	SkippedFiles int
	Cues         int
	Keys         int
	Entries      int
	CopiedMedia  int
	Duration     time.Duration
}

// NewBuilder constructs a builder. The catalog store may be nil; build
// history is then simply not recorded.
func NewBuilder(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{
		cfg:    cfg,
		store:  store,
		logger: logging.WithComponent(logger, "builder"),
	}
}

// Build runs the full pipeline: discover caption files, pair them with media,
// copy media into the sink, parse and extract keys, and atomically write the
// index document. Unpaired caption files are skipped with a warning; only
// filesystem-level failures abort the build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	started := time.Now()

	if err := b.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(b.cfg.Paths.IndexPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another build is already running (lock %s)", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := os.ReadDir(b.cfg.Paths.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	names := make(map[string]struct{}, len(entries))
	var captionFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names[entry.Name()] = struct{}{}
		if strings.HasSuffix(strings.ToLower(entry.Name()), b.cfg.Corpus.CaptionExt) {
			captionFiles = append(captionFiles, entry.Name())
		}
	}
	sort.Strings(captionFiles)

	result := &Result{
		RunID:        uuid.NewString(),
		IndexPath:    b.cfg.Paths.IndexPath,
		CaptionFiles: len(captionFiles),
	}
	idx := Index{}
	records := make([]catalog.FileRecord, 0, len(captionFiles))

	for _, captionFile := range captionFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := b.processFile(idx, captionFile, names)
		if err != nil {
			return nil, err
		}
		if record.Skipped {
			result.SkippedFiles++
		} else {
			result.PairedFiles++
			result.Cues += record.Cues
			result.Keys += record.Keys
			if record.Copied {
				result.CopiedMedia++
			}
		}
		records = append(records, record)
	}

	result.Entries = len(idx)
	if err := WriteDocument(b.cfg.Paths.IndexPath, idx); err != nil {
		return nil, err
	}
	result.Duration = time.Since(started)

	b.logger.Info("index written",
		logging.String("path", result.IndexPath),
		logging.Int("entries", result.Entries),
		logging.Int("candidates", result.Keys),
		logging.Int("paired_files", result.PairedFiles),
		logging.Int("skipped_files", result.SkippedFiles),
		logging.Duration("duration", result.Duration))

	b.recordRun(ctx, started, result, records)
	return result, nil
}

func (b *Builder) processFile(idx Index, captionFile string, names map[string]struct{}) (catalog.FileRecord, error) {
	base := strings.TrimSuffix(captionFile, filepath.Ext(captionFile))
	record := catalog.FileRecord{Base: base, CaptionFile: captionFile}

	mediaFile := base + b.cfg.Corpus.MediaExt
	if _, ok := names[mediaFile]; !ok {
		b.logger.Warn("no media pair for caption file",
			logging.String("caption", captionFile),
			logging.String("expected", mediaFile))
		record.Skipped = true
		record.Reason = "no media pair"
		return record, nil
	}
	record.MediaFile = mediaFile

	copied, err := fileutil.CopyFileIfMissing(
		filepath.Join(b.cfg.Paths.CorpusDir, mediaFile),
		filepath.Join(b.cfg.Paths.MediaDir, mediaFile),
	)
	if err != nil {
		return record, fmt.Errorf("copy media %q: %w", mediaFile, err)
	}
	record.Copied = copied
	if copied {
		b.logger.Info("copied media to sink", logging.String("media", mediaFile))
	}

	cues, err := captions.ParseFile(filepath.Join(b.cfg.Paths.CorpusDir, captionFile))
	if err != nil {
		return record, fmt.Errorf("parse captions %q: %w", captionFile, err)
	}
	record.Cues = len(cues)

	for _, cue := range cues {
		locator := b.fragmentLocator(mediaFile, cue.Start, cue.End)
		for _, key := range gloss.ExtractKeys(cue.Text) {
			idx.Add(key, Candidate{
				VideoURL: locator,
				Source:   b.cfg.Corpus.Source,
				Score:    b.cfg.Corpus.BaseScore,
			})
			record.Keys++
		}
	}

	b.logger.Debug("processed corpus file",
		logging.String("base", base),
		logging.Int("cues", record.Cues),
		logging.Int("keys", record.Keys))
	return record, nil
}

// fragmentLocator encodes a media fragment reference of the form
// <prefix>/<file>#t=<start>,<end>. Seconds are rendered with the shortest
// exact representation so rebuilds stay byte-identical.
func (b *Builder) fragmentLocator(mediaFile string, start, end float64) string {
	return fmt.Sprintf("%s/%s#t=%s,%s",
		b.cfg.Corpus.VideoPrefix,
		mediaFile,
		formatSeconds(start),
		formatSeconds(end))
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (b *Builder) recordRun(ctx context.Context, started time.Time, result *Result, records []catalog.FileRecord) {
	if b.store == nil {
		return
	}
	run := catalog.Run{
		ID:           result.RunID,
		StartedAt:    started.UTC(),
		FinishedAt:   started.UTC().Add(result.Duration),
		IndexPath:    result.IndexPath,
		CaptionFiles: result.CaptionFiles,
		PairedFiles:  result.PairedFiles,
		SkippedFiles: result.SkippedFiles,
		Cues:         result.Cues,
		Keys:         result.Keys,
		Entries:      result.Entries,
		CopiedMedia:  result.CopiedMedia,
	}
	if err := b.store.RecordRun(ctx, run, records); err != nil {
		// History is informational; a catalog failure never fails the build.
		b.logger.Warn("failed to record build run", logging.Error(err))
	}
}
