package config

import (
	"errors"
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.CorpusDir, err = expandPath(c.Paths.CorpusDir); err != nil {
		return fmt.Errorf("paths.corpus_dir: %w", err)
	}
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if c.Paths.IndexPath, err = expandPath(c.Paths.IndexPath); err != nil {
		return fmt.Errorf("paths.index_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Corpus.Source = strings.TrimSpace(c.Corpus.Source)
	c.Corpus.VideoPrefix = strings.TrimRight(strings.TrimSpace(c.Corpus.VideoPrefix), "/")
	c.Lookup.IndexURL = strings.TrimSpace(c.Lookup.IndexURL)

	c.Corpus.CaptionExt = normalizeExt(c.Corpus.CaptionExt, defaultCaptionExt)
	c.Corpus.MediaExt = normalizeExt(c.Corpus.MediaExt, defaultMediaExt)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func normalizeExt(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.CorpusDir == "" {
		return errors.New("paths.corpus_dir must be set")
	}
	if c.Paths.MediaDir == "" {
		return errors.New("paths.media_dir must be set")
	}
	if c.Paths.IndexPath == "" {
		return errors.New("paths.index_path must be set")
	}
	if c.Paths.APIBind == "" {
		return errors.New("paths.api_bind must be set")
	}
	if c.Corpus.CaptionExt == c.Corpus.MediaExt {
		return fmt.Errorf("corpus.caption_ext and corpus.media_ext must differ, both are %q", c.Corpus.CaptionExt)
	}
	if c.Corpus.BaseScore <= 0 {
		return errors.New("corpus.base_score must be positive")
	}
	if c.Corpus.Source == "" {
		return errors.New("corpus.source must be set")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
