package config

const (
	defaultCorpusDir   = "~/.local/share/signdex/corpus"
	defaultMediaDir    = "~/.local/share/signdex/public/matignon/videos"
	defaultIndexPath   = "~/.local/share/signdex/public/matignon/index.json"
	defaultLogDir      = "~/.local/share/signdex/logs"
	defaultAPIBind     = "127.0.0.1:7419"
	defaultCaptionExt  = ".srt"
	defaultMediaExt    = ".mp4"
	defaultSource      = "Matignon-LSF"
	defaultBaseScore   = 1.0
	defaultVideoPrefix = "/matignon/videos"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CorpusDir: defaultCorpusDir,
			MediaDir:  defaultMediaDir,
			IndexPath: defaultIndexPath,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Corpus: Corpus{
			CaptionExt:  defaultCaptionExt,
			MediaExt:    defaultMediaExt,
			Source:      defaultSource,
			BaseScore:   defaultBaseScore,
			VideoPrefix: defaultVideoPrefix,
		},
		Lookup: Lookup{},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
