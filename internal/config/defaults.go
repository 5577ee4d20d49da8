package config

const (
	defaultLibraryDir    = "~/.local/share/shade/library"
	defaultInboundDir    = "~/.local/share/shade/inbound"
	defaultLogDir        = "~/.local/share/shade/logs"
	defaultPublicBaseURL = "http://localhost/media"
	defaultPixelCeiling  = 4_000_000
	defaultJPEGQuality   = 90
	defaultSettleSeconds = 2
	defaultNotifyTimeout = 10
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultThumbnailSpec = "150x150"
	defaultMediumSpec    = "800x600"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			InboundDir: defaultInboundDir,
			LogDir:     defaultLogDir,
		},
		Library: Library{
			PublicBaseURL: defaultPublicBaseURL,
		},
		Generator: Generator{
			PixelCeiling: defaultPixelCeiling,
			JPEGQuality:  defaultJPEGQuality,
		},
		Sizes: map[string]string{
			"thumbnail": defaultThumbnailSpec,
			"medium":    defaultMediumSpec,
		},
		Workflow: Workflow{
			SettleSeconds: defaultSettleSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Ingest:         true,
			Deletion:       true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
