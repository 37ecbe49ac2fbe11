package config

const (
	defaultLibraryDir       = "~/facereel/images"
	defaultLogDir           = "~/.local/share/facereel/logs"
	defaultLandmarksCommand = "facemark"
	defaultReferenceFPS     = 12
	defaultFFmpegBinary     = "ffmpeg"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Alignment: Alignment{
			LandmarksCommand: defaultLandmarksCommand,
		},
		Compile: Compile{
			ReferenceFPS: defaultReferenceFPS,
		},
		Tools: Tools{
			FFmpegBinary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
