package config

// Environment variables consulted during load.
const (
	ConfigEnv = "FWTRANSCRIBE_CONFIG"
	PythonEnv = "FWTRANSCRIBE_PYTHON"
)

const (
	defaultConfigPath  = "~/.config/fwtranscribe/config.toml"
	projectConfigName  = "fwtranscribe.toml"
	defaultStateDir    = "~/.local/share/fwtranscribe"
	defaultCacheName   = "transcripts.db"
	defaultModel       = "small"
	defaultDevice      = "auto"
	defaultComputeType = "int8"
	defaultBeamSize    = 1
	defaultVADFilter   = true
	defaultPython      = "python3"
	defaultLogFormat   = "console"
	defaultLogLevel    = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transcribe: Transcribe{
			Model:       defaultModel,
			Device:      defaultDevice,
			ComputeType: defaultComputeType,
			BeamSize:    defaultBeamSize,
			VADFilter:   defaultVADFilter,
		},
		Engine: Engine{
			Python:     defaultPython,
			DeviceLock: true,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
