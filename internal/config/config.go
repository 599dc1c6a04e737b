package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/logfacade/facade"
)

// Supported backends.
const (
	BackendZap     = "zap"
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
	BackendLogrus  = "logrus"
	BackendNop     = "nop"
)

// Supported formats. Console is only understood by zap.
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// Supported outputs.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

const (
	// DefaultConfigFilename is the default filename for logging settings.
	DefaultConfigFilename = "logfacade.yaml"

	// DefaultFilePath is where file output is written when no path is set.
	DefaultFilePath = "logfacade.log"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// FileConfig holds rotation settings for file output.
type FileConfig struct {
	// Path is the log file location.
	Path string `yaml:"path" env:"LOGFACADE_FILE_PATH" env-default:"logfacade.log"`
	// MaxSizeMB is the size in megabytes that triggers rotation.
	MaxSizeMB int `yaml:"max_size_mb" env:"LOGFACADE_FILE_MAX_SIZE_MB" env-default:"100"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `yaml:"max_backups" env:"LOGFACADE_FILE_MAX_BACKUPS" env-default:"3"`
	// MaxAgeDays is the age in days after which rotated files are removed.
	MaxAgeDays int `yaml:"max_age_days" env:"LOGFACADE_FILE_MAX_AGE_DAYS" env-default:"7"`
	// Compress gzips rotated files.
	Compress bool `yaml:"compress" env:"LOGFACADE_FILE_COMPRESS" env-default:"true"`
}

// Config selects and tunes the logging backend behind the facade.
type Config struct {
	// Backend names the logging implementation.
	Backend string `yaml:"backend" env:"LOGFACADE_BACKEND" env-default:"zap"`
	// Level is the minimum level written.
	Level string `yaml:"level" env:"LOGFACADE_LEVEL" env-default:"info"`
	// Format is the encoding; empty picks the backend default.
	Format string `yaml:"format" env:"LOGFACADE_FORMAT"`
	// Output is where records go.
	Output string `yaml:"output" env:"LOGFACADE_OUTPUT" env-default:"stderr"`
	// File configures file output.
	File FileConfig `yaml:"file"`
	// DisallowEmptyNames makes the factory reject the empty logger name.
	DisallowEmptyNames bool `yaml:"disallow_empty_names" env:"LOGFACADE_DISALLOW_EMPTY_NAMES"`
	// InternalPackages are wrapper packages skipped by call-site attribution.
	InternalPackages []string `yaml:"internal_packages" env:"LOGFACADE_INTERNAL_PACKAGES" env-separator:","`
	// Levels maps logger name prefixes to levels. Only the zap backend honors it.
	Levels map[string]string `yaml:"levels,omitempty"`
	// Metrics enables Prometheus counters.
	Metrics bool `yaml:"metrics" env:"LOGFACADE_METRICS"`
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownBackend is returned for an unsupported backend name.
	errUnknownBackend = errors.New("unknown backend")
	// errUnknownLevel is returned for an unparsable level.
	errUnknownLevel = errors.New("unknown level")
	// errUnknownFormat is returned for a format the backend cannot produce.
	errUnknownFormat = errors.New("unknown format")
	// errUnknownOutput is returned for an unsupported output.
	errUnknownOutput = errors.New("unknown output")
	// errFilePathRequired is returned when file output has no path.
	errFilePathRequired = errors.New("file path must be provided for file output")
	// errLevelsUnsupported is returned when per-name levels are set for a backend other than zap.
	errLevelsUnsupported = errors.New("per-name levels are only supported by the zap backend")
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	backends = []string{BackendZap, BackendSlog, BackendZerolog, BackendLogrus, BackendNop}
	outputs  = []string{OutputStdout, OutputStderr, OutputFile}
)

// Default returns the configuration used when neither a file nor environment variables are set.
func Default() *Config {
	return fillDefaults(&Config{
		Backend: BackendZap,
		Level:   facade.InfoLevel.String(),
		Output:  OutputStderr,
		File: FileConfig{
			Path:       DefaultFilePath,
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	})
}

// Load reads configuration from path, applies environment overrides and validates it.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(filepath.Clean(path), &cfg); err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	return data, nil
}

// Validate checks the settings, normalizes case and fills dependent defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	fillDefaults(cfg)

	if !slices.Contains(backends, cfg.Backend) {
		return fmt.Errorf("%w %q", errUnknownBackend, cfg.Backend)
	}

	if _, ok := facade.ParseLevel(cfg.Level); !ok {
		return fmt.Errorf("%w %q", errUnknownLevel, cfg.Level)
	}

	if !formatSupported(cfg.Backend, cfg.Format) {
		return fmt.Errorf("%w %q for backend %s", errUnknownFormat, cfg.Format, cfg.Backend)
	}

	if !slices.Contains(outputs, cfg.Output) {
		return fmt.Errorf("%w %q", errUnknownOutput, cfg.Output)
	}

	if cfg.Output == OutputFile && cfg.File.Path == "" {
		return errFilePathRequired
	}

	if len(cfg.Levels) > 0 && cfg.Backend != BackendZap {
		return errLevelsUnsupported
	}

	for prefix, level := range cfg.Levels {
		if _, ok := facade.ParseLevel(level); !ok {
			return fmt.Errorf("%w %q for logger %q", errUnknownLevel, level, prefix)
		}
	}

	return nil
}

// fillDefaults normalizes fields and sets the values left empty.
func fillDefaults(cfg *Config) *Config {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	if cfg.Backend == "" {
		cfg.Backend = BackendZap
	}

	if cfg.Level == "" {
		cfg.Level = facade.InfoLevel.String()
	}

	if cfg.Output == "" {
		cfg.Output = OutputStderr
	}

	// Set default format of the backend if not specified.
	if cfg.Format == "" {
		cfg.Format = FormatText
		if cfg.Backend == BackendZap {
			cfg.Format = FormatConsole
		}
	}

	if cfg.Output == OutputFile && cfg.File.Path == "" {
		cfg.File.Path = DefaultFilePath
	}

	return cfg
}

// formatSupported reports whether backend can produce format.
func formatSupported(backend, format string) bool {
	switch format {
	case FormatConsole:
		return backend == BackendZap
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}
