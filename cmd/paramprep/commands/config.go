package commands

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
	LogFormatZap  = "zap"
)

// Config holds settings shared by the prepare and describe commands.
//
// Values are layered: built-in defaults, then an optional TOML file, then
// PARAMPREP_* environment variables, then command-line flags.
//
//	log_level  = "debug"
//	log_format = "json"
//	location   = "query"
//	max_depth  = 16
//	format     = "yaml"
type Config struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Location  string `toml:"location"`
	MaxDepth  int    `toml:"max_depth"`
	Format    string `toml:"format"`
}

// DefaultConfig returns the built-in defaults. Logging is off unless a
// level is configured.
func DefaultConfig() *Config {
	return &Config{
		LogFormat: LogFormatText,
		Location:  string(request.LocationBody),
		MaxDepth:  param.DefaultMaxDepth,
		Format:    FormatText,
	}
}

// LoadConfig builds a Config from the defaults, the TOML file at path (when
// path is non-empty) and the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("loading config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PARAMPREP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PARAMPREP_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("PARAMPREP_LOCATION"); v != "" {
		c.Location = v
	}
	if v := os.Getenv("PARAMPREP_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("PARAMPREP_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PARAMPREP_MAX_DEPTH '%s': %w", v, err)
		}
		c.MaxDepth = n
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log level '%s'. Valid levels: debug, info, warn, error", c.LogLevel)
		}
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON, LogFormatZap:
	default:
		return fmt.Errorf("invalid log format '%s'. Valid formats: %s, %s, %s", c.LogFormat, LogFormatText, LogFormatJSON, LogFormatZap)
	}
	if _, err := ParseLocation(c.Location); err != nil {
		return err
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("invalid max depth %d: must be at least 1", c.MaxDepth)
	}
	return ValidateOutputFormat(c.Format)
}

// NewLogger creates the logger described by the config, writing to w. It
// returns param.NopLogger when no level is set. The returned function
// flushes buffered output.
func (c *Config) NewLogger(w io.Writer) (param.Logger, func(), error) {
	if c.LogLevel == "" {
		return param.NopLogger{}, func() {}, nil
	}
	zl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level '%s'", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatZap:
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			zl,
		)
		logger := zap.New(core)
		return param.NewZapAdapter(logger), func() { _ = logger.Sync() }, nil
	case LogFormatJSON, LogFormatText:
		opts := &slog.HandlerOptions{Level: slogLevel(zl)}
		var handler slog.Handler
		if c.LogFormat == LogFormatJSON {
			handler = slog.NewJSONHandler(w, opts)
		} else {
			handler = slog.NewTextHandler(w, opts)
		}
		return param.NewSlogAdapter(slog.New(handler)), func() {}, nil
	}
	return nil, nil, fmt.Errorf("invalid log format '%s'", c.LogFormat)
}

func slogLevel(l zapcore.Level) slog.Level {
	switch {
	case l <= zapcore.DebugLevel:
		return slog.LevelDebug
	case l == zapcore.InfoLevel:
		return slog.LevelInfo
	case l == zapcore.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// commonFlags binds the config flags shared by prepare and describe.
// String flags left empty keep the configured value.
type commonFlags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Location   string
	Format     string
	MaxDepth   int
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "path to a TOML config file")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, or error (default: no logging)")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: text, json, or zap (default text)")
	fs.StringVar(&f.Location, "location", "", "parameter location: path, query, header, cookie, or body (default body)")
	fs.StringVar(&f.Location, "l", "", "parameter location (shorthand)")
	fs.StringVar(&f.Format, "format", "", "output format: text, json, or yaml (default text)")
	fs.IntVar(&f.MaxDepth, "max-depth", 0, "deepest accepted nesting of input values (default 64)")
}

func (f *commonFlags) config() (*Config, error) {
	cfg, err := LoadConfig(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
	if f.Location != "" {
		cfg.Location = f.Location
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}
	if f.MaxDepth != 0 {
		cfg.MaxDepth = f.MaxDepth
	}
	return cfg, cfg.Validate()
}
