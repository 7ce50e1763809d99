package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by ui.backend.
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// LogDiscard disables logging when used as log.path.
const LogDiscard = "none"

// Config holds all editor settings.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	UI     UIConfig     `toml:"ui" yaml:"ui"`
	Files  FilesConfig  `toml:"files" yaml:"files"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig controls editing behavior.
type EditorConfig struct {
	TabStop       int  `toml:"tab_stop" yaml:"tab_stop"`
	WordWrap      bool `toml:"word_wrap" yaml:"word_wrap"`
	WideThreshold int  `toml:"wide_threshold" yaml:"wide_threshold"` // 0 disables narrowing
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	MessageTimeout Duration `toml:"message_timeout" yaml:"message_timeout"`
	IdleInterval   Duration `toml:"idle_interval" yaml:"idle_interval"`
	QuitAttempts   int      `toml:"quit_attempts" yaml:"quit_attempts"`
	Backend        string   `toml:"backend" yaml:"backend"`
}

// FilesConfig controls file handling.
type FilesConfig struct {
	CrashName string `toml:"crash_name" yaml:"crash_name"`
	Watch     bool   `toml:"watch" yaml:"watch"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	Path  string `toml:"path" yaml:"path"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabStop:       4,
			WordWrap:      true,
			WideThreshold: 100,
		},
		UI: UIConfig{
			MessageTimeout: Duration(5 * time.Second),
			IdleInterval:   Duration(time.Second),
			QuitAttempts:   3,
			Backend:        BackendTcell,
		},
		Files: FilesConfig{
			CrashName: "untitled",
			Watch:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves the configuration from defaults, the file at path (if path
// is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the settings in the file at path into c. The format is
// chosen by extension; keys missing from the file keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return c.parseTOML(path, data)
	case ".yaml", ".yml":
		return c.parseYAML(path, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func (c *Config) parseTOML(path string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		perr := &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func (c *Config) parseYAML(path string, data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}

// LogFile returns the log file path. An empty log.path selects a file in the
// temporary directory; LogDiscard returns "".
func (c *Config) LogFile() string {
	switch c.Log.Path {
	case "":
		return filepath.Join(os.TempDir(), "textmagic.log")
	case LogDiscard:
		return ""
	default:
		return c.Log.Path
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Editor.TabStop < 1 || c.Editor.TabStop > 16 {
		return &ValidationError{Key: "editor.tab_stop", Value: c.Editor.TabStop, Message: "must be between 1 and 16"}
	}
	if c.Editor.WideThreshold < 0 {
		return &ValidationError{Key: "editor.wide_threshold", Value: c.Editor.WideThreshold, Message: "must not be negative"}
	}
	if c.UI.MessageTimeout <= 0 {
		return &ValidationError{Key: "ui.message_timeout", Value: c.UI.MessageTimeout, Message: "must be positive"}
	}
	if c.UI.IdleInterval <= 0 {
		return &ValidationError{Key: "ui.idle_interval", Value: c.UI.IdleInterval, Message: "must be positive"}
	}
	if c.UI.QuitAttempts < 0 {
		return &ValidationError{Key: "ui.quit_attempts", Value: c.UI.QuitAttempts, Message: "must not be negative"}
	}
	switch c.UI.Backend {
	case BackendTcell, BackendANSI:
	default:
		return &ValidationError{Key: "ui.backend", Value: c.UI.Backend, Message: "must be tcell or ansi"}
	}
	if c.Files.CrashName == "" || strings.ContainsAny(c.Files.CrashName, `/\`) {
		return &ValidationError{Key: "files.crash_name", Value: c.Files.CrashName, Message: "must be a plain file name"}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Key: "log.level", Value: c.Log.Level, Message: "must be debug, info, warn or error"}
	}
	return nil
}
