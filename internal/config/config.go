package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/quillpad/internal/config/loader"
	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/logging"
)

// Limits for editor.tab_width.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// Config holds every Quillpad setting.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Logging   LoggingConfig   `toml:"logging"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Watch     WatchConfig     `toml:"watch"`

	// path is the file the settings were read from, if any.
	path string
}

// EditorConfig holds editing and display settings.
type EditorConfig struct {
	// TabWidth is the number of columns a tab adds.
	TabWidth int `toml:"tab_width"`

	// SaveEncoding names the per-character encoder used on save
	// ("utf-8" or "latin1").
	SaveEncoding string `toml:"save_encoding"`

	// ScrollMargin is the number of lines kept visible above and below
	// the cursor.
	ScrollMargin int `toml:"scroll_margin"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ClipboardConfig selects the clipboard register.
type ClipboardConfig struct {
	// System uses the OS clipboard when available.
	System bool `toml:"system"`
}

// WatchConfig controls external modification detection.
type WatchConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:     4,
			SaveEncoding: "utf-8",
			ScrollMargin: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "quillpad.log"),
		},
		Clipboard: ClipboardConfig{System: true},
		Watch:     WatchConfig{Enabled: true},
	}
}

// DefaultPath returns the user config file location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quillpad", "config.toml")
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs     loader.FileSystem
	useEnv bool
}

// WithFileSystem reads the config file through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithoutEnv skips environment overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.useEnv = false
	}
}

// Load builds the configuration from defaults, the file at path (or
// DefaultPath when path is empty) and the environment, then validates it.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	if path == "" {
		path = DefaultPath()
	}

	var merged map[string]any
	if path != "" {
		data, err := loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if o.useEnv {
		env, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged settings map over the current values.
func (c *Config) apply(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	raw, err := toml.Marshal(data)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}

// Path returns the config file the settings were loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < MinTabWidth || c.Editor.TabWidth > MaxTabWidth {
		return &ValidationError{
			Path:    "editor.tab_width",
			Message: fmt.Sprintf("must be between %d and %d", MinTabWidth, MaxTabWidth),
			Value:   c.Editor.TabWidth,
		}
	}
	if c.Editor.ScrollMargin < 0 {
		return &ValidationError{
			Path:    "editor.scroll_margin",
			Message: "must not be negative",
			Value:   c.Editor.ScrollMargin,
		}
	}
	if _, err := buffer.EncoderByName(c.Editor.SaveEncoding); err != nil {
		return &ValidationError{
			Path:    "editor.save_encoding",
			Message: "unknown encoding",
			Value:   c.Editor.SaveEncoding,
		}
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Logging.Level,
		}
	}
	return nil
}

// Encoder returns the save encoder selected by editor.save_encoding.
func (c *Config) Encoder() (buffer.EncodeFunc, error) {
	return buffer.EncoderByName(c.Editor.SaveEncoding)
}

// LogLevel returns the parsed logging.level, or LevelInfo if it is invalid.
func (c *Config) LogLevel() logging.Level {
	if lvl, ok := logging.ParseLevel(c.Logging.Level); ok {
		return lvl
	}
	return logging.LevelInfo
}
