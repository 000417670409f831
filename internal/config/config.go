// Package config holds the session configuration for the adapter.
// A Config is built once, before the REPL process starts, and passed
// by value everywhere afterwards; nothing mutates it at call time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the read-only configuration surface of the adapter.
type Config struct {
	// Binary overrides the REPL executable. Empty picks the
	// default binary for the selected variant.
	Binary string `yaml:"binary"`

	// UseGUIBinary selects the gracket variant instead of plain
	// racket. The variant runs in text mode but loads the GUI
	// libraries, which some user code needs.
	UseGUIBinary bool `yaml:"use_gui_binary"`

	// SupportDir is where the adapter's own Racket support code is
	// installed. It is prepended to the collection search path and
	// is also the prefix error filtering keys on.
	SupportDir string `yaml:"support_dir"`

	// CollectDirs are extra collection directories to put on the
	// REPL's search path.
	CollectDirs []string `yaml:"collect_dirs"`

	// InitFile is loaded before the adapter's bootstrap script,
	// when it exists and is readable.
	InitFile string `yaml:"init_file"`

	// ExtraFlags are appended verbatim to the REPL command line.
	ExtraFlags []string `yaml:"extra_flags"`

	// ExtraKeywords extend the highlighting keyword table.
	ExtraKeywords []string `yaml:"extra_keywords"`

	// CaseSensitive controls keyword matching.
	CaseSensitive bool `yaml:"case_sensitive"`

	// ReplyTimeout bounds every send-and-wait request to the REPL.
	// The caller gets a timeout error instead of blocking forever
	// on a wedged process.
	ReplyTimeout Duration `yaml:"reply_timeout"`
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = ".gracket.yaml"

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		SupportDir:    defaultSupportDir(),
		CaseSensitive: true,
		ReplyTimeout:  Duration(30 * time.Second),
	}
}

// Load reads a YAML configuration file and merges it over the
// defaults. A missing file is not an error: the defaults are
// returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.ReplyTimeout <= 0 {
		cfg.ReplyTimeout = Default().ReplyTimeout
	}
	return cfg, nil
}

// BinaryName returns the executable to launch: an explicit override,
// else the default for the selected variant.
func (c Config) BinaryName() string {
	if c.Binary != "" {
		return c.Binary
	}
	if c.UseGUIBinary {
		return "gracket-text"
	}
	return "racket"
}

// defaultSupportDir places the support code next to the user's
// config, mirroring where the installer drops it.
func defaultSupportDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gracket"
	}
	return filepath.Join(dir, "gracket")
}
