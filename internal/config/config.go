// Package config loads the persisted xlsd settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// EnvPath overrides the default config location.
const EnvPath = "XLSD_CONFIG"

// Config holds the user settings.
type Config struct {
	// Columns selects and orders the long listing columns
	Columns []string `yaml:"columns"`

	// IconSources is the order in which icon sources are asked
	IconSources []string `yaml:"icon_sources"`

	// SortMethod names the sort strategy (directories-first, alphabetical, as-is)
	SortMethod string `yaml:"sort_method"`

	// LSColors is an LS_COLORS style rule string; empty means use $LS_COLORS
	LSColors string `yaml:"ls_colors"`

	// Palette overrides base styles by key (reset, emphasis, owner_user, ...)
	Palette map[string]string `yaml:"palette"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// FallbackCommand runs instead of xlsd when stdout is not a terminal
	FallbackCommand string `yaml:"fallback_command"`

	// TreeDepth limits tree recursion (0 = unlimited)
	TreeDepth int `yaml:"tree_depth"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Columns:         []string{"mode", "hardlinks", "uid", "gid", "size", "mtime", "name"},
		IconSources:     []string{"extension", "content-sniff"},
		SortMethod:      "directories-first",
		LogLevel:        "warn",
		FallbackCommand: "ls",
	}
}

// DefaultPath returns $XLSD_CONFIG, or config.yaml in the user config
// directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xlsd", "config.yaml")
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error. The format is picked from the extension: .ini, .conf and .rc are
// INI files, anything else is YAML.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".conf", ".rc":
		file, err = parseINI(data)
	default:
		file, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.merge(file)
	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// parseINI reads the [xlsd] section, lists being comma separated, and the
// optional [palette] section.
func parseINI(data []byte) (*Config, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	section := f.Section("xlsd")
	c := &Config{
		Columns:         list(section.Key("columns").String()),
		IconSources:     list(section.Key("icon_sources").String()),
		SortMethod:      section.Key("sort_method").String(),
		LSColors:        section.Key("ls_colors").String(),
		LogLevel:        section.Key("log_level").String(),
		FallbackCommand: section.Key("fallback_command").String(),
	}
	if section.HasKey("tree_depth") {
		depth, err := section.Key("tree_depth").Int()
		if err != nil {
			return nil, fmt.Errorf("tree_depth: %w", err)
		}
		c.TreeDepth = depth
	}
	if palette, err := f.GetSection("palette"); err == nil {
		c.Palette = palette.KeysHash()
	}
	return c, nil
}

func list(v string) []string {
	var out []string
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// merge applies the non-zero values of file.
func (c *Config) merge(file *Config) {
	if len(file.Columns) > 0 {
		c.Columns = file.Columns
	}
	if len(file.IconSources) > 0 {
		c.IconSources = file.IconSources
	}
	if file.SortMethod != "" {
		c.SortMethod = file.SortMethod
	}
	if file.LSColors != "" {
		c.LSColors = file.LSColors
	}
	if len(file.Palette) > 0 {
		c.Palette = file.Palette
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.FallbackCommand != "" {
		c.FallbackCommand = file.FallbackCommand
	}
	if file.TreeDepth != 0 {
		c.TreeDepth = file.TreeDepth
	}
}

// ColorRules returns the configured LS_COLORS text, falling back to the
// environment.
func (c *Config) ColorRules() string {
	if c.LSColors != "" {
		return c.LSColors
	}
	return os.Getenv("LS_COLORS")
}

// Validate checks the values that cannot be degraded gracefully.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.TreeDepth < 0 {
		return fmt.Errorf("tree_depth must be >= 0, got %d", c.TreeDepth)
	}
	if strings.TrimSpace(c.FallbackCommand) == "" {
		return errors.New("fallback_command must not be empty")
	}
	return nil
}
