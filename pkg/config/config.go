// Package config loads application settings from defaults, an optional JSON file and flag overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filetug/twinpane/pkg/fsutils"
	"github.com/filetug/twinpane/pkg/logging"
	"github.com/mitchellh/mapstructure"
)

// Config holds application settings. Keys of the JSON file and of overrides use the tag names.
type Config struct {
	// Root is the sandbox both panes browse within.
	Root string `json:"root" mapstructure:"root"`

	// LeftPath and RightPath are the folders the panes are confined to, relative to Root.
	LeftPath  string `json:"left" mapstructure:"left"`
	RightPath string `json:"right" mapstructure:"right"`

	LogLevel  string `json:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" mapstructure:"log_format"`
	LogFile   string `json:"log_file" mapstructure:"log_file"`

	MetricsAddr string `json:"metrics_addr" mapstructure:"metrics_addr"`
	PprofAddr   string `json:"pprof_addr" mapstructure:"pprof_addr"`

	ShowHidden bool `json:"show_hidden" mapstructure:"show_hidden"`
}

var osUserHomeDir = os.UserHomeDir
var osUserConfigDir = os.UserConfigDir

// Default returns settings that browse the home directory.
func Default() Config {
	root := "/"
	if home, err := osUserHomeDir(); err == nil {
		root = home
	}
	return Config{
		Root:      root,
		LeftPath:  "/",
		RightPath: "/",
		LogLevel:  "info",
		LogFormat: "json",
		LogFile:   filepath.Join(os.TempDir(), "twinpane.log"),
	}
}

// DefaultPath is the location of the optional config file.
func DefaultPath() string {
	dir, err := osUserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "twinpane", "config.json")
}

// Load reads path over the defaults and then applies overrides.
// A missing file is an error only when required is true.
func Load(path string, required bool, overrides map[string]any) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := fsutils.ReadJSONFile(fsutils.ExpandHome(path), required, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	if len(overrides) > 0 {
		if err := mapstructure.Decode(overrides, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to apply config overrides: %w", err)
		}
	}
	cfg.Root = fsutils.ExpandHome(cfg.Root)
	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	if c.Root == "" {
		errs = append(errs, errors.New("root is required"))
	} else if ok, err := fsutils.DirExists(c.Root); err != nil {
		errs = append(errs, fmt.Errorf("root %s: %w", c.Root, err))
	} else if !ok {
		errs = append(errs, fmt.Errorf("root %s is not an existing directory", c.Root))
	}
	for name, p := range map[string]string{"left": c.LeftPath, "right": c.RightPath} {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("%s path %q must start with /", name, p))
		}
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Logging returns the logging part of the settings.
func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		OutputPath: c.LogFile,
	}
}
