package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/vscroll/internal/log"
	"github.com/qjebbs/go-jsons"
)

// Load reads the global, data and project configuration files, merges them in
// that order, applies environment overrides and defaults, and validates the
// result.
func Load(workingDir string, debug bool) (*Config, error) {
	configPaths := []string{
		GlobalConfig(),
		GlobalConfigData(),
	}
	configPaths = append(configPaths, lookupConfigs(workingDir)...)

	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}

	cfg.dataConfigDir = GlobalConfigData()
	cfg.setDefaults(workingDir)
	applyEnv(cfg, os.Getenv)

	if debug {
		cfg.Options.Debug = true
	}

	if err := cfg.Viewport.Validate(); err != nil {
		return nil, fmt.Errorf("invalid viewport config: %w", err)
	}

	if log.Initialized() {
		slog.Debug("Config loaded", "paths", configPaths, "target", cfg.Viewport.ScrollTarget)
	}
	return cfg, nil
}

// DataLogFile is where the interactive demo writes its log.
func (c *Config) DataLogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", fmt.Sprintf("%s.log", appName))
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Viewport == nil {
		c.Viewport = &ViewportConfig{}
	}
	if c.Viewport.Orientation == "" {
		c.Viewport.Orientation = OrientationVertical
	}
	if c.Viewport.ScrollTarget == "" {
		c.Viewport.ScrollTarget = ScrollTargetSelf
	}
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	if c.Options.Source == nil {
		c.Options.Source = &SourceOptions{}
	}
	if c.Options.Source.Count == 0 {
		c.Options.Source.Count = defaultItemCount
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	}
}

// applyEnv lets VSCROLL_* variables override single settings; .env files are
// loaded into the environment at startup.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("VSCROLL_ORIENTATION"); v != "" {
		cfg.Viewport.Orientation = Orientation(strings.ToLower(v))
	}
	if v := getenv("VSCROLL_SCROLL_TARGET"); v != "" {
		cfg.Viewport.ScrollTarget = ScrollTarget(strings.ToLower(v))
	}
	if v := getenv("VSCROLL_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Viewport.BufferAmount = n
		} else {
			slog.Warn("Ignoring invalid VSCROLL_BUFFER", "value", v, "error", err)
		}
	}
	if v := getenv("VSCROLL_SCROLL_ANIMATION_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Viewport.ScrollAnimationMS = &n
		} else {
			slog.Warn("Ignoring invalid VSCROLL_SCROLL_ANIMATION_MS", "value", v, "error", err)
		}
	}
	if v := getenv("VSCROLL_DEBUG"); v != "" {
		cfg.Options.Debug, _ = strconv.ParseBool(v)
	}
}

func lookupConfigs(workingDir string) []string {
	var found []string
	for _, name := range []string{appName + ".json", "." + appName + ".json"} {
		path := filepath.Join(workingDir, name)
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	return found
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}

	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return LoadReader(bytes.NewReader(merged))
}

func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	return &config, err
}

// GlobalConfig returns the global configuration file path for the application.
func GlobalConfig() string {
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// return the path to the main config directory
	// for windows, it should be in `%LOCALAPPDATA%/vscroll/`
	// for linux and macOS, it should be in `$HOME/.config/vscroll/`
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(os.Getenv("HOME"), ".config", appName, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the main data directory for the application.
// this config is used when the app overrides configurations instead of updating the global config.
func GlobalConfigData() string {
	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// return the path to the main data directory
	// for windows, it should be in `%LOCALAPPDATA%/vscroll/`
	// for linux and macOS, it should be in `$HOME/.local/share/vscroll/`
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(os.Getenv("HOME"), ".local", "share", appName, fmt.Sprintf("%s.json", appName))
}
