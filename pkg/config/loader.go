package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rhuss/codepad/pkg/debug"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, CODEPAD_CONFIG env, ./codepad.yaml,
//     $XDG_CONFIG_HOME/codepad/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (placeholder_files)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
		debug.Log("config", "loaded config file", "path", filePath)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := resolveFileReferences(&cfg, filePath); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. CODEPAD_CONFIG environment variable
// 3. ./codepad.yaml in the current directory
// 4. $XDG_CONFIG_HOME/codepad/config.yaml (or ~/.config/codepad/config.yaml)
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("CODEPAD_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{"codepad.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "codepad", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
// Keybindings are merged so a file that rebinds "run" keeps the default "clear".
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	defaults := cfg.Editor.Keybindings
	cfg.Editor.Keybindings = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	merged := make(map[string]string, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range cfg.Editor.Keybindings {
		merged[k] = v
	}
	cfg.Editor.Keybindings = merged
	return nil
}

// applyEnvOverrides maps CODEPAD_* environment variables to config fields.
// Malformed numeric or duration values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CODEPAD_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("CODEPAD_LANGUAGE"); v != "" {
		cfg.Editor.DefaultLanguage = v
	}
	if v := os.Getenv("CODEPAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CODEPAD_TIMEOUT: %w", err)
		}
		cfg.Backend.Timeout = d
	}
	if v := os.Getenv("CODEPAD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CODEPAD_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CODEPAD_RATE_LIMIT"); v != "" {
		rl, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CODEPAD_RATE_LIMIT: %w", err)
		}
		cfg.Server.RateLimit = rl
	}
	if v := os.Getenv("CODEPAD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CODEPAD_DEBUG"); v != "" {
		cfg.Logging.Debug = v
	}
	return nil
}

// resolveFileReferences reads editor.placeholder_files into editor.placeholders.
// An inline placeholder wins over a file for the same language. Relative
// paths resolve against the directory of the config file.
func resolveFileReferences(cfg *Config, configFile string) error {
	if len(cfg.Editor.PlaceholderFiles) == 0 {
		return nil
	}
	if cfg.Editor.Placeholders == nil {
		cfg.Editor.Placeholders = make(map[string]string)
	}

	langs := make([]string, 0, len(cfg.Editor.PlaceholderFiles))
	for lang := range cfg.Editor.PlaceholderFiles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		if _, ok := cfg.Editor.Placeholders[lang]; ok {
			continue
		}
		path := cfg.Editor.PlaceholderFiles[lang]
		if !filepath.IsAbs(path) && configFile != "" {
			path = filepath.Join(filepath.Dir(configFile), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("editor.placeholder_files.%s: %w", lang, err)
		}
		cfg.Editor.Placeholders[lang] = strings.TrimRight(string(data), "\n")
	}
	return nil
}
