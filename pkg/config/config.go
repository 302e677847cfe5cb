// Package config provides unified configuration for codepad.
//
// Configuration is loaded in layers:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (CODEPAD_ prefix)
//  4. File reference resolution (editor.placeholder_files)
//  5. Validation
package config

import "time"

// Config holds all configuration for the codepad CLI and mock backend.
type Config struct {
	Backend       BackendConfig       `yaml:"backend"`
	Editor        EditorConfig        `yaml:"editor"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
	Server        ServerConfig        `yaml:"server"`
}

// BackendConfig locates the execution service.
type BackendConfig struct {
	URL         string        `yaml:"url"`          // required
	ExecutePath string        `yaml:"execute_path"` // default: "/api/execute"
	Timeout     time.Duration `yaml:"timeout"`      // default: 0, no limit
}

// EditorConfig holds editor surface settings shared by all hosts.
type EditorConfig struct {
	DefaultLanguage  string            `yaml:"default_language"`  // default: "python"
	Theme            string            `yaml:"theme"`             // default: "vs-dark"
	FontSize         int               `yaml:"font_size"`         // default: 14
	Placeholders     map[string]string `yaml:"placeholders"`      // language -> starter code
	PlaceholderFiles map[string]string `yaml:"placeholder_files"` // language -> path, read into placeholders
	Keybindings      map[string]string `yaml:"keybindings"`       // action -> key combo
}

// LoggingConfig mirrors CODEPAD_LOG_LEVEL and CODEPAD_DEBUG.
type LoggingConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma-separated categories
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Addr    string `yaml:"addr"`    // default: ":9464", used when no server is running
	Path    string `yaml:"path"`    // default: "/metrics"
}

// ServerConfig holds settings for the mock backend's HTTP server.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8000
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
	RateLimit    float64       `yaml:"rate_limit"`    // requests/second per client, 0 disables
	Burst        int           `yaml:"burst"`         // default: 20
}

// Keybinding actions.
const (
	ActionRun   = "run"
	ActionClear = "clear"
)

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Backend: BackendConfig{
			URL:         "http://localhost:8000",
			ExecutePath: "/api/execute",
		},
		Editor: EditorConfig{
			DefaultLanguage: "python",
			Theme:           "vs-dark",
			FontSize:        14,
			Keybindings: map[string]string{
				ActionRun:   "ctrl+enter",
				ActionClear: "ctrl+l",
			},
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Addr: ":9464",
				Path: "/metrics",
			},
		},
		Server: ServerConfig{
			Port:         8000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			RateLimit:    10,
			Burst:        20,
		},
	}
}
