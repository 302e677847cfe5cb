package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
)

// Validate checks the configuration for required fields and valid values.
// All problems are reported together, each prefixed with its field path.
func (c *Config) Validate() error {
	var errs []error

	if c.Backend.URL == "" {
		errs = append(errs, fmt.Errorf("backend.url is required"))
	} else if u, err := url.Parse(c.Backend.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend.url must be an absolute http(s) URL, got %q", c.Backend.URL))
	}

	if !strings.HasPrefix(c.Backend.ExecutePath, "/") {
		errs = append(errs, fmt.Errorf("backend.execute_path must start with \"/\", got %q", c.Backend.ExecutePath))
	}

	if c.Backend.Timeout < 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must be >= 0, got %v", c.Backend.Timeout))
	}

	if _, err := api.ParseLanguage(c.Editor.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("editor.default_language: %w", err))
	}

	for lang := range c.Editor.Placeholders {
		if _, err := api.ParseLanguage(lang); err != nil {
			errs = append(errs, fmt.Errorf("editor.placeholders.%s: %w", lang, err))
		}
	}

	for action, combo := range c.Editor.Keybindings {
		switch action {
		case ActionRun, ActionClear:
		default:
			errs = append(errs, fmt.Errorf("editor.keybindings: unknown action %q (want %q or %q)", action, ActionRun, ActionClear))
		}
		if strings.TrimSpace(combo) == "" {
			errs = append(errs, fmt.Errorf("editor.keybindings.%s must not be empty", action))
		}
	}

	if c.Editor.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("editor.font_size must be > 0, got %d", c.Editor.FontSize))
	}

	if !debug.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of TRACE, DEBUG, INFO, WARN, ERROR, got %q", c.Logging.Level))
	}
	if unknown := debug.UnknownCategories(c.Logging.Debug); len(unknown) > 0 {
		errs = append(errs, fmt.Errorf("logging.debug has unknown categories %v", unknown))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("server timeouts must be >= 0"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must be >= 0, got %v", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.Burst <= 0 {
		errs = append(errs, fmt.Errorf("server.burst must be > 0 when rate limiting is enabled, got %d", c.Server.Burst))
	}

	return errors.Join(errs...)
}
