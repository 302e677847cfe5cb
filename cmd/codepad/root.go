package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/client"
	"github.com/rhuss/codepad/pkg/config"
	"github.com/rhuss/codepad/pkg/debug"
)

// errFailed reports a run or submission that failed after its outcome was
// already printed.
var errFailed = errors.New("failed")

// app carries state shared by all subcommands.
type app struct {
	configPath string
	backendURL string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "codepad",
		Short: "Edit and run Python and JavaScript against a remote execution service",
		Long: `codepad - an editor front end for a codepad execution service.

Code is sent to the service's /api/execute endpoint as
{language, code, input_data}; its {output, error} reply is shown as-is.
Nothing runs locally.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: discovered)")
	root.PersistentFlags().StringVar(&a.backendURL, "backend", "", "execution service URL (overrides config)")

	root.AddCommand(
		newReplCmd(a),
		newRunCmd(a),
		newMCPCmd(a),
		newProblemsCmd(a),
		newProblemCmd(a),
		newSubmitCmd(a),
		newLanguagesCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backendURL != "" {
		cfg.Backend.URL = a.backendURL
	}
	debug.InitWriter(cmd.ErrOrStderr(), cfg.Logging.Debug, cfg.Logging.Level)
	slog.Debug("configuration loaded", "backend", cfg.Backend.URL, "language", cfg.Editor.DefaultLanguage)
	a.cfg = cfg
	return nil
}

func (a *app) client() (*client.Client, error) {
	return client.New(a.cfg.Backend.URL,
		client.WithExecutePath(a.cfg.Backend.ExecutePath),
		client.WithTimeout(a.cfg.Backend.Timeout),
	)
}

// placeholders converts the configured placeholders to canonical languages.
// Validation has already rejected unknown names.
func (a *app) placeholders() map[api.Language]string {
	out := make(map[api.Language]string, len(a.cfg.Editor.Placeholders))
	for name, text := range a.cfg.Editor.Placeholders {
		if lang, err := api.ParseLanguage(name); err == nil {
			out[lang] = text
		}
	}
	return out
}

func (a *app) defaultLanguage() api.Language {
	lang, err := api.ParseLanguage(a.cfg.Editor.DefaultLanguage)
	if err != nil {
		return api.DefaultLanguage
	}
	return lang
}

// resolveLanguage picks the language from an explicit flag, then the file
// name, then the configured default.
func (a *app) resolveLanguage(flag, filename string) (api.Language, error) {
	if flag != "" {
		return api.ParseLanguage(flag)
	}
	if lang, ok := api.LanguageFromFilename(filename); ok {
		return lang, nil
	}
	return a.defaultLanguage(), nil
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, l := range api.Languages() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", l, strings.TrimPrefix(l.Extension(), "."))
			}
			return nil
		},
	}
}
