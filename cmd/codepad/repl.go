package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/rhuss/codepad/pkg/observability"
	"github.com/rhuss/codepad/pkg/terminal"
)

func newReplCmd(a *app) *cobra.Command {
	var (
		lang    string
		history string
		metrics bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive editor in the terminal",
		Long: `Start an interactive editing session.

Lines you type are added to the buffer; commands start with a colon
(:run, :clear, :lang, :input, :help). The run key binding (default
ctrl+enter) runs the buffer from anywhere on the line.

Features:
  - Command history (up/down arrows)
  - History search (Ctrl+R)
  - Prometheus metrics for executions (--metrics)

Press Ctrl+D or type :quit to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			language := a.defaultLanguage()
			if lang != "" {
				l, err := a.resolveLanguage(lang, "")
				if err != nil {
					return err
				}
				language = l
			}
			if history == "" {
				home, _ := os.UserHomeDir()
				history = filepath.Join(home, ".codepad_history")
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			sess, err := terminal.NewSession(ctx, terminal.Options{
				Executor:        c,
				Out:             cmd.OutOrStdout(),
				Color:           !noColor && readline.IsTerminal(int(os.Stdout.Fd())),
				DefaultLanguage: language,
				Placeholders:    a.placeholders(),
				Keybindings:     a.cfg.Editor.Keybindings,
				Theme:           a.cfg.Editor.Theme,
				FontSize:        a.cfg.Editor.FontSize,
			})
			if err != nil {
				return err
			}

			m := a.cfg.Observability.Metrics
			if metrics || m.Enabled {
				go func() {
					if err := observability.ServeMetrics(ctx, m.Addr, m.Path); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "metrics server: %v\n", err)
					}
				}()
			}

			rl, err := readline.NewEx(sess.ReadlineConfig(history))
			if err != nil {
				return fmt.Errorf("initializing readline: %w", err)
			}
			defer rl.Close()

			return sess.Serve(ctx, rl)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "initial language (default: from config)")
	cmd.Flags().StringVar(&history, "history", "", "history file path (default: ~/.codepad_history)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "serve Prometheus metrics (see observability.metrics)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}
