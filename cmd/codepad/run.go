package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/ide"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		lang      string
		code      string
		input     string
		inputFile string
		stats     bool
	)
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a program once and print its output",
		Long: `Run code from a file, an inline string (--code) or stdin ("-" or no
argument) and print the service's output. Output the service flags as an
error goes to stderr and the command exits non-zero.

The language comes from --lang, then the file extension, then the
configured default.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}
			source, err := readSource(cmd.InOrStdin(), code, filename)
			if err != nil {
				return err
			}
			language, err := a.resolveLanguage(lang, filename)
			if err != nil {
				return err
			}
			stdin, err := readInput(input, inputFile)
			if err != nil {
				return err
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			host := ide.NewMemoryHost()
			ctrl, err := ide.New(cmd.Context(), ide.Options{
				Executor:        c,
				EditorFactory:   func(o ide.EditorOptions) (ide.Editor, error) { return ide.NewMemoryEditor(o), nil },
				Host:            host,
				DefaultLanguage: language,
				Keybindings:     map[string]string{},
			})
			if err != nil {
				return err
			}

			res, err := ctrl.Submit(cmd.Context(), language, source, stdin)
			if err != nil {
				// The display already carries the failure text.
				slog.Debug("run failed", "language", language, "error", err)
			}
			d := ctrl.State().Display
			w := cmd.OutOrStdout()
			if d.IsError {
				w = cmd.ErrOrStderr()
			}
			fmt.Fprint(w, d.Text)
			if d.Text != "" && !strings.HasSuffix(d.Text, "\n") {
				fmt.Fprintln(w)
			}
			if stats {
				printStats(cmd.ErrOrStderr(), res)
			}
			if d.IsError {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language: python, javascript (default: from file extension)")
	cmd.Flags().StringVarP(&code, "code", "e", "", "code to run instead of a file")
	cmd.Flags().StringVarP(&input, "input", "i", "", "program input")
	cmd.Flags().StringVar(&inputFile, "input-file", "", "read program input from a file")
	cmd.Flags().BoolVar(&stats, "stats", false, "print execution time and memory to stderr")
	return cmd
}

func readSource(stdin io.Reader, code, filename string) (string, error) {
	switch {
	case code != "":
		if filename != "" {
			return "", fmt.Errorf("--code and a file argument are mutually exclusive")
		}
		return code, nil
	case filename == "" || filename == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func readInput(input, inputFile string) (string, error) {
	if inputFile == "" {
		return input, nil
	}
	if input != "" {
		return "", fmt.Errorf("--input and --input-file are mutually exclusive")
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printStats(w io.Writer, res api.ExecutionResult) {
	if res.ExecutionTimeMs != nil {
		fmt.Fprintf(w, "time: %d ms\n", *res.ExecutionTimeMs)
	}
	if res.MemoryUsedKB != nil {
		fmt.Fprintf(w, "memory: %d KB\n", *res.MemoryUsedKB)
	}
}
