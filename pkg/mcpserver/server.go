// Package mcpserver exposes a headless execution controller as MCP tools.
//
// The server owns one ide.Controller backed by an in-memory editor and
// host, so an MCP client drives the same state machine a terminal user
// does: load code, pick a language and input, run, clear.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
	"github.com/rhuss/codepad/pkg/ide"
)

// Options configures a Server.
type Options struct {
	Executor        ide.Executor
	DefaultLanguage api.Language
	Placeholders    map[api.Language]string
	Name            string
	Version         string
	Logger          *slog.Logger
}

// Server is an MCP server around one controller.
type Server struct {
	ctrl   *ide.Controller
	editor *ide.MemoryEditor
	host   *ide.MemoryHost
	mcp    *mcp.Server
}

// New creates the controller and registers the tools.
func New(ctx context.Context, opts Options) (*Server, error) {
	s := &Server{host: ide.NewMemoryHost()}
	ctrl, err := ide.New(ctx, ide.Options{
		Executor: opts.Executor,
		EditorFactory: func(eo ide.EditorOptions) (ide.Editor, error) {
			s.editor = ide.NewMemoryEditor(eo)
			return s.editor, nil
		},
		Host:            s.host,
		Placeholders:    opts.Placeholders,
		DefaultLanguage: opts.DefaultLanguage,
		Keybindings:     map[string]string{},
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl

	name, version := opts.Name, opts.Version
	if name == "" {
		name = "codepad"
	}
	if version == "" {
		version = "v1.0.0"
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	s.registerTools()
	return s, nil
}

// Controller returns the controller the tools drive.
func (s *Server) Controller() *ide.Controller { return s.ctrl }

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Run serves MCP over t until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	debug.Log("mcp", "serving")
	return s.mcp.Run(ctx, t)
}

// RunCodeInput are the arguments of run_code.
type RunCodeInput struct {
	Code     *string `json:"code,omitempty" jsonschema:"source code to run; omit to run the current buffer"`
	Language string  `json:"language,omitempty" jsonschema:"python or javascript; defaults to the selected language"`
	Input    *string `json:"input,omitempty" jsonschema:"standard input for the program; omit to keep the current input"`
}

// RunCodeOutput is the structured result of run_code.
type RunCodeOutput struct {
	Output          string `json:"output"`
	Error           bool   `json:"error"`
	ExecutionTimeMs *int64 `json:"execution_time,omitempty"`
	MemoryUsedKB    *int64 `json:"memory_used,omitempty"`
}

// LanguageInput is the argument of set_language.
type LanguageInput struct {
	Language string `json:"language" jsonschema:"language name or alias such as py or js"`
}

// InputDataInput is the argument of set_input.
type InputDataInput struct {
	Input string `json:"input" jsonschema:"standard input for the next run"`
}

// StateOutput is the structured result of get_state.
type StateOutput struct {
	State ide.State `json:"state"`
	Code  string    `json:"code"`
	Input string    `json:"input"`
}

// LanguagesOutput lists the supported languages.
type LanguagesOutput struct {
	Languages []api.Language `json:"languages"`
	Selected  api.Language   `json:"selected"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "run_code",
		Description: "Runs code on the execution service and returns its output",
	}, s.runCode)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "set_language",
		Description: "Switches the language and replaces the buffer with its starter code",
	}, s.setLanguage)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "set_input",
		Description: "Sets the standard input used by the next run",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in InputDataInput) (*mcp.CallToolResult, struct{}, error) {
		s.host.SetInputData(in.Input)
		return textResult(fmt.Sprintf("input set (%d bytes)", len(in.Input)), false), struct{}{}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "clear",
		Description: "Clears the buffer, the input and the output",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, struct{}, error) {
		s.ctrl.Clear()
		return textResult("cleared", false), struct{}{}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_state",
		Description: "Returns the current phase, output, language, buffer and input",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, StateOutput, error) {
		out := StateOutput{State: s.ctrl.State(), Code: s.editor.GetValue(), Input: s.host.InputData()}
		return nil, out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "languages",
		Description: "Lists the supported languages",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, LanguagesOutput, error) {
		return nil, LanguagesOutput{Languages: api.Languages(), Selected: s.ctrl.State().Language}, nil
	})
}

func (s *Server) runCode(ctx context.Context, _ *mcp.CallToolRequest, in RunCodeInput) (*mcp.CallToolResult, RunCodeOutput, error) {
	if in.Language != "" {
		if err := s.ctrl.SelectLanguage(in.Language); err != nil {
			// Leave the raw value selected so the run renders the rejection.
			s.host.SetSelector(in.Language)
		}
	}
	if in.Code != nil {
		s.editor.SetValue(*in.Code)
	}
	if in.Input != nil {
		s.host.SetInputData(*in.Input)
	}
	debug.Log("mcp", "run_code", "language", s.host.SelectedLanguage(), "code_len", len(s.editor.GetValue()))

	res, err := s.ctrl.Run(ctx)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			err = errors.New(apiErr.Message)
		}
		text := "Error: " + err.Error()
		return textResult(text, true), RunCodeOutput{Output: text, Error: true}, nil
	}

	out := RunCodeOutput{
		Output:          res.Output,
		Error:           bool(res.Error),
		ExecutionTimeMs: res.ExecutionTimeMs,
		MemoryUsedKB:    res.MemoryUsedKB,
	}
	return textResult(res.Output, out.Error), out, nil
}

func (s *Server) setLanguage(_ context.Context, _ *mcp.CallToolRequest, in LanguageInput) (*mcp.CallToolResult, struct{}, error) {
	if err := s.ctrl.ChangeLanguage(in.Language); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return textResult(apiErr.Message, true), struct{}{}, nil
		}
		return nil, struct{}{}, err
	}
	lang := s.ctrl.State().Language
	return textResult(fmt.Sprintf("language set to %s\n\n%s", lang, s.ctrl.Placeholder(lang)), false), struct{}{}, nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}
