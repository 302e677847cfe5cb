package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rhuss/codepad/pkg/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the editor as MCP tools over stdio",
		Long: `Run an MCP server on stdin/stdout. Tools: run_code, set_language,
set_input, clear, get_state, languages. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(cmd.Context(), mcpserver.Options{
				Executor:        c,
				DefaultLanguage: a.defaultLanguage(),
				Placeholders:    a.placeholders(),
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
