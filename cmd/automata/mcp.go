package main

import (
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the registered automata as MCP tools, so agents can classify
strings and inspect definitions.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr: stdout carries JSON-RPC.
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		log.SetOutput(cmd.ErrOrStderr())

		srv := mcp.NewServer(a.engine, automata.Version, a.logger)

		switch transport {
		case "stdio":
			a.logger.Info("starting MCP server (stdio)", "automata", len(a.engine.List()))
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			a.logger.Info("starting MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			a.logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q: supported are stdio and sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
