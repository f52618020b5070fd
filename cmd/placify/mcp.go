package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nocap-placify/placify"
	"github.com/nocap-placify/placify/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the wizards as MCP tools so that AI agents can walk a user through
a registration.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		listen, _ := cmd.Flags().GetString("listen")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := mcp.NewServer(a.engine, placify.Version, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting Placify MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			if listen == "" {
				listen = cfg.Server.MCPListen
			}
			if listen == "" {
				listen = ":8081"
			}
			if err := srv.ServeSSE(ctx, listen, "http://"+hostPort(listen)); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("listen", "", "Address to listen on (only for SSE, default server.mcp_listen or :8081)")
}
