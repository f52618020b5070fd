package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nocap-placify/placify"
	placifyhttp "github.com/nocap-placify/placify/pkg/adapters/http"
	"github.com/nocap-placify/placify/pkg/adapters/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the wizards as a JSON API with server-sent view updates,
Prometheus metrics and an OpenAPI description. With server.mcp_listen set,
the MCP tools are served over SSE alongside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Server.Listen = listen
		}
		watch, _ := cmd.Flags().GetBool("watch")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger, true)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				logger.Warn("shutdown incomplete", "err", err)
			}
		}()

		if watch {
			if cfg.Definitions == "" {
				return errors.New("--watch needs a definitions directory")
			}
			if err := a.engine.Watch(ctx); err != nil {
				return err
			}
			logger.Info("watching wizard definitions", "dir", cfg.Definitions)
		}

		opts := []placifyhttp.Option{
			placifyhttp.WithLogger(logger),
			placifyhttp.WithMetricsHandler(a.metrics.Handler()),
			placifyhttp.WithVersion(placify.Version),
		}
		for name, check := range a.checks {
			opts = append(opts, placifyhttp.WithHealthCheck(name, check))
		}
		api := placifyhttp.NewServer(a.engine, opts...)
		defer api.Close()

		srv := &http.Server{
			Addr:              cfg.Server.Listen,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("Placify server listening", "address", srv.Addr, "gateway", cfg.Gateway.Kind, "store", cfg.Store.Kind)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
			}
			logger.Info("Placify server stopped gracefully")
			return nil
		})
		if cfg.Server.MCPListen != "" {
			mcpSrv := mcp.NewServer(a.engine, placify.Version, mcp.WithLogger(logger))
			g.Go(func() error {
				return mcpSrv.ServeSSE(ctx, cfg.Server.MCPListen, "http://"+hostPort(cfg.Server.MCPListen))
			})
		}
		return g.Wait()
	},
}

// hostPort turns a listen address such as ":8081" into a dialable one.
func hostPort(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Address to listen on (overrides server.listen)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload wizard definitions when their files change")
}
