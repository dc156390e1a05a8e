package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/inspect"
)

func inspectCmd() *cobra.Command {
	var pagesDir string
	var addr string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve the live route-table inspector",
		Long: `Compiles the pages tree and serves a read-only inspector:

  GET /routes            the full route manifest as JSON
  GET /match?path=...    probe a match (add &source=... for intercepts)
  GET /resolve?pattern=  resolve layouts, error pages, slots
  GET /ws                websocket stream of manifest snapshots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := loadProjectRouter(pagesDir)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.InspectAddress()
			}

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			server := inspect.NewServer(r, log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printBanner()
			info("inspector: http://%s/routes", addr)
			info("%d routes compiled", len(r.Routes()))
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages", "", "pages directory (overrides wayfind.json)")
	cmd.Flags().StringVar(&addr, "addr", "", "bind address (overrides wayfind.json)")
	return cmd
}
