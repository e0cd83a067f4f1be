package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessera-ui/tessera/internal/config"
	"github.com/tessera-ui/tessera/pkg/block"
	"github.com/tessera-ui/tessera/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Serve the demo dashboard.

GET / renders the page, GET /live streams live patches over a
websocket, and GET /metrics exposes Prometheus metrics. Each live
session ticks once per second and flushes only the slots the tick
dirtied.

Examples:
  tessera serve
  tessera serve --port=8080
  tessera serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from tessera.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from tessera.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	heartbeat, err := cfg.HeartbeatInterval()
	if err != nil {
		return err
	}

	srv := server.New(
		func() *block.Instance { return demoInstance(0, 0) },
		&server.Config{
			Addr:              cfg.Addr(),
			PageTitle:         cfg.Server.PageTitle,
			HeartbeatInterval: heartbeat,
			DisableMetrics:    cfg.Server.DisableMetrics,
			OnSession:         driveSession,
		},
	)

	printBanner()
	info("serving on http://" + cfg.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

// driveSession advances the demo dashboard once per second until the
// session ends.
func driveSession(s *server.Session) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-s.Done():
			return
		case <-ticker.C:
			tick++
			if err := s.Update(demoInstance(tick, int(s.ID))); err != nil {
				return
			}
		}
	}
}
