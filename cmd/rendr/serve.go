package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/rendr/internal/demo"
	"github.com/vango-dev/rendr/pkg/live"
	"github.com/vango-dev/rendr/pkg/telemetry"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		addr       string
		statsDelay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live demo",
		Long: `Serve the counter and todo demo. The browser receives host
operations over a WebSocket and sends events back.

Routes:
  /          demo page
  /ws        operation stream
  /healthz   liveness
  /metrics   Prometheus metrics (serve.metricsPath in rendr.yaml)

Examples:
  rendr serve
  rendr serve --addr 0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger := cfg.Logger(os.Stderr)
			lc := cfg.LiveConfig(logger)
			lc.Metrics = telemetry.NewMetrics(telemetry.WithRegistry(prometheus.DefaultRegisterer))
			lc.Tracer = telemetry.NewTracer("")

			srv := live.NewServer(demo.View(demo.Options{StatsDelay: statsDelay}), lc)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			fmt.Fprint(w, banner)
			info(w, "Listening on http://%s", lc.Addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from rendr.yaml)")
	cmd.Flags().DurationVar(&statsDelay, "stats-delay", 300*time.Millisecond, "Simulated load time of the stats panel")

	return cmd
}
