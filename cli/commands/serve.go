package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/petal-labs/perle/server"
	"github.com/petal-labs/perle/telemetry"
)

// shutdownTimeout bounds the drain of in-flight requests.
const shutdownTimeout = 15 * time.Second

type serveFlags struct {
	addr  string
	trace bool
}

func (a *App) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP answer service",
		Long: `Run the HTTP answer service.

Routes:
  POST /v1/answer   answer a question
  GET  /v1/models   list the model catalog
  GET  /health      liveness probe
  GET  /metrics     Prometheus metrics

The server drains in-flight requests on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}

	cmd.Flags().StringVar(&a.serveOpts.addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&a.serveOpts.trace, "trace", false, "log OpenTelemetry spans for every completion")

	return cmd
}

func (a *App) runServe(cmd *cobra.Command, args []string) error {
	log := a.serviceLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sinks := telemetry.Fanout{telemetry.NewLogHook(log), telemetry.NewMetrics(reg)}
	if a.serveOpts.trace {
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(telemetry.NewLogExporter(log)))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown failed")
			}
		}()
		sinks = append(sinks, telemetry.NewTracer(tp))
	}

	eng := a.buildEngine(log, sinks, a.cfg.Search.Enabled, a.cfg.Images.Enabled)

	cfg := server.Config{
		Addr:         a.cfg.Server.Addr,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}
	if a.serveOpts.addr != "" {
		cfg.Addr = a.serveOpts.addr
	}

	srv := server.New(cfg, eng,
		server.WithLogger(log),
		server.WithMetrics(reg),
		server.WithVersion(Version),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return exitWithCode(ExitNetwork, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
