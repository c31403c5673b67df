package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercouple/pkg/api"
	"github.com/matzehuels/hypercouple/pkg/observability"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the coupling engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return c.serve(cmd, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// newMetrics registers the Prometheus hooks globally and returns the
// /metrics handler.
func newMetrics() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	p := observability.NewPrometheus(reg)
	observability.SetCouplingHooks(p)
	observability.SetPipelineHooks(p)
	observability.SetHTTPHooks(p)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// serve runs the API on ln until the command context ends, then shuts the
// server down gracefully.
func (c *CLI) serve(cmd *cobra.Command, ln net.Listener) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	defer observability.Reset()

	handler := api.NewHandler(api.Config{
		Runner:       c.newRunner(),
		Logger:       logger,
		Metrics:      newMetrics(),
		Timeout:      c.Config.Server.Timeout(),
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
	})
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	printInfo(cmd.OutOrStdout(), "Listening on %s", ln.Addr())
	logger.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		printError(cmd.ErrOrStderr(), "shutdown: %v", err)
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
