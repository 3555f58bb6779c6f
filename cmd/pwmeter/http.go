package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/praetorian-inc/pwmeter/pkg/httpapi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var (
	httpAddr       string
	allowedOrigins []string
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the meter over HTTP and websockets",
	Long: `Serve the meter over HTTP.

Endpoints:
  GET  /healthz          liveness
  GET  /readyz           503 until the dictionary has loaded
  POST /api/v1/evaluate  {"password": "...", "explain": false}
  GET  /api/v1/ws        websocket; each text frame is evaluated as typed

Passwords are never logged.`,
	Args: cobra.NoArgs,
	RunE: runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address (default 127.0.0.1:8080)")
	httpCmd.Flags().StringSliceVar(&allowedOrigins, "allow-origin", nil, "Websocket origins to accept besides same-origin (* for any)")
	rootCmd.AddCommand(httpCmd)
}

func runHTTP(cmd *cobra.Command, args []string) error {
	addr := currentConfig().HTTPAddr
	if cmd.Flags().Changed("addr") {
		addr = httpAddr
	}

	m, err := newMeter(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Meter:          m,
		Logger:         debugLogger(cmd),
		Quiet:          quiet,
		AllowedOrigins: allowedOrigins,
	})
	srv := newHTTPServer(addr, router)

	errCh := make(chan error, 1)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		signal.Stop(sigCh)
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "received signal %v, shutting down...\n", sig)
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "pwmeter listening on http://%s\n", addr)
	}
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return <-errCh
}

// newHTTPServer applies the timeouts used for every listener. The websocket
// handler sets its own per-message deadlines on top of these.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
