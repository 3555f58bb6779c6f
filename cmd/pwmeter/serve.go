package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/pwmeter/pkg/serve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an NDJSON streaming evaluator over stdin/stdout",
	Long: `Run pwmeter as a long-lived streaming server that reads requests from
stdin and writes one JSON response per line to stdout.

The dictionary is loaded once at startup, in the background. Requests are
handled until stdin closes, a "close" request arrives, or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	m, err := newMeter(cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(m, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
