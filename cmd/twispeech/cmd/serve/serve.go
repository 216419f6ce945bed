package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"twi-speech/cmd/twispeech/cmd/cmdutil"
	"twi-speech/internal/app"
)

var shutdownTimeout time.Duration

func init() {
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "grace period for in-flight requests")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Configuration comes from the YAML file, .env files and the environment.
Startup fails when object storage credentials are missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		srv, cleanup, err := app.InitializeServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}
		defer cleanup()

		errCh := srv.Start()
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
