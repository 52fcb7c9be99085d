package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/inovacc/gameshelf/internal/gameapi"
	"github.com/inovacc/gameshelf/internal/server"
	"github.com/spf13/cobra"
)

var stopTimeout time.Duration

var serverStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long:  `Show whether a local collection API started with 'gameshelf server' is running.`,
	Args:  cobra.NoArgs,
	RunE:  runServerStatus,
}

var serverStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	Long:  `Stop the local collection API by sending a termination signal to its process.`,
	Args:  cobra.NoArgs,
	RunE:  runServerStop,
}

func init() {
	serverCmd.AddCommand(serverStatusCmd)
	serverCmd.AddCommand(serverStopCmd)

	serverStopCmd.Flags().DurationVar(&stopTimeout, "timeout", 30*time.Second, "Timeout waiting for server to stop")
}

func runServerStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	path, err := server.DefaultInfoPath()
	if err != nil {
		return err
	}

	info := server.Running(path)
	if info == nil {
		_, _ = fmt.Fprintln(out, "Server is not running")
		return nil
	}

	health := "unreachable"
	if err := checkHealth(cmd.Context(), info.URL()); err == nil {
		health = "ok"
	}

	_, _ = fmt.Fprintln(out, "Server is running")
	_, _ = fmt.Fprintf(out, "  Address:  %s\n", info.URL())
	_, _ = fmt.Fprintf(out, "  PID:      %d\n", info.PID)

	if info.Driver != "" {
		_, _ = fmt.Fprintf(out, "  Driver:   %s\n", info.Driver)
	}

	_, _ = fmt.Fprintf(out, "  Uptime:   %s\n", time.Since(info.StartedAt).Round(time.Second))
	_, _ = fmt.Fprintf(out, "  Health:   %s\n", health)

	return nil
}

func runServerStop(cmd *cobra.Command, _ []string) error {
	path, err := server.DefaultInfoPath()
	if err != nil {
		return err
	}

	info := server.Running(path)
	if info == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Server is not running")
		return nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find server process: %w", err)
	}

	if err := process.Signal(os.Interrupt); err != nil {
		// Windows cannot deliver os.Interrupt to another process
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
	}

	deadline := time.Now().Add(stopTimeout)
	for time.Now().Before(deadline) {
		if !server.IsProcessRunning(info.PID) {
			server.RemoveInfo(path)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Server stopped (pid %d)\n", info.PID)

			return nil
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server (pid %d) did not stop within %s", info.PID, stopTimeout)
}

// checkHealth calls GET /health on baseURL.
func checkHealth(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client, err := gameapi.NewClient(baseURL, gameapi.ClientOptions{Logger: app.logger})
	if err != nil {
		return err
	}

	return client.Health(ctx)
}
