package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/gameshelf/internal/application"
	"github.com/inovacc/gameshelf/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive collection screen",
	Long: `Open the interactive screen for the selected deployment.

Keys:
  a        add a game
  e/enter  edit the selected game
  d        delete the selected game
  r        reload
  q        quit

When standard output is not a terminal the collection is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runList(cmd, args)
	}

	// The screen owns the terminal; logs go to a file instead.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}

	defer func() { _ = logFile.Close() }()

	logger, err := newLogger(logFile, app.logLevel, logJSONFlag)
	if err != nil {
		return err
	}

	ctrl, resolved, err := newController(logger)
	if err != nil {
		return err
	}

	logger.Info("opening collection screen",
		slog.String("deployment", resolved.Name),
		slog.String("base_url", resolved.BaseURL),
		slog.String("capability", resolved.Capability.String()),
	)

	m := cli.NewGamesModel(cmd.Context(), ctrl, cli.GamesOptions{
		Name:       resolved.Name,
		BaseURL:    resolved.BaseURL,
		Capability: resolved.Capability,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run collection screen: %w", err)
	}

	return nil
}

func openLogFile() (*os.File, error) {
	dir, err := application.EnsureApplicationDirectory()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, application.LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return f, nil
}
