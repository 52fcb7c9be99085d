package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/inovacc/gameshelf/internal/application"
	"github.com/inovacc/gameshelf/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Global flags
var (
	configPath     string
	deploymentFlag string
	apiURLFlag     string
	readOnlyFlag   bool
	timeoutFlag    time.Duration
	logLevelFlag   string
	logJSONFlag    bool
)

// app holds what PersistentPreRunE resolved for the running command.
var app struct {
	cfg        *config.Config
	configPath string
	overrides  config.Overrides
	logLevel   string
	logger     *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A video game collection manager",
	Long: `Gameshelf manages a collection of video games (title, platform, developer,
publisher) stored behind a REST API at /api/VideoGame.

Run without a command to open the interactive screen for the selected
deployment. The "crud" deployment allows adding, editing and deleting games;
the "catalog" deployment is read-only.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	RunE:              runUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default is <config dir>/gameshelf/config.json)")
	pf.StringVarP(&deploymentFlag, "deployment", "d", "", "Deployment to use (e.g. crud, catalog)")
	pf.StringVar(&apiURLFlag, "api-url", "", "Override the API base URL (e.g. http://localhost:5156)")
	pf.BoolVar(&readOnlyFlag, "read-only", false, "Disable add, edit and delete")
	pf.DurationVar(&timeoutFlag, "timeout", 0, "Timeout for each API request (default from config)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&logJSONFlag, "log-json", false, "Write logs as JSON")
}

// setupApp loads .env, the config file and the environment, then builds the
// logger. Flags win over environment, environment over the file.
func setupApp(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	path := configPath
	if path == "" {
		var err error

		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.configPath = path
	app.overrides = config.Overrides{
		Deployment: deploymentFlag,
		APIURL:     apiURLFlag,
		ReadOnly:   readOnlyFlag,
		Timeout:    timeoutFlag,
		LogLevel:   logLevelFlag,
	}.ApplyEnv(os.Getenv)

	level := cfg.LogLevel
	if app.overrides.LogLevel != "" {
		level = app.overrides.LogLevel
	}

	app.logLevel = level

	app.logger, err = newLogger(cmd.ErrOrStderr(), level, logJSONFlag)
	if err != nil {
		return err
	}

	slog.SetDefault(app.logger)

	return nil
}
