package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inovacc/gameshelf/internal/application"
	"github.com/inovacc/gameshelf/internal/server"
	"github.com/inovacc/gameshelf/internal/store"
	"github.com/spf13/cobra"
)

var (
	serverListen      string
	serverDriver      string
	serverDataDir     string
	serverSeed        bool
	serverIdleTimeout time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the collection API locally",
	Long: `Serve /api/VideoGame from a local store so the client can be used
without a remote backend.

Routes:
  GET    /api/VideoGame        list all games
  GET    /api/VideoGame/{id}   get one game
  POST   /api/VideoGame        add a game (201)
  PUT    /api/VideoGame/{id}   replace a game
  DELETE /api/VideoGame/{id}   delete a game (204)
  GET    /health               health check

The server shuts down on Ctrl+C, SIGTERM or, when --idle-timeout is set,
after that long without requests.

Examples:
  gameshelf server --seed
  gameshelf server --listen 127.0.0.1:5000 --driver sqlite`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVarP(&serverListen, "listen", "l", "", "Address to listen on (default from config, 127.0.0.1:5156)")
	serverCmd.Flags().StringVar(&serverDriver, "driver", "", "Storage driver: bolt or sqlite (default from config)")
	serverCmd.Flags().StringVar(&serverDataDir, "data-dir", "", "Directory for the store file (default is the application directory)")
	serverCmd.Flags().BoolVar(&serverSeed, "seed", false, "Load a sample catalogue when the store is empty")
	serverCmd.Flags().DurationVar(&serverIdleTimeout, "idle-timeout", 0, "Shutdown after being idle for this duration (0 to disable)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	sc := app.cfg.Server

	overrides := app.overrides
	overrides.Listen = serverListen

	addr := app.cfg.ServerListen(overrides.ApplyEnv(os.Getenv))

	driver := sc.Driver
	if serverDriver != "" {
		driver = serverDriver
	}

	dir := sc.DataDir
	if serverDataDir != "" {
		dir = serverDataDir
	}

	if dir == "" {
		var err error

		dir, err = application.EnsureApplicationDirectory()
		if err != nil {
			return err
		}
	} else if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	idle := time.Duration(sc.IdleTimeout)
	if cmd.Flags().Changed("idle-timeout") {
		idle = serverIdleTimeout
	}

	infoPath, err := server.DefaultInfoPath()
	if err != nil {
		return err
	}

	if info := server.Running(infoPath); info != nil {
		return fmt.Errorf("server already running at %s (pid %d)", info.URL(), info.PID)
	}

	st, err := store.Open(driver, dir)
	if err != nil {
		return err
	}

	defer func() {
		if err := st.Close(); err != nil {
			app.logger.Warn("failed to close store", slog.Any("error", err))
		}
	}()

	if serverSeed {
		n, err := store.Seed(st, store.SampleCatalog)
		if err != nil {
			return err
		}

		if n > 0 {
			app.logger.Info("seeded sample catalogue", slog.Int("records", n))
		}
	}

	srv, err := server.New(st, server.Config{
		Addr:           addr,
		AllowedOrigins: sc.AllowedOrigins,
		IdleTimeout:    idle,
		InfoPath:       infoPath,
		Driver:         driver,
	}, server.Options{Logger: app.logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("starting collection API",
		slog.String("driver", driver),
		slog.String("data_dir", dir),
	)

	return srv.Start(ctx)
}
