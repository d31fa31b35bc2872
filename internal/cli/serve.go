package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/combo-todo/internal/config"
	todohttp "github.com/jaekwang-park/combo-todo/internal/http"
	"github.com/jaekwang-park/combo-todo/internal/logging"
	"github.com/jaekwang-park/combo-todo/internal/repository"
	"github.com/jaekwang-park/combo-todo/internal/service"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

The database schema is created on startup if it does not exist. The server
stops gracefully on SIGINT or SIGTERM.

Example:
  combo-todo serve --port 8080
  DATABASE_URL=sqlite://./todo.db combo-todo serve --log-level debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, cmd.OutOrStdout())
		},
	}
}

// loadConfig layers flag overrides on top of the file and environment
// configuration and validates the result.
func loadConfig(opts *RootOptions) (config.Config, error) {
	path := opts.ConfigFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Port != "" {
		cfg.ServerPort = opts.Port
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openDatabase connects to the configured store and applies its schema.
func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	driverName, dsn, err := cfg.Database()
	if err != nil {
		return nil, "", err
	}

	if !cfg.DB.IAMAuth {
		db, err := repository.NewDB(ctx, driverName, dsn)
		return db, driverName, err
	}

	connector, err := repository.NewIAMConnector(ctx, repository.IAMConfig{
		Host:    cfg.DB.Host,
		Port:    cfg.DB.Port,
		User:    cfg.DB.User,
		Name:    cfg.DB.Name,
		SSLMode: cfg.DB.SSLMode,
		Region:  cfg.DB.AWSRegion,
	})
	if err != nil {
		return nil, "", err
	}
	db, err := repository.NewDBFromConnector(ctx, driverName, connector)
	return db, driverName, err
}

func runServe(ctx context.Context, opts *RootOptions, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := logging.New(out, cfg.ParseLogLevel(), cfg.LogFormat)
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"log_level", cfg.LogLevel,
		"iam_auth", cfg.DB.IAMAuth,
	)

	db, driverName, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected", "driver", driverName)

	todoRepo, err := repository.NewTodoRepository(driverName, db)
	if err != nil {
		return err
	}
	todoSvc := service.NewTodoService(todoRepo)

	srv := todohttp.NewServer(cfg.ServerPort, logger, todoSvc, db, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
