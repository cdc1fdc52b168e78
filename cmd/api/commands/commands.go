package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weblinkcreator/siteapi/internal/adapters/events"
	"github.com/weblinkcreator/siteapi/internal/adapters/repository"
	"github.com/weblinkcreator/siteapi/internal/application/services"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/cache"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/catalog"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/config"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/database"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/idgen"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/metrics"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/server"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// Build information, set with -ldflags at release time
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the site API server",
		Long:  "Start the site API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

// NewInitCommand creates the command that prepares an empty site document
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty site document if none exists",
		Long:  "Create the configured document store with empty orders and team. An existing document is left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store ports.DocumentStore) error {
				if err := store.Initialize(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Document store ready: %s\n", store.Describe())
				return nil
			})
		},
	}
}

// NewDumpCommand creates the command that prints the stored document
func NewDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the site document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(store ports.DocumentStore) error {
				doc, err := store.Read(cmd.Context())
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			})
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "siteapi v%s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	store, closeStore, err := buildStore(ctx, cfg, appLogger, m)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	siteCatalog, err := catalog.Load()
	if err != nil {
		return err
	}

	ids, err := idgen.NewSnowflake(cfg.IDs.Node)
	if err != nil {
		return err
	}

	publisher, err := buildPublisher(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	svc := services.NewWebsiteService(store, ids, publisher, siteCatalog, services.NewValidator(), appLogger)

	srv, err := server.New(cfg, svc, store, m, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting site API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", store.Describe(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

// withStore loads configuration, opens the configured store and hands it to fn
func withStore(ctx context.Context, fn func(store ports.DocumentStore) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	store, closeStore, err := buildStore(ctx, cfg, appLogger, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(store)
}

// buildStore opens the document store named by the storage driver. The
// returned func releases whatever the store holds open.
func buildStore(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (ports.DocumentStore, func() error, error) {
	var (
		store   ports.DocumentStore
		closeFn = func() error { return nil }
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		store = repository.NewFileStore(cfg.Storage.Path)
	case config.StorageDriverPostgres:
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store = repository.NewPostgresStore(db.DB, cfg.Storage.DocumentKey)
		closeFn = db.Close
	case config.StorageDriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		store = repository.NewRedisStore(client, cfg.Storage.DocumentKey)
		closeFn = client.Close
	case config.StorageDriverMemory:
		store = repository.NewMemoryStore(nil)
	default:
		return nil, nil, errors.New("unknown storage driver " + cfg.Storage.Driver)
	}

	return repository.NewInstrumentedStore(store, m, log), closeFn, nil
}

func buildPublisher(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return events.NewNoopPublisher(), nil
	}

	publisher, err := events.NewRabbitMQPublisher(ctx, cfg.Events, log)
	if err != nil {
		return nil, fmt.Errorf("failed to start event publisher: %w", err)
	}
	return publisher, nil
}
