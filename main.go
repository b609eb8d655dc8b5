package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitnotes/config"
	"kitnotes/middleware"
	"kitnotes/repository"
	"kitnotes/services"
	"kitnotes/store"
	"kitnotes/usecase"
	"kitnotes/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := config.Load()
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if err := utils.InitValidator(); err != nil {
		logger.Fatal("failed to register validators", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	records, closeRecords, err := openRecordStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeRecords()

	prefs, closePrefs, err := openPreferences(cfg.Preferences, logger)
	if err != nil {
		return err
	}
	defer closePrefs()

	sessions := store.NewRegistry(func(a store.Action, _ store.State) {
		middleware.TrackStateAction(a.Type())
	})
	sessions.SetIdleTTL(cfg.Server.SessionIdleTTL)
	svc := usecase.NewNotebookService(
		repository.GetNotebookRepo(records),
		repository.GetTagsRepo(records),
		prefs,
		sessions,
		logger.Named("notebook"),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           setupRouter(cfg, svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}

func openRecordStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repository.RecordStore, func(), error) {
	if cfg.Driver == "memory" {
		logger.Warn("using in-memory record store, data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	}

	client, err := repository.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.DatabaseName)
	if err := repository.SetupIndexes(db); err != nil {
		logger.Warn("failed to set up indexes", zap.Error(err))
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}
	logger.Info("connected to mongo", zap.String("database", cfg.DatabaseName))
	return repository.NewMongoStore(db), closeFn, nil
}

func openPreferences(cfg config.PreferencesConfig, logger *zap.Logger) (services.PreferenceStore, func(), error) {
	if cfg.Driver == "memory" {
		return services.NewMemoryPreferences(), func() {}, nil
	}

	prefs, err := services.NewRedisPreferences(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := prefs.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}
	return prefs, closeFn, nil
}
