package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hiveportal/config"
	_ "hiveportal/docs"
	"hiveportal/internal/adapters/email"
	"hiveportal/internal/adapters/realtime"
	"hiveportal/internal/adapters/storage"
	httpDelivery "hiveportal/internal/delivery/http"
	"hiveportal/internal/delivery/http/middleware"
	"hiveportal/internal/domain"
	"hiveportal/internal/repository/file"
	"hiveportal/internal/repository/memory"
	"hiveportal/internal/repository/mongodb"
	"hiveportal/internal/repository/postgres"
	"hiveportal/internal/seed"
	"hiveportal/internal/services"
)

// @title The Hive Portal API
// @version 1.0
// @description Club portal backend: content publication pipeline, event countdown notifications and registration forms.
// @BasePath /

// @securityDefinitions.apikey AdminPassphrase
// @in header
// @name X-Admin-Passphrase

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openKV(ctx, cfg, logger)
	if err != nil {
		return err
	}
	adapter := storage.NewAdapter(kv, logger)
	defer func() {
		if err := adapter.Close(); err != nil {
			logger.Error("closing storage backend", "err", err)
		}
	}()

	store := services.NewStore(ctx, adapter, seed.MustDefaults(), logger, cfg.ContextTimeout)

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)
	adapter.AddListener(hub)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	store.AddSink(hub, services.NewEmailNotifier(mailer, email.NewTemplateRenderer(), cfg.Mail.BroadcastAddress, logger))

	scheduler := services.NewScheduler(store, cfg.NotificationCheckInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	ws := realtime.NewHandler(hub, cfg.CORSAllowedOrigins)
	mux := httpDelivery.NewRouter(
		httpDelivery.NewControllers(logger, store, adapter, cfg.AdminPassphrase, ws.ServeWs),
		middleware.RequireAdmin(cfg.AdminPassphrase),
	)
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "storage", cfg.StorageDriver)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openKV(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.KVStore, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.NewKVStore(cfg.StorageQuotaBytes), nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		logger.Info("connected to postgres")
		return postgres.NewKVRepository(db), nil
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to mongodb", "database", cfg.MongoDatabase)
		return mongodb.NewKVStore(client, cfg.MongoDatabase), nil
	default:
		kv, err := file.NewKVStore(cfg.StorageDir, cfg.StorageQuotaBytes)
		if err != nil {
			return nil, fmt.Errorf("file storage: %w", err)
		}
		return kv, nil
	}
}
