package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawflow/config"
	_ "lawflow/docs"
	"lawflow/internal/adapters/cache"
	"lawflow/internal/adapters/email"
	"lawflow/internal/adapters/preview"
	"lawflow/internal/adapters/storage"
	deliveryhttp "lawflow/internal/delivery/http"
	"lawflow/internal/delivery/http/controllers"
	"lawflow/internal/domain"
	"lawflow/internal/repository/sqlstore"
	"lawflow/internal/seed"
	"lawflow/internal/services"
	"lawflow/internal/store"
)

const memoryCacheCleanup = time.Minute

// @title LawFlow API
// @version 1.0
// @description Matter management for property conveyancing: clients, projects, tasks, checklists, timelines, file room and exports.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	dialect, err := store.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}
	rawDB, err := store.Open(ctx, cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer rawDB.Close()
	if err := store.ApplyMigrations(ctx, rawDB, dialect); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	db := sqlstore.New(rawDB, dialect)
	clientRepo := sqlstore.NewClientRepository(db)
	projectRepo := sqlstore.NewProjectRepository(db)
	taskRepo := sqlstore.NewTaskRepository(db)
	checklistRepo := sqlstore.NewChecklistRepository(db)
	timelineRepo := sqlstore.NewTimelineRepository(db)
	activityRepo := sqlstore.NewActivityRepository(db)
	fileRepo := sqlstore.NewFileRepository(db)

	appCache, closeCache := openCache(ctx, cfg, logger)
	defer closeCache()

	fileStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	})
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	timeout := cfg.RequestTimeout
	templates := services.NewTemplateService()
	recorder := services.NewActivityRecorder(activityRepo, appCache, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	clientService := services.NewClientService(clientRepo, timeout)
	projectService := services.NewProjectService(services.ProjectRepositories{
		Projects:   projectRepo,
		Clients:    clientRepo,
		Tasks:      taskRepo,
		Checklist:  checklistRepo,
		Timeline:   timelineRepo,
		Activities: activityRepo,
	}, templates, appCache, cfg.CacheTTL, recorder, logger, timeout)
	taskService := services.NewTaskService(taskRepo, projectRepo, recorder, timeout)
	checklistService := services.NewChecklistService(checklistRepo, recorder, timeout)
	timelineService := services.NewTimelineService(timelineRepo, projectRepo, recorder, timeout)
	activityService := services.NewActivityService(activityRepo, timeout)
	fileService := services.NewFileService(fileRepo, projectRepo, fileStorage, preview.NewGenerator(), recorder, logger, cfg.MaxUploadBytes, timeout)
	calendarService := services.NewCalendarService(projectRepo, taskRepo, timelineRepo, timeout)
	closingPackService := services.NewClosingPackService(projectRepo, clientRepo, taskRepo, checklistRepo, emailService, recorder, timeout)
	healthService := services.NewHealthService(rawDB, appCache, cfg.Version, timeout)

	if cfg.SeedOnStart {
		seeder := seed.NewSeeder(seed.Repositories{
			Clients:    clientRepo,
			Projects:   projectRepo,
			Tasks:      taskRepo,
			Checklist:  checklistRepo,
			Timeline:   timelineRepo,
			Activities: activityRepo,
			Files:      fileRepo,
		}, templates, logger)
		if _, err := seeder.SeedIfEmpty(ctx); err != nil {
			logger.Warn("seed failed", "err", err)
		}
	}

	handler := deliveryhttp.NewHandler(logger, cfg.AllowedOrigins, deliveryhttp.Controllers{
		Clients:   controllers.NewClientController(logger, clientService),
		Projects:  controllers.NewProjectController(logger, projectService),
		Tasks:     controllers.NewTaskController(logger, taskService),
		Checklist: controllers.NewChecklistController(logger, checklistService),
		Timeline:  controllers.NewTimelineController(logger, timelineService),
		Activity:  controllers.NewActivityController(logger, activityService),
		Files:     controllers.NewFileController(logger, fileService, cfg.MaxUploadBytes),
		Templates: controllers.NewTemplateController(logger, templates),
		Exports:   controllers.NewExportController(logger, calendarService, closingPackService),
		Health:    controllers.NewHealthController(logger, healthService),
	})

	// Uploads stream up to MaxUploadBytes, so read and write timeouts are longer than usual.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("LawFlow API listening", "addr", server.Addr, "env", cfg.Environment, "version", cfg.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openCache prefers Redis and falls back to the in-process cache when Redis
// is not configured or unreachable.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Cache, func()) {
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err == nil {
			logger.Info("using redis cache")
			return redisCache, closer(logger, "redis cache", redisCache)
		}
		logger.Warn("redis unavailable, using in-memory cache", "err", err)
	}
	mem := cache.NewMemoryCache(memoryCacheCleanup)
	return mem, closer(logger, "memory cache", mem)
}

func openStorage(ctx context.Context, cfg *config.Config) (domain.FileStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageMinio:
		s, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio storage: %w", err)
		}
		return s, nil
	default:
		s, err := storage.NewLocalStorage(cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		return s, nil
	}
}

func closer(logger *slog.Logger, name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "component", name, "err", err)
		}
	}
}
