package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ats/internal/config"
	"alfredoptarigan/resume-ats/internal/handlers"
	"alfredoptarigan/resume-ats/internal/logger"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

const shutdownTimeout = 10 * time.Second

// multipart framing on top of the file itself
const bodyLimitOverhead = 1 << 20

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load(viper.GetViper())

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug || cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zl.Sync() //nolint:errcheck

	if !cfg.EnvFileLoaded {
		zl.Debug("no env file loaded, using process environment", zap.String("env_file", viper.GetString("ENV_FILE")))
	}

	if err := cfg.Validate(); err != nil {
		zl.Error("❌ Invalid configuration", zap.Error(err))
		return err
	}
	zl.Info("✅ Config loaded successfully",
		zap.String("version", version),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("record_store", cfg.Records.Driver),
	)

	// Initialize record store
	repo, closeRepo, err := initRepository(ctx, cfg, zl)
	if err != nil {
		zl.Error("❌ Failed to initialize record store", zap.Error(err))
		return err
	}
	defer closeRepo()

	// Initialize storage
	storage, staticDir, err := initStorage(ctx, cfg)
	if err != nil {
		zl.Error("❌ Failed to initialize storage", zap.Error(err))
		return err
	}
	zl.Info("✅ Storage initialized", zap.String("driver", cfg.Storage.Driver))

	// Initialize Gemini AI
	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, zl)
	if err != nil {
		zl.Error("❌ Failed to initialize Gemini AI", zap.Error(err))
		return err
	}
	zl.Info("✅ Gemini AI initialized successfully", zap.String("model", gemini.Model()))

	analyzer := services.NewAnalyzerService(
		services.NewTextExtractor(zl),
		storage,
		services.NewScorerService(gemini, zl),
		repo,
		zl,
	)

	// Create Fiber app
	app := handlers.NewApp(handlers.AppConfig{
		BodyLimit: int(cfg.Storage.MaxFileSize) + bodyLimitOverhead,
		StaticDir: staticDir,
	}, zl)
	handlers.RegisterRoutes(app,
		handlers.NewAnalyzeHandler(analyzer, cfg.Storage.MaxFileSize, zl),
		handlers.NewHistoryHandler(analyzer, zl),
	)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zl.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Error("❌ Failed to start server", zap.Error(err))
		return err
	}

	return nil
}

func initRepository(ctx context.Context, cfg *config.Config, zl *zap.Logger) (repositories.AnalysisRepository, func(), error) {
	switch cfg.Records.Driver {
	case config.RecordStorePostgres:
		db, err := config.InitDatabase(cfg, zl)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repositories.NewGormAnalysisRepository(db), closeDB, nil
	default:
		client, collection, err := config.InitMongo(ctx, cfg, zl)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				zl.Warn("⚠️ MongoDB disconnect failed", zap.Error(err))
			}
		}
		return repositories.NewMongoAnalysisRepository(collection), disconnect, nil
	}
}

// initStorage returns the uploader and, for the local driver, the directory
// to serve under /uploads.
func initStorage(ctx context.Context, cfg *config.Config) (services.StorageService, string, error) {
	if cfg.Storage.Driver == config.StorageDriverLocal {
		storage, err := services.NewLocalStorageService(cfg.Storage.UploadPath, cfg.Storage.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return storage, cfg.Storage.UploadPath, nil
	}

	storage, err := services.NewS3StorageService(ctx, services.S3Options{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		return nil, "", err
	}
	return storage, "", nil
}
