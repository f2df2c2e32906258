package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-crop/internal/config"
	"github.com/phambaophuc/image-crop/internal/http/handlers"
	"github.com/phambaophuc/image-crop/internal/http/routes"
	"github.com/phambaophuc/image-crop/internal/services"
	"github.com/phambaophuc/image-crop/internal/services/processor"
	"github.com/phambaophuc/image-crop/internal/services/queue"
	"github.com/phambaophuc/image-crop/internal/services/stats"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	gin.SetMode(cfg.Server.Mode)

	// Initialize logger
	logger, err := newLogger(cfg.Server.Mode)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize services
	imageProcessor := processor.NewImageProcessor(cfg.Upload.ProcessTimeout, cfg.Upload.MaxPixels)

	var (
		counters  services.CounterStore
		publisher services.EventPublisher
		statsSvc  handlers.StatsReader
		queueSvc  handlers.QueueInspector
	)

	if cfg.Redis.Enabled() {
		s := stats.NewStatsService(cfg.Redis)
		defer s.Close()
		counters, statsSvc = s, s
	}

	if cfg.RabbitMQ.Enabled() {
		q, err := queue.NewQueueService(cfg.RabbitMQ, logger)
		if err != nil {
			logger.Warn("Failed to initialize queue service", zap.Error(err))
			// Continue without crop events
		} else {
			defer q.Close()
			publisher, queueSvc = q, q
		}
	}

	recorder := services.NewEventRecorder(counters, publisher, logger)

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(imageProcessor, recorder, statsSvc, queueSvc, logger, cfg)

	router := routes.NewRouter(imageHandler, logger, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.Int64("max_file_size", cfg.Upload.MaxFileSize))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	recorder.Wait()
	logger.Info("Server exited")
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == gin.DebugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
