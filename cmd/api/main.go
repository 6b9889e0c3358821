package main

import (
	"context"
	"log"
	"time"

	"ctrc-insights/internal/core/cache"
	"ctrc-insights/internal/core/config"
	"ctrc-insights/internal/core/logger"
	"ctrc-insights/internal/core/server"
	ingestadapter "ctrc-insights/internal/features/ingest/adapters"
	ingesthandler "ctrc-insights/internal/features/ingest/handler"
	ingestservice "ctrc-insights/internal/features/ingest/service"
	reportadapter "ctrc-insights/internal/features/report/adapters"
	reporthandler "ctrc-insights/internal/features/report/handler"
	reportservice "ctrc-insights/internal/features/report/service"

	"go.uber.org/zap"
)

// @title CTRC Insights API
// @version 1.0
// @description Aggregation and classification service for shipment-tracking exports.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the deadline reference store and run Health Check
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize Report Service & Handler
	datasetStore := reportadapter.NewMemoryDatasetStore()
	deadlineRepo := reportadapter.NewRedisDeadlineRepository(redisCache)
	reportSvc := reportservice.NewReportService(datasetStore, deadlineRepo)
	reportHdl := reporthandler.NewReportHandler(reportSvc, deadlineRepo)

	// Initialize Ingest Service & Handler
	ingestSvc := ingestservice.NewIngestService(datasetStore, cfg.Ingest.BatchSize,
		ingestadapter.NewCSVDecoder(),
		ingestadapter.NewSSWWEBDecoder(),
		ingestadapter.NewXLSXDecoder(),
	)
	uploadHdl := ingesthandler.NewUploadHandler(ingestSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/datasets", uploadHdl.Upload)
	srv.App.Get("/datasets", reportHdl.ListDatasets)
	srv.App.Get("/datasets/:id/meta", reportHdl.GetDatasetMeta)
	srv.App.Get("/datasets/:id/metrics", reportHdl.GetUnitMetrics)
	srv.App.Get("/datasets/:id/groups", reportHdl.GetGroups)
	srv.App.Delete("/datasets/:id", reportHdl.DeleteDataset)
	srv.App.Put("/deadlines", reportHdl.LoadDeadlines)
	srv.App.Get("/deadlines/:city", reportHdl.GetDeadline)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
