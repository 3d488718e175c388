package main

import (
	"fmt"
	"log"

	"lading/internal/config"
	"lading/internal/docai"
	"lading/internal/export"
	"lading/internal/handler"
	"lading/internal/repository/postgres"
	"lading/internal/router"
	"lading/internal/service"
	s3storage "lading/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	recordRepo := postgres.NewRecordRepo(db)

	// Initialize storage and analyzer
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	analyzer := docai.NewClient(&cfg.DocAI)

	// Initialize services
	parseSvc := service.NewParseService(analyzer, s3Client, recordRepo, &cfg.S3, &cfg.Parse)
	exportSvc := export.NewService(recordRepo)

	// Initialize handlers
	parseH := handler.NewParseHandler(parseSvc)
	recordH := handler.NewRecordHandler(parseSvc, exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, parseH, recordH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
