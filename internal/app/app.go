// internal/app/app.go
package app

import (
	"context"
	"log"
	"sync"

	"github.com/markdave123-py/Resumelens/internal/config"
	db "github.com/markdave123-py/Resumelens/internal/core/database"
	"github.com/markdave123-py/Resumelens/internal/core/extract_engine"
	"github.com/markdave123-py/Resumelens/internal/core/intake_engine"
	"github.com/markdave123-py/Resumelens/internal/core/ocr"
	"github.com/markdave123-py/Resumelens/internal/core/render"
	"github.com/markdave123-py/Resumelens/internal/services"
)

type App struct {
	Config   *config.Config
	DBClient db.DbClient
	Ingest   *services.IngestService
}

var (
	initOnce sync.Once
	initApp  *App
	initErr  error
)

// NewApp wires the engine dependencies once per process. External
// engine handles (OCR, renderer) are acquired here and injected into
// the components that need them; repeated calls return the same App.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	initOnce.Do(func() {
		initApp, initErr = build(ctx, cfg)
	})
	return initApp, initErr
}

func build(ctx context.Context, cfg *config.Config) (*App, error) {
	dbClient, err := db.NewDatabaseClient(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	log.Println("Session repository initialized and ready.")

	ocrClient := ocr.NewTesseractClient(cfg.OCRLanguages, cfg.TessdataPrefix)
	renderer := render.NewPopplerRenderer(cfg.PdftoppmPath)
	engine := extract_engine.NewEngine(ocrClient, renderer, &extract_engine.EngineConfig{RenderDPI: cfg.RenderDPI})
	sanitizer := intake_engine.NewSanitizer(cfg.UploadDir)

	ingest := services.NewIngestService(dbClient, sanitizer, engine, cfg.MaxUploadBytes, cfg.WorkerCount)

	return &App{
		Config:   cfg,
		DBClient: dbClient,
		Ingest:   ingest,
	}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		if err := a.DBClient.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
}
