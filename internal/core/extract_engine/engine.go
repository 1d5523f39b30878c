package extract_engine

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/Resumelens/internal/core"
	"github.com/markdave123-py/Resumelens/internal/core/restore_engine"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// EngineConfig carries the runtime tuning knobs for text recovery.
type EngineConfig struct {
	// RenderDPI is the PDF rasterization resolution. 150 trades
	// throughput for legibility; OCR gains above that are marginal.
	RenderDPI int
	// MinOCRHeight is the page height OCR input is upscaled to when
	// the source raster is smaller.
	MinOCRHeight int
}

func (c *EngineConfig) withDefaults() EngineConfig {
	out := EngineConfig{RenderDPI: 150, MinOCRHeight: 2000}
	if c == nil {
		return out
	}
	if c.RenderDPI > 0 {
		out.RenderDPI = c.RenderDPI
	}
	if c.MinOCRHeight > 0 {
		out.MinOCRHeight = c.MinOCRHeight
	}
	return out
}

// Engine recovers machine-readable text from one sanitized document
// file and emits a DocumentRecord per source document.
type Engine struct {
	restorer *restore_engine.Restorer
	ocr      core.OCRClient
	renderer core.PageRenderer
	cfg      EngineConfig
}

// NewEngine constructs the recovery engine. The OCR client and page
// renderer are explicit dependencies so deployment-specific engines
// stay out of the core.
func NewEngine(ocrClient core.OCRClient, renderer core.PageRenderer, cfg *EngineConfig) *Engine {
	return &Engine{
		restorer: restore_engine.NewRestorer(),
		ocr:      ocrClient,
		renderer: renderer,
		cfg:      cfg.withDefaults(),
	}
}

// ProcessDocument dispatches on the file extension and recovers one
// DocumentRecord for the document.
func (e *Engine) ProcessDocument(ctx context.Context, path string) (*models.DocumentRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return e.processPDF(ctx, path)
	case ".docx":
		return e.processDocx(path)
	case ".doc":
		return e.processDoc(path)
	default:
		return e.processImage(ctx, path)
	}
}

// newRecord builds the immutable output record, attaching the
// recovered candidate name (or the filename-derived fallback).
func newRecord(path, text string, pageCount int) *models.DocumentRecord {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &models.DocumentRecord{
		ID:            uuid.NewString(),
		CandidateName: RecoverName(text, stem),
		SourceFile:    filepath.Base(path),
		RawText:       text,
		PageCount:     pageCount,
		ProcessedAt:   time.Now(),
	}
}
