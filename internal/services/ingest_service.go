package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/Resumelens/internal/core"
	db "github.com/markdave123-py/Resumelens/internal/core/database"
	"github.com/markdave123-py/Resumelens/internal/core/extract_engine"
	"github.com/markdave123-py/Resumelens/internal/core/intake_engine"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// IngestService is the boundary the API layer calls: intake
// sanitization, batch processing, session purge. Error kinds from the
// core taxonomy are returned for the caller to translate.
type IngestService struct {
	db             db.DbClient
	sanitizer      *intake_engine.Sanitizer
	engine         *extract_engine.Engine
	maxUploadBytes int64
	workerCount    int
}

func NewIngestService(dbClient db.DbClient, sanitizer *intake_engine.Sanitizer, engine *extract_engine.Engine, maxUploadBytes int64, workerCount int) *IngestService {
	return &IngestService{
		db:             dbClient,
		sanitizer:      sanitizer,
		engine:         engine,
		maxUploadBytes: maxUploadBytes,
		workerCount:    workerCount,
	}
}

// SanitizeIntake materializes an upload batch into a fresh session.
// A single .zip upload routes to the archive path; anything else is
// treated as a list of raw files. Returns the session ID and the
// sanitized paths ready for ProcessBatch.
func (s *IngestService) SanitizeIntake(ctx context.Context, uploads []intake_engine.Upload) (string, []string, error) {
	if len(uploads) == 0 {
		return "", nil, core.ErrNoValidInput
	}

	var total int64
	for _, up := range uploads {
		total += int64(len(up.Data))
	}
	if s.maxUploadBytes > 0 && total > s.maxUploadBytes {
		return "", nil, fmt.Errorf("%w: %d bytes (limit %d)", core.ErrUploadTooLarge, total, s.maxUploadBytes)
	}

	sessionID := uuid.NewString()

	var (
		saved []models.SanitizedFile
		err   error
	)
	if len(uploads) == 1 && strings.HasSuffix(strings.ToLower(uploads[0].Name), ".zip") {
		saved, err = s.sanitizer.ExtractArchive(sessionID, uploads[0].Data)
	} else {
		saved, err = s.sanitizer.SaveFiles(sessionID, uploads)
	}
	if err != nil {
		return "", nil, err
	}
	if len(saved) == 0 {
		return "", nil, core.ErrNoValidInput
	}

	session := &models.Session{
		ID:        sessionID,
		Dir:       s.sanitizer.SessionDir(sessionID),
		CreatedAt: time.Now(),
	}
	if err := s.db.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}
	if err := s.db.InsertSanitizedFiles(ctx, saved); err != nil {
		return "", nil, err
	}

	paths := make([]string, len(saved))
	for i, f := range saved {
		paths[i] = f.StoredPath
	}
	log.Printf("ingest: session %s holds %d sanitized files", sessionID, len(paths))
	return sessionID, paths, nil
}

// ProcessBatch runs the recovery engine over the sanitized paths with
// bounded parallelism. Per-document failures are logged and skipped;
// only a batch where every document failed is an error.
func (s *IngestService) ProcessBatch(ctx context.Context, paths []string) ([]models.DocumentRecord, error) {
	records := s.engine.ProcessAll(ctx, paths, s.workerCount)
	if len(records) == 0 {
		return nil, core.ErrNoDocumentsProcessed
	}
	return records, nil
}

// PurgeSession removes a session's repository rows and its directory.
func (s *IngestService) PurgeSession(ctx context.Context, sessionID string) error {
	session, err := s.db.GetSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(session.Dir); err != nil {
		return fmt.Errorf("remove session directory: %w", err)
	}
	if err := s.db.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("ingest: purged session %s", sessionID)
	return nil
}
