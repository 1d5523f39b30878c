package db

import (
	"context"

	"github.com/markdave123-py/Resumelens/internal/models"
)

// DbClient defines all persistence operations the ingestion services
// need. It abstracts the session repository so higher layers never
// depend on a specific database. Consistency is last-writer-wins,
// which is acceptable for a single-process deployment.
type DbClient interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, id string) (*models.Session, error)

	InsertSanitizedFiles(ctx context.Context, files []models.SanitizedFile) error
	ListFilesBySession(ctx context.Context, sessionID string) ([]models.SanitizedFile, error)

	DeleteSession(ctx context.Context, id string) error

	Close() error
}
