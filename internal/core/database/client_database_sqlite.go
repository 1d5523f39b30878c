package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/markdave123-py/Resumelens/internal/core"
	"github.com/markdave123-py/Resumelens/internal/models"
)

var _ DbClient = (*SQLiteClient)(nil)

// SQLiteClient is the session repository backed by an embedded SQLite
// database file.
type SQLiteClient struct {
	db *sql.DB
}

// NewDatabaseClient opens (creating if necessary) the SQLite database
// at dbPath and runs the bootstrap schema.
func NewDatabaseClient(ctx context.Context, dbPath string) (*SQLiteClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode so readers never block the single writer; pragmas go in
	// the DSN so every pooled connection gets them.
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := EnsureBootstrapped(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &SQLiteClient{db: conn}, nil
}

func (c *SQLiteClient) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO sessions (id, dir, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET dir = excluded.dir`,
		session.ID, session.Dir, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (c *SQLiteClient) GetSessionByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := c.db.QueryRowContext(ctx,
		`SELECT id, dir, created_at FROM sessions WHERE id = ?`, id).
		Scan(&s.ID, &s.Dir, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &s, nil
}

func (c *SQLiteClient) InsertSanitizedFiles(ctx context.Context, files []models.SanitizedFile) error {
	if len(files) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, f := range files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sanitized_files (session_id, original_name, stored_path) VALUES (?, ?, ?)
			 ON CONFLICT(session_id, stored_path) DO UPDATE SET original_name = excluded.original_name`,
			f.SessionID, f.OriginalName, f.StoredPath); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert sanitized file: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit files: %w", err)
	}
	return nil
}

func (c *SQLiteClient) ListFilesBySession(ctx context.Context, sessionID string) ([]models.SanitizedFile, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT session_id, original_name, stored_path FROM sanitized_files WHERE session_id = ?`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("select files: %w", err)
	}
	defer rows.Close()

	var files []models.SanitizedFile
	for rows.Next() {
		var f models.SanitizedFile
		if err := rows.Scan(&f.SessionID, &f.OriginalName, &f.StoredPath); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (c *SQLiteClient) DeleteSession(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (c *SQLiteClient) Close() error {
	return c.db.Close()
}
