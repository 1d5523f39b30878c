package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Resumelens/internal/core"
	db "github.com/markdave123-py/Resumelens/internal/core/database"
	"github.com/markdave123-py/Resumelens/internal/core/extract_engine"
	"github.com/markdave123-py/Resumelens/internal/core/intake_engine"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// memoryDB is an in-memory DbClient for service tests.
type memoryDB struct {
	sessions map[string]models.Session
	files    map[string][]models.SanitizedFile
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		sessions: make(map[string]models.Session),
		files:    make(map[string][]models.SanitizedFile),
	}
}

func (m *memoryDB) CreateSession(_ context.Context, s *models.Session) error {
	m.sessions[s.ID] = *s
	return nil
}

func (m *memoryDB) GetSessionByID(_ context.Context, id string) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memoryDB) InsertSanitizedFiles(_ context.Context, files []models.SanitizedFile) error {
	for _, f := range files {
		m.files[f.SessionID] = append(m.files[f.SessionID], f)
	}
	return nil
}

func (m *memoryDB) ListFilesBySession(_ context.Context, sessionID string) ([]models.SanitizedFile, error) {
	return m.files[sessionID], nil
}

func (m *memoryDB) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return core.ErrSessionNotFound
	}
	delete(m.sessions, id)
	delete(m.files, id)
	return nil
}

func (m *memoryDB) Close() error { return nil }

var _ db.DbClient = (*memoryDB)(nil)

type stubOCR struct{ text string }

func (s *stubOCR) RecognizeText(_ context.Context, _ *image.Gray) (string, error) {
	return s.text, nil
}

type stubRenderer struct{ pages int }

func (s *stubRenderer) RenderPages(_ context.Context, _ string, _ int) ([]image.Image, error) {
	out := make([]image.Image, s.pages)
	for i := range out {
		img := image.NewGray(image.Rect(0, 0, 60, 40))
		for p := range img.Pix {
			img.Pix[p] = 255
		}
		out[i] = img
	}
	return out, nil
}

func newTestService(t *testing.T, maxBytes int64) (*IngestService, *memoryDB, string) {
	t.Helper()
	root := t.TempDir()
	database := newMemoryDB()
	engine := extract_engine.NewEngine(
		&stubOCR{text: "John Smith\nGo developer"},
		&stubRenderer{pages: 1},
		&extract_engine.EngineConfig{RenderDPI: 150, MinOCRHeight: 1},
	)
	svc := NewIngestService(database, intake_engine.NewSanitizer(root), engine, maxBytes, 4)
	return svc, database, root
}

func archiveWith(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for name, data := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestSanitizeIntake_ArchiveFiltersUnsupported(t *testing.T) {
	svc, database, root := newTestService(t, 0)

	blob := archiveWith(t, map[string][]byte{
		"a.pdf":    []byte("%PDF-1"),
		"b.pdf":    []byte("%PDF-2"),
		"c.pdf":    []byte("%PDF-3"),
		"tool.exe": []byte("nope"),
	})

	sessionID, paths, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "resumes.zip", Data: blob},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Len(t, paths, 3)

	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, filepath.Join(root, sessionID)))
	}

	stored, err := database.ListFilesBySession(t.Context(), sessionID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestSanitizeIntake_RawFiles(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	sessionID, paths, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "one.png", Data: []byte("png")},
		{Name: "two.docx", Data: []byte("docx")},
		{Name: "skip.txt", Data: []byte("txt")},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Len(t, paths, 2)
}

func TestSanitizeIntake_NoValidInput(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	_, _, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "virus.exe", Data: []byte("x")},
	})
	assert.True(t, errors.Is(err, core.ErrNoValidInput))

	_, _, err = svc.SanitizeIntake(t.Context(), nil)
	assert.True(t, errors.Is(err, core.ErrNoValidInput))
}

func TestSanitizeIntake_CorruptArchiveFailsWhole(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	_, _, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "broken.zip", Data: []byte("not a zip at all")},
	})
	assert.True(t, errors.Is(err, core.ErrArchiveCorrupt))
}

func TestSanitizeIntake_SizeLimit(t *testing.T) {
	svc, _, _ := newTestService(t, 10)

	_, _, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "big.pdf", Data: make([]byte, 11)},
	})
	assert.True(t, errors.Is(err, core.ErrUploadTooLarge))
}

func TestProcessBatch_EndToEndArchiveScenario(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	blob := archiveWith(t, map[string][]byte{
		"a.pdf":    []byte("%PDF-1"),
		"b.pdf":    []byte("%PDF-2"),
		"c.pdf":    []byte("%PDF-3"),
		"tool.exe": []byte("nope"),
	})

	sessionID, paths, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "resumes.zip", Data: blob},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	require.Len(t, paths, 3)

	records, err := svc.ProcessBatch(t.Context(), paths)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.PageCount, 1)
		assert.Equal(t, "John Smith", r.CandidateName)
		assert.NotEmpty(t, r.ID)
	}
}

func TestProcessBatch_AllFailed(t *testing.T) {
	svc, _, root := newTestService(t, 0)

	bad := filepath.Join(root, "bad.docx")
	require.NoError(t, os.WriteFile(bad, []byte("junk"), 0o644))

	_, err := svc.ProcessBatch(t.Context(), []string{bad})
	assert.True(t, errors.Is(err, core.ErrNoDocumentsProcessed))
}

func TestPurgeSession(t *testing.T) {
	svc, database, _ := newTestService(t, 0)

	sessionID, paths, err := svc.SanitizeIntake(t.Context(), []intake_engine.Upload{
		{Name: "keep.png", Data: []byte("png")},
	})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	require.NoError(t, svc.PurgeSession(t.Context(), sessionID))
	assert.NoFileExists(t, paths[0])

	_, err = database.GetSessionByID(t.Context(), sessionID)
	assert.True(t, errors.Is(err, core.ErrSessionNotFound))
}

func TestPurgeSession_Unknown(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	err := svc.PurgeSession(t.Context(), "missing")
	assert.True(t, errors.Is(err, core.ErrSessionNotFound))
}
