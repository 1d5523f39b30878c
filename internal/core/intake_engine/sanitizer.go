package intake_engine

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/markdave123-py/Resumelens/internal/models"
)

// AllowedExtensions is the intake allowlist. Anything else is skipped
// with a warning, never written to disk.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".bmp":  true,
	".docx": true,
	".doc":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Upload is one raw uploaded file: verbatim bytes plus the untrusted
// client-supplied filename.
type Upload struct {
	Name string
	Data []byte
}

// Sanitizer materializes untrusted uploads into per-session
// directories under the upload root.
type Sanitizer struct {
	uploadRoot string
}

func NewSanitizer(uploadRoot string) *Sanitizer {
	return &Sanitizer{uploadRoot: uploadRoot}
}

// SessionDir returns the directory owned by the given session.
func (s *Sanitizer) SessionDir(sessionID string) string {
	return filepath.Join(s.uploadRoot, sessionID)
}

// EnsureSessionDir creates the session directory. Idempotent.
func (s *Sanitizer) EnsureSessionDir(sessionID string) (string, error) {
	dir := s.SessionDir(sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session directory: %w", err)
	}
	return dir, nil
}

// SaveFiles writes each allowlisted upload verbatim to a sanitized
// path inside the session directory. Files outside the allowlist are
// skipped with a warning.
func (s *Sanitizer) SaveFiles(sessionID string, uploads []Upload) ([]models.SanitizedFile, error) {
	dir, err := s.EnsureSessionDir(sessionID)
	if err != nil {
		return nil, err
	}

	var saved []models.SanitizedFile
	for _, up := range uploads {
		ext := strings.ToLower(filepath.Ext(up.Name))
		if !AllowedExtensions[ext] {
			log.Printf("intake: skipping unsupported file: %s", up.Name)
			continue
		}

		safeName := SanitizeFilename(up.Name)
		target := filepath.Join(dir, safeName)
		if err := os.WriteFile(target, up.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", safeName, err)
		}

		saved = append(saved, models.SanitizedFile{
			SessionID:    sessionID,
			OriginalName: filepath.Base(up.Name),
			StoredPath:   target,
		})
		log.Printf("intake: saved %s", safeName)
	}

	return saved, nil
}

// SanitizeFilename produces a traversal-safe, collision-resistant name
// from an untrusted original: path components stripped, every
// character outside [A-Za-z0-9_.-] replaced with '_', and an 8-hex
// random prefix prepended so two identical inputs never share a path.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	return randomPrefix() + "_" + name
}

func randomPrefix() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:8]
}
