package intake_engine

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/Resumelens/internal/core"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// ExtractArchive unpacks an uploaded zip blob into the session
// directory. Directory entries, hidden files and OS metadata entries
// are skipped silently; entries outside the extension allowlist are
// skipped with a warning. An unreadable container fails the whole
// call with ErrArchiveCorrupt.
func (s *Sanitizer) ExtractArchive(sessionID string, blob []byte) ([]models.SanitizedFile, error) {
	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrArchiveCorrupt, err)
	}

	dir, err := s.EnsureSessionDir(sessionID)
	if err != nil {
		return nil, err
	}

	var extracted []models.SanitizedFile
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		filename := path.Base(entry.Name)
		if strings.HasPrefix(filename, ".") || strings.Contains(entry.Name, "__MACOSX") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(filename))
		if !AllowedExtensions[ext] {
			log.Printf("intake: skipping unsupported archive entry: %s", filename)
			continue
		}

		safeName := SanitizeFilename(filename)
		target := filepath.Join(dir, safeName)

		if err := writeEntry(entry, target); err != nil {
			return nil, err
		}

		extracted = append(extracted, models.SanitizedFile{
			SessionID:    sessionID,
			OriginalName: filename,
			StoredPath:   target,
		})
		log.Printf("intake: extracted %s", safeName)
	}

	return extracted, nil
}

func writeEntry(entry *zip.File, target string) error {
	source, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: open entry %s: %v", core.ErrArchiveCorrupt, entry.Name, err)
	}
	defer source.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, source); err != nil {
		return fmt.Errorf("extract %s: %w", entry.Name, err)
	}
	return nil
}
