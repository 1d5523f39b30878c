package extract_engine

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Resumelens/internal/core"
)

// writeTestDocx creates a minimal DOCX file on disk from the given
// document.xml body.
func writeTestDocx(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body + `</w:body>
</w:document>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func newTestEngine(ocrClient core.OCRClient, renderer core.PageRenderer) *Engine {
	// MinOCRHeight 1 keeps test rasters at native size.
	return NewEngine(ocrClient, renderer, &EngineConfig{RenderDPI: 150, MinOCRHeight: 1})
}

func TestProcessDocx_ParagraphsInOrder(t *testing.T) {
	path := writeTestDocx(t, t.TempDir(), "jane.docx", `
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t> </w:t></w:r></w:p>
<w:p><w:r><w:t>Software </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>`)

	e := newTestEngine(nil, nil)
	record, err := e.ProcessDocument(t.Context(), path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nSoftware Engineer", record.RawText)
	assert.Equal(t, 1, record.PageCount)
	assert.Equal(t, "Jane Doe", record.CandidateName)
	assert.Equal(t, "jane.docx", record.SourceFile)
	assert.NotEmpty(t, record.ID)
}

func TestProcessDocx_TableRowsJoinedWithPipe(t *testing.T) {
	path := writeTestDocx(t, t.TempDir(), "skills.docx", `
<w:p><w:r><w:t>Bob Jones</w:t></w:r></w:p>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>5 years</w:t></w:r></w:p></w:tc>
</w:tr>
<w:tr>
<w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc>
<w:tc><w:p></w:p></w:tc>
</w:tr>
</w:tbl>`)

	e := newTestEngine(nil, nil)
	record, err := e.ProcessDocument(t.Context(), path)
	require.NoError(t, err)

	assert.Equal(t, "Bob Jones\nGo | 5 years\nPython", record.RawText)
}

func TestProcessDocx_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	e := newTestEngine(nil, nil)
	_, err := e.ProcessDocument(t.Context(), path)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}

func TestProcessDocx_MissingDocumentXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	other, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = other.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	e := newTestEngine(nil, nil)
	_, err = e.ProcessDocument(t.Context(), path)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}
