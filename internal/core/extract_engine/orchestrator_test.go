package extract_engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAll_CollectsEverySuccess(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestDocx(t, dir, "one.docx", `<w:p><w:r><w:t>Alice One</w:t></w:r></w:p>`),
		writeTestDocx(t, dir, "two.docx", `<w:p><w:r><w:t>Bob Two</w:t></w:r></w:p>`),
		writeTestDocx(t, dir, "three.docx", `<w:p><w:r><w:t>Carol Three</w:t></w:r></w:p>`),
	}

	e := newTestEngine(nil, nil)
	records := e.ProcessAll(t.Context(), paths, 4)
	require.Len(t, records, 3)

	var names []string
	for _, r := range records {
		names = append(names, r.CandidateName)
	}
	// Completion order is not submission order; only membership holds.
	assert.ElementsMatch(t, []string{"Alice One", "Bob Two", "Carol Three"}, names)
}

func TestProcessAll_IsolatesPerDocumentFailures(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(broken, []byte("not a container"), 0o644))

	paths := []string{
		writeTestDocx(t, dir, "good.docx", `<w:p><w:r><w:t>Good Doc</w:t></w:r></w:p>`),
		broken,
		writeTestDocx(t, dir, "fine.docx", `<w:p><w:r><w:t>Fine Doc</w:t></w:r></w:p>`),
	}

	e := newTestEngine(nil, nil)
	records := e.ProcessAll(t.Context(), paths, 2)
	assert.Len(t, records, 2, "one malformed input drops exactly one record")
}

func TestProcessAll_AllFailuresYieldEmptyResult(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.docx", "b.docx"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("junk"), 0o644))
		paths = append(paths, p)
	}

	e := newTestEngine(nil, nil)
	records := e.ProcessAll(t.Context(), paths, 4)
	assert.Empty(t, records)
}

func TestProcessAll_WorkerBoundBelowOne(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestDocx(t, dir, "solo.docx", `<w:p><w:r><w:t>Solo Doc</w:t></w:r></w:p>`),
	}

	e := newTestEngine(nil, nil)
	records := e.ProcessAll(t.Context(), paths, 0)
	assert.Len(t, records, 1)
}
