package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	_ "image/png" // pdftoppm output format

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/markdave123-py/Resumelens/internal/core"
)

var _ core.PageRenderer = (*PopplerRenderer)(nil)

// PopplerRenderer rasterizes PDF pages by shelling out to pdftoppm.
// The binary location is injected deployment configuration; pdfcpu
// validates the document and supplies the expected page count before
// the renderer runs.
type PopplerRenderer struct {
	pdftoppmPath string
}

func NewPopplerRenderer(pdftoppmPath string) *PopplerRenderer {
	if pdftoppmPath == "" {
		pdftoppmPath = "pdftoppm"
	}
	return &PopplerRenderer{pdftoppmPath: pdftoppmPath}
}

// RenderPages renders every page of the PDF at the given DPI and
// returns them in page order.
func (r *PopplerRenderer) RenderPages(ctx context.Context, pdfPath string, dpi int) ([]image.Image, error) {
	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("pdf has no pages: %s", pdfPath)
	}

	tmpDir, err := os.MkdirTemp("", "resumelens-render-*")
	if err != nil {
		return nil, fmt.Errorf("create render directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, r.pdftoppmPath, "-png", "-r", strconv.Itoa(dpi), pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, out)
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)

	pages := make([]image.Image, 0, len(matches))
	for _, match := range matches {
		img, err := decodePNG(match)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", pdfPath)
	}
	return pages, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rendered page: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page %s: %w", path, err)
	}
	return img, nil
}
