package extract_engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/markdave123-py/Resumelens/internal/core"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// processPDF rasterizes every page at the configured DPI and runs the
// raster path per page. Pages are joined with a blank line and
// PageCount reflects the rendered pages. A rendering failure fails
// the whole document.
func (e *Engine) processPDF(ctx context.Context, path string) (*models.DocumentRecord, error) {
	pages, err := e.renderer.RenderPages(ctx, path, e.cfg.RenderDPI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRenderFailure, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: renderer produced no pages for %s", core.ErrRenderFailure, path)
	}

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		texts = append(texts, e.recoverFromRaster(ctx, page))
		log.Printf("extract: processed page %d of %s", i+1, path)
	}

	return newRecord(path, strings.Join(texts, "\n\n"), len(pages)), nil
}
