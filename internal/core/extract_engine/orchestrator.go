package extract_engine

import (
	"context"
	"log"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/Resumelens/internal/models"
)

// ProcessAll fans the batch out across a bounded worker pool and
// collects every successful record in completion order. A single
// document's failure never aborts the batch: it is logged and the
// path is dropped from the result.
func (e *Engine) ProcessAll(ctx context.Context, paths []string, maxWorkers int) []models.DocumentRecord {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	results := make(chan models.DocumentRecord, len(paths))

	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for _, path := range paths {
		g.Go(func() error {
			record, err := e.ProcessDocument(ctx, path)
			if err != nil {
				log.Printf("extract: failed to process %s: %v", filepath.Base(path), err)
				return nil
			}
			results <- *record
			log.Printf("extract: successfully processed %s", filepath.Base(path))
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	records := make([]models.DocumentRecord, 0, len(paths))
	for record := range results {
		records = append(records, record)
	}
	return records
}
