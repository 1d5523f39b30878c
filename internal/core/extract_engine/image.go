package extract_engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"

	// Decoders for the intake allowlist formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/markdave123-py/Resumelens/internal/core/restore_engine"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// processImage runs the raster path on a single image file: restore,
// then OCR. An OCR engine failure degrades to empty text so the
// uploaded file still yields a record.
func (e *Engine) processImage(ctx context.Context, path string) (*models.DocumentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	text := e.recoverFromRaster(ctx, img)
	return newRecord(path, text, 1), nil
}

// recoverFromRaster is the shared raster pipeline: small pages are
// upscaled first so binarization happens at OCR resolution, then the
// restoration chain runs and the result goes to the OCR engine.
func (e *Engine) recoverFromRaster(ctx context.Context, img image.Image) string {
	gray := restore_engine.UpscaleForOCR(restore_engine.ToGrayscale(img), e.cfg.MinOCRHeight)
	restored := e.restorer.Restore(gray)

	text, err := e.ocr.RecognizeText(ctx, restored)
	if err != nil {
		// Best effort: a blank-text record is still useful downstream,
		// dropping the document would hide the uploaded file.
		log.Printf("extract: OCR failed: %v", err)
		return ""
	}
	return text
}
