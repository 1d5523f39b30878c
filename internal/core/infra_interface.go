package core

import (
	"context"
	"image"
)

// OCRClient abstracts the external text-recognition engine. It is
// abstract so Tesseract can be replaced with a remote OCR service
// without touching the extraction pipeline.
type OCRClient interface {
	// RecognizeText runs OCR on a single-channel binarized page and
	// returns the recovered text, trimmed.
	RecognizeText(ctx context.Context, img *image.Gray) (string, error)
}

// PageRenderer abstracts the external PDF rasterizer. Implementations
// render every page of the document at the given DPI and return them
// in page order.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfPath string, dpi int) ([]image.Image, error)
}
