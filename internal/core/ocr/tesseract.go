package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/markdave123-py/Resumelens/internal/core"
)

var _ core.OCRClient = (*TesseractClient)(nil)

// TesseractClient implements OCRClient on the gosseract bindings. A
// fresh gosseract client is created per call; the bindings are not
// safe for concurrent reuse and setup cost is negligible next to
// recognition itself.
type TesseractClient struct {
	languages      []string
	tessdataPrefix string
}

// NewTesseractClient constructs the OCR client. The tessdata prefix
// is deployment configuration and may be empty to use the system
// default.
func NewTesseractClient(languages []string, tessdataPrefix string) *TesseractClient {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractClient{languages: languages, tessdataPrefix: tessdataPrefix}
}

// RecognizeText runs Tesseract over a binarized page in single-block
// segmentation mode and returns the trimmed text.
func (c *TesseractClient) RecognizeText(ctx context.Context, img *image.Gray) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if c.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(c.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(c.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set segmentation mode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
