package restore_engine

import (
	"image"
	"image/draw"
)

// Restorer transforms a raw raster page into a binarized image
// optimized for text recognition. The five stages run in a fixed
// order and each one degrades to a pass-through when its
// preconditions are not met, so no error ever escapes the pipeline.
type Restorer struct {
	// Denoise parameters (non-local means).
	FilterStrength float64
	TemplateSize   int
	SearchSize     int

	// Deskew parameters.
	CannyLow      float64
	CannyHigh     float64
	HoughThresh   int
	HoughMinLen   int
	HoughMaxGap   int
	MinSkewDegree float64

	// Contrast parameters (CLAHE).
	ClipLimit float64
	TileGrid  int

	// Binarization parameters.
	ThreshBlock int
	ThreshC     float64
}

// NewRestorer returns a Restorer with the tuning used for scanned
// resume pages.
func NewRestorer() *Restorer {
	return &Restorer{
		FilterStrength: 10,
		TemplateSize:   7,
		SearchSize:     21,
		CannyLow:       50,
		CannyHigh:      150,
		HoughThresh:    100,
		HoughMinLen:    100,
		HoughMaxGap:    10,
		MinSkewDegree:  0.5,
		ClipLimit:      2.0,
		TileGrid:       8,
		ThreshBlock:    11,
		ThreshC:        2,
	}
}

// Restore runs the full chain: grayscale, denoise, deskew, contrast
// enhancement, binarization. The output is a single-channel
// black/white image whose dimensions are at least the input's.
func (r *Restorer) Restore(img image.Image) *image.Gray {
	gray := ToGrayscale(img)
	if gray.Bounds().Empty() {
		return gray
	}

	denoised := r.denoise(gray)
	deskewed := r.deskew(denoised)
	enhanced := r.enhanceContrast(deskewed)
	return r.binarize(enhanced)
}

// ToGrayscale collapses multi-channel input to single-channel
// luminance. No-op when the input is already grayscale.
func ToGrayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// TrimBorder crops an n-pixel frame off each side, dropping the dark
// borders flatbed scanners leave. The input is returned unchanged when
// it is too small to trim.
func TrimBorder(img *image.Gray, n int) *image.Gray {
	b := img.Bounds()
	if n <= 0 || b.Dx() <= 2*n || b.Dy() <= 2*n {
		return img
	}
	out := image.NewGray(image.Rect(0, 0, b.Dx()-2*n, b.Dy()-2*n))
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			out.SetGray(x, y, img.GrayAt(b.Min.X+n+x, b.Min.Y+n+y))
		}
	}
	return out
}

// UpscaleForOCR scales the image up to a minimum page height, aspect
// ratio preserved, using cubic interpolation. Pages already tall
// enough are returned unchanged.
func UpscaleForOCR(img *image.Gray, minHeight int) *image.Gray {
	b := img.Bounds()
	h := b.Dy()
	if h == 0 || h >= minHeight {
		return img
	}
	scale := float64(minHeight) / float64(h)
	newW := int(float64(b.Dx()) * scale)
	out := image.NewGray(image.Rect(0, 0, newW, minHeight))
	for y := 0; y < minHeight; y++ {
		sy := float64(y) / scale
		for x := 0; x < newW; x++ {
			sx := float64(x) / scale
			out.SetGray(x, y, sampleCubic(img, sx, sy))
		}
	}
	return out
}
