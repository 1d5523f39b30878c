package restore_engine

import (
	"image"
	"math"
)

// binarize applies adaptive Gaussian-weighted local thresholding: each
// pixel is compared against the Gaussian mean of its ThreshBlock
// neighborhood minus the offset constant. A local cutoff handles the
// spatially varying background brightness of scanned documents that a
// single global threshold cannot.
func (r *Restorer) binarize(img *image.Gray) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	kernel := gaussianKernel(r.ThreshBlock)
	rad := r.ThreshBlock / 2

	// Separable Gaussian: horizontal pass then vertical pass.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -rad; k <= rad; k++ {
				sum += kernel[k+rad] * float64(grayAtClamped(img, x+k, y))
			}
			tmp[y*w+x] = sum
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var mean float64
			for k := -rad; k <= rad; k++ {
				yy := y + k
				if yy < 0 {
					yy = 0
				} else if yy >= h {
					yy = h - 1
				}
				mean += kernel[k+rad] * tmp[yy*w+x]
			}

			threshold := mean - r.ThreshC
			if float64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) > threshold {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}

// gaussianKernel builds a normalized 1D kernel of the given size with
// the sigma convention used for adaptive thresholding
// (0.3*((size-1)*0.5 - 1) + 0.8).
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	rad := size / 2
	kernel := make([]float64, size)
	var sum float64
	for i := -rad; i <= rad; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+rad] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
