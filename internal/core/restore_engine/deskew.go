package restore_engine

import (
	"image"
	"log"
	"math"
	"sort"
)

// deskew estimates page rotation from near-horizontal line segments
// and corrects it. The input is returned unchanged when no segments
// survive filtering or when the estimated skew is below the minimum
// correction threshold.
func (r *Restorer) deskew(img *image.Gray) *image.Gray {
	edges := cannyEdges(img, r.CannyLow, r.CannyHigh)
	segments := houghSegments(edges, r.HoughThresh, r.HoughMinLen, r.HoughMaxGap)
	if len(segments) == 0 {
		return img
	}

	var angles []float64
	for _, seg := range segments {
		angle := seg.angleDegrees()
		// Near-vertical segments are graphics or noise, not page skew.
		if math.Abs(angle) < 45 {
			angles = append(angles, angle)
		}
	}
	if len(angles) == 0 {
		return img
	}

	// Median is robust against outlier segments from non-text graphics.
	skew := median(angles)
	if math.IsNaN(skew) || math.Abs(skew) < r.MinSkewDegree {
		return img
	}

	log.Printf("restore: correcting skew of %.2f degrees", skew)
	return rotateExpand(img, skew)
}

func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// rotateExpand rotates the image about its center by the given angle
// (degrees, counter-clockwise) onto an expanded canvas so no content
// is cropped. Cubic sampling with edge replication.
func rotateExpand(img *image.Gray, degrees float64) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	theta := degrees * math.Pi / 180
	cos := math.Cos(theta)
	sin := math.Sin(theta)

	newW := int(float64(h)*math.Abs(sin) + float64(w)*math.Abs(cos))
	newH := int(float64(h)*math.Abs(cos) + float64(w)*math.Abs(sin))
	if newW < w {
		newW = w
	}
	if newH < h {
		newH = h
	}

	// Forward map: dst = A*src + t, with t moving the source center to
	// the new canvas center.
	cx, cy := float64(w)/2, float64(h)/2
	tx := float64(newW)/2 - (cos*cx + sin*cy)
	ty := float64(newH)/2 - (-sin*cx + cos*cy)

	out := image.NewGray(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			// Inverse of the rotation recovers the source coordinate.
			dx := float64(x) - tx
			dy := float64(y) - ty
			sx := cos*dx - sin*dy
			sy := sin*dx + cos*dy
			out.SetGray(x, y, sampleCubic(img, sx, sy))
		}
	}
	return out
}
