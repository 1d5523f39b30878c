package restore_engine

import (
	"image"
	"math"
)

// cannyEdges runs Canny-style edge detection with a 3x3 Sobel
// aperture: gradient, non-maximum suppression, then hysteresis between
// the low and high thresholds. The result is a binary edge map.
func cannyEdges(img *image.Gray, low, high float64) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	edges := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return edges
	}

	gx := make([]float64, w*h)
	gy := make([]float64, w*h)
	mag := make([]float64, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := func(dx, dy int) float64 { return float64(grayAtClamped(img, x+dx, y+dy)) }
			sx := -p(-1, -1) + p(1, -1) - 2*p(-1, 0) + 2*p(1, 0) - p(-1, 1) + p(1, 1)
			sy := -p(-1, -1) - 2*p(0, -1) - p(1, -1) + p(-1, 1) + 2*p(0, 1) + p(1, 1)
			i := y*w + x
			gx[i], gy[i] = sx, sy
			mag[i] = math.Abs(sx) + math.Abs(sy)
		}
	}

	// Non-maximum suppression along the quantized gradient direction.
	const (
		strong = 255
		weak   = 128
	)
	state := make([]uint8, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m < low {
				continue
			}

			var n1, n2 float64
			angle := math.Atan2(gy[i], gx[i]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				n1, n2 = mag[i-1], mag[i+1]
			case angle < 67.5:
				n1, n2 = mag[(y-1)*w+x+1], mag[(y+1)*w+x-1]
			case angle < 112.5:
				n1, n2 = mag[(y-1)*w+x], mag[(y+1)*w+x]
			default:
				n1, n2 = mag[(y-1)*w+x-1], mag[(y+1)*w+x+1]
			}
			if m < n1 || m < n2 {
				continue
			}

			if m >= high {
				state[i] = strong
			} else {
				state[i] = weak
			}
		}
	}

	// Hysteresis: weak pixels survive only when connected to a strong
	// one through the 8-neighborhood.
	stack := make([]int, 0, w)
	for i := range state {
		if state[i] == strong {
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		edges.Pix[edges.PixOffset(x, y)] = 255

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == weak {
					state[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	return edges
}
