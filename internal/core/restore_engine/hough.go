package restore_engine

import (
	"image"
	"math"
	"math/rand"
)

// lineSegment is one detected segment in pixel coordinates.
type lineSegment struct {
	X1, Y1, X2, Y2 int
}

// angleDegrees is the segment's orientation via atan2 in degrees.
func (l lineSegment) angleDegrees() float64 {
	return math.Atan2(float64(l.Y2-l.Y1), float64(l.X2-l.X1)) * 180 / math.Pi
}

// houghSegments runs a probabilistic line-segment transform over a
// binary edge map: random edge points vote in a rho/theta accumulator;
// once a direction passes the vote threshold the edge image is walked
// along that direction to recover the actual segment, tolerating gaps
// up to maxGap and keeping segments of at least minLen pixels. Voting
// uses a fixed seed so the stage is deterministic for a given input.
func houghSegments(edges *image.Gray, threshold, minLen, maxGap int) []lineSegment {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()

	type point struct{ x, y int }
	var points []point
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 0 {
				points = append(points, point{x, y})
				mask[y*w+x] = true
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	const numAngles = 180
	sinT := make([]float64, numAngles)
	cosT := make([]float64, numAngles)
	for t := 0; t < numAngles; t++ {
		rad := float64(t) * math.Pi / numAngles
		sinT[t] = math.Sin(rad)
		cosT[t] = math.Cos(rad)
	}

	maxRho := int(math.Hypot(float64(w), float64(h))) + 1
	accum := make([]int, numAngles*(2*maxRho))

	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })

	var segments []lineSegment
	for _, p := range points {
		if !mask[p.y*w+p.x] {
			continue // consumed by an earlier segment
		}

		// Vote and track the winning direction for this point.
		bestT, bestVotes := -1, threshold-1
		for t := 0; t < numAngles; t++ {
			rho := int(math.Round(float64(p.x)*cosT[t] + float64(p.y)*sinT[t])) + maxRho
			idx := t*2*maxRho + rho
			accum[idx]++
			if accum[idx] > bestVotes {
				bestVotes = accum[idx]
				bestT = t
			}
		}
		if bestT < 0 {
			continue
		}

		// Walk the edge image along the winning direction from this
		// point, in both directions, bridging gaps up to maxGap.
		dx, dy := -sinT[bestT], cosT[bestT]
		if math.Abs(dx) < math.Abs(dy) {
			// Normalize the dominant axis to unit steps.
			dx, dy = dx/math.Abs(dy), dy/math.Abs(dy)
		} else {
			dx, dy = dx/math.Abs(dx), dy/math.Abs(dx)
		}

		ends := [2]point{}
		for dir := 0; dir < 2; dir++ {
			sx, sy := dx, dy
			if dir == 1 {
				sx, sy = -dx, -dy
			}
			fx, fy := float64(p.x), float64(p.y)
			gap := 0
			lastX, lastY := p.x, p.y
			for {
				fx += sx
				fy += sy
				x, y := int(math.Round(fx)), int(math.Round(fy))
				if x < 0 || y < 0 || x >= w || y >= h {
					break
				}
				if onEdge(mask, w, h, x, y) {
					gap = 0
					lastX, lastY = x, y
				} else {
					gap++
					if gap > maxGap {
						break
					}
				}
			}
			ends[dir] = point{lastX, lastY}
		}

		seg := lineSegment{X1: ends[1].x, Y1: ends[1].y, X2: ends[0].x, Y2: ends[0].y}
		length := math.Hypot(float64(seg.X2-seg.X1), float64(seg.Y2-seg.Y1))
		if length < float64(minLen) {
			continue
		}

		segments = append(segments, seg)
		eraseSegment(mask, accum, sinT, cosT, maxRho, w, h, seg)
	}

	return segments
}

// onEdge checks the pixel and its immediate vertical/horizontal
// neighbors so slightly jagged lines still connect.
func onEdge(mask []bool, w, h, x, y int) bool {
	if mask[y*w+x] {
		return true
	}
	if x+1 < w && mask[y*w+x+1] {
		return true
	}
	if y+1 < h && mask[(y+1)*w+x] {
		return true
	}
	return false
}

// eraseSegment removes a recovered segment's pixels from the edge mask
// and cancels their accumulator votes so they cannot seed another
// segment.
func eraseSegment(mask []bool, accum []int, sinT, cosT []float64, maxRho, w, h int, seg lineSegment) {
	steps := int(math.Max(math.Abs(float64(seg.X2-seg.X1)), math.Abs(float64(seg.Y2-seg.Y1)))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(seg.X1) + t*float64(seg.X2-seg.X1)))
		y := int(math.Round(float64(seg.Y1) + t*float64(seg.Y2-seg.Y1)))
		if x < 0 || y < 0 || x >= w || y >= h || !mask[y*w+x] {
			continue
		}
		mask[y*w+x] = false
		for th := 0; th < len(sinT); th++ {
			rho := int(math.Round(float64(x)*cosT[th] + float64(y)*sinT[th])) + maxRho
			idx := th*2*maxRho + rho
			if accum[idx] > 0 {
				accum[idx]--
			}
		}
	}
}
