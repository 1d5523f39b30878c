package restore_engine

import (
	"image"
	"image/color"
	"math"
)

// grayAtClamped reads a pixel with edge replication for out-of-bounds
// coordinates. Coordinates are relative to the image origin.
func grayAtClamped(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	if x < 0 {
		x = 0
	} else if x >= b.Dx() {
		x = b.Dx() - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.Dy() {
		y = b.Dy() - 1
	}
	return img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
}

func grayValue(v float64) color.Gray {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return color.Gray{Y: uint8(math.Round(v))}
}

// sampleCubic samples the image at a fractional coordinate using
// Catmull-Rom interpolation over the 4x4 neighborhood, with edge
// replication outside the image.
func sampleCubic(img *image.Gray, x, y float64) color.Gray {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	var col [4]float64
	for j := 0; j < 4; j++ {
		var row [4]float64
		for i := 0; i < 4; i++ {
			row[i] = float64(grayAtClamped(img, x0-1+i, y0-1+j))
		}
		col[j] = catmullRom(row, fx)
	}
	return grayValue(catmullRom(col, fy))
}

// catmullRom evaluates the Catmull-Rom spline through four samples at
// parameter t in [0,1] between p[1] and p[2].
func catmullRom(p [4]float64, t float64) float64 {
	return p[1] + 0.5*t*(p[2]-p[0]+t*(2*p[0]-5*p[1]+4*p[2]-p[3]+t*(3*(p[1]-p[2])+p[3]-p[0])))
}
