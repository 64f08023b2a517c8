// Package raster converts continuous edges into discrete grid cells.
package raster

import (
	"math"

	"github.com/taigrr/asciirast/pkg/math3d"
)

// Line returns every integer grid cell on the segment between the rounded
// (x, y) of start and end, using Bresenham's algorithm. The result is
// ordered from start to end and includes both endpoints; start == end
// yields a single point. All points carry start.Z unchanged.
//
// A segment with a non-finite endpoint, or one reaching beyond MaxCoord,
// has no cells and yields nil.
func Line(start, end math3d.Vec3) []math3d.Vec3 {
	return AppendLine(nil, start, end)
}

// MaxCoord bounds the absolute x and y a segment endpoint may have.
const MaxCoord = 1 << 24

// AppendLine is like Line but appends the cells to dst, letting callers
// reuse one slice across edges.
func AppendLine(dst []math3d.Vec3, start, end math3d.Vec3) []math3d.Vec3 {
	if !drawable(start) || !drawable(end) {
		return dst
	}

	x0, y0 := round(start.X), round(start.Y)
	x1, y1 := round(end.X), round(end.Y)
	z := start.Z

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		dst = append(dst, math3d.V3(float64(x0), float64(y0), z))
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}

	return dst
}

// LineLen returns the number of cells Line would produce for the segment,
// without allocating.
func LineLen(start, end math3d.Vec3) int {
	if !drawable(start) || !drawable(end) {
		return 0
	}
	dx := abs(round(end.X) - round(start.X))
	dy := abs(round(end.Y) - round(start.Y))
	return max(dx, dy) + 1
}

func round(f float64) int {
	return int(math.Round(f))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func drawable(p math3d.Vec3) bool {
	return p.IsFinite() && math.Abs(p.X) <= MaxCoord && math.Abs(p.Y) <= MaxCoord
}
