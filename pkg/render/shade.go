package render

import (
	"math"

	"github.com/taigrr/asciirast/pkg/math3d"
)

// Ramp lists the shading glyphs from sparsest to densest.
const Ramp = " .:-=+*#%@"

var ramp = []rune(Ramp)

// GlyphFor maps a light intensity in [0, 1] to a ramp glyph. Values
// outside the range are clamped and NaN maps to the sparsest glyph.
func GlyphFor(intensity float64) rune {
	if math.IsNaN(intensity) {
		return ramp[0]
	}
	intensity = math.Max(0, math.Min(1, intensity))
	return ramp[int(math.Round(intensity*float64(len(ramp)-1)))]
}

// RampIndex returns the position of g in Ramp, or -1.
func RampIndex(g rune) int {
	for i, r := range ramp {
		if r == g {
			return i
		}
	}
	return -1
}

// Intensity returns max(0, normal·light) for unit vectors.
func Intensity(normal, light math3d.Vec3) float64 {
	return math.Max(0, normal.Dot(light))
}
