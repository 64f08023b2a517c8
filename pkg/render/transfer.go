package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/models"
)

// TransferStats counts the work of the last Transfer call.
type TransferStats struct {
	Meshes     int // Meshes drawn
	Triangles  int // Triangles drawn
	Degenerate int // Triangles without a normal, shaded with the sparsest glyph
	Points     int // Rasterized edge points
	Written    int // Points written to the buffer
	Dropped    int // Points behind the camera or off the grid
}

// Transferer projects and shades meshes into a frame buffer. Faces are
// flat shaded by the angle between their normal and the light, drawn as
// outlines, and later triangles overwrite earlier ones.
//
// A Transferer reuses scratch space between calls and is not safe for
// concurrent use.
type Transferer struct {
	Stats TransferStats

	// ApplyTransform draws meshes with their Scale, Rotation and Position
	// applied. When false the raw triangle vertices are drawn.
	ApplyTransform bool

	points []math3d.Vec3
}

// NewTransferer creates a Transferer.
func NewTransferer() *Transferer {
	return &Transferer{}
}

// ResetStats clears the statistics (done by every Transfer).
func (t *Transferer) ResetStats() {
	t.Stats = TransferStats{}
}

// Transfer clears buf and draws meshes into it as seen by cam with the
// given light direction, which is normalized here.
func (t *Transferer) Transfer(buf *AsciiBuffer, cam Camera, light math3d.Vec3, meshes []models.Mesh) error {
	t.ResetStats()
	buf.Clear()

	light, err := light.Normalize()
	if err != nil {
		return fmt.Errorf("light direction: %w", err)
	}

	f := cam.FocalLength()
	width, height := float64(buf.Width()), float64(buf.Height())

	for _, m := range meshes {
		triangles := m.Triangles
		if t.ApplyTransform {
			triangles, err = m.Transformed()
			if err != nil {
				return err
			}
		}

		t.Stats.Meshes++
		for _, tri := range triangles {
			t.Stats.Triangles++

			var intensity float64
			normal, err := tri.Normal()
			if errors.Is(err, math3d.ErrDegenerateVector) {
				t.Stats.Degenerate++
			} else {
				intensity = Intensity(normal, light)
			}
			glyph := GlyphFor(intensity)

			t.points = tri.AppendRaster(t.points[:0])
			t.Stats.Points += len(t.points)

			for _, p := range t.points {
				v, ok := Project(p, f)
				if !ok {
					t.Stats.Dropped++
					continue
				}
				x, y := math.Floor(v.X), math.Floor(v.Y)
				if x < 0 || y < 0 || x >= width || y >= height {
					t.Stats.Dropped++
					continue
				}
				buf.set(int(x), int(y), glyph)
				t.Stats.Written++
			}
		}
	}
	return nil
}
