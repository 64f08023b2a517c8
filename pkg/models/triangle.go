package models

import (
	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/raster"
)

// Triangle is a face of three corner points. Vertex order defines the
// winding used by Normal.
type Triangle struct {
	Vertices [3]math3d.Vec3
}

// NewTriangle creates a Triangle from three corners.
func NewTriangle(v0, v1, v2 math3d.Vec3) Triangle {
	return Triangle{Vertices: [3]math3d.Vec3{v0, v1, v2}}
}

// Normal returns the unit face normal normalize((v1-v0) x (v2-v0)).
// It is recomputed on every call. A triangle with collinear or coincident
// corners has no normal and fails with math3d.ErrDegenerateVector.
func (t Triangle) Normal() (math3d.Vec3, error) {
	edge1 := t.Vertices[1].Sub(t.Vertices[0])
	edge2 := t.Vertices[2].Sub(t.Vertices[0])
	return edge1.Cross(edge2).Normalize()
}

// Rasterize returns the grid cells of the three edges v0->v1, v1->v2 and
// v2->v0, concatenated in that order. Only the outline is produced; the
// interior is not filled.
func (t Triangle) Rasterize() []math3d.Vec3 {
	return t.AppendRaster(nil)
}

// AppendRaster is like Rasterize but appends to dst.
func (t Triangle) AppendRaster(dst []math3d.Vec3) []math3d.Vec3 {
	v := t.Vertices
	dst = raster.AppendLine(dst, v[0], v[1])
	dst = raster.AppendLine(dst, v[1], v[2])
	dst = raster.AppendLine(dst, v[2], v[0])
	return dst
}

// Transform applies scale, then rotation, then translation to every corner.
func (t Triangle) Transform(scale math3d.Vec3, rot math3d.Matrix[float64], translate math3d.Vec3) (Triangle, error) {
	var out Triangle
	for i, v := range t.Vertices {
		r, err := v.Mul(scale).Transform(rot)
		if err != nil {
			return Triangle{}, err
		}
		out.Vertices[i] = r.Add(translate)
	}
	return out, nil
}
