// Package models provides meshes and model loading for asciirast.
package models

import (
	"fmt"
	"math"

	"github.com/taigrr/asciirast/pkg/math3d"
)

// Mesh is an ordered list of triangles plus a placement in the scene.
//
// Position, Rotation and Scale are stored but the renderer draws the raw
// triangle vertices unless mesh transforms are enabled on it explicitly.
type Mesh struct {
	Name      string
	Triangles []Triangle
	Position  math3d.Vec3
	Rotation  Rotation
	Scale     math3d.Vec3
}

// MeshConfig collects the optional parts of a Mesh. Fields may be set in
// any order; Build fills whatever was left unset.
type MeshConfig struct {
	Name      string
	Triangles []Triangle
	Position  *math3d.Vec3
	Rotation  *Rotation
	Scale     *math3d.Vec3
}

// Build finalizes the configuration. Defaults: position (0, 0, 0),
// rotation (0, 0, 0), scale (1, 1, 1).
func (c MeshConfig) Build() Mesh {
	m := Mesh{
		Name:      c.Name,
		Triangles: append([]Triangle(nil), c.Triangles...),
		Position:  math3d.Zero3(),
		Scale:     math3d.One3(),
	}
	if c.Position != nil {
		m.Position = *c.Position
	}
	if c.Rotation != nil {
		m.Rotation = *c.Rotation
	}
	if c.Scale != nil {
		m.Scale = *c.Scale
	}
	return m
}

// NewMesh creates a mesh with default placement.
func NewMesh(name string, triangles ...Triangle) Mesh {
	return MeshConfig{Name: name, Triangles: triangles}.Build()
}

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned bounding box of the raw vertices.
// An empty mesh has zero bounds.
func (m Mesh) Bounds() (lo, hi math3d.Vec3) {
	if len(m.Triangles) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}

	lo = m.Triangles[0].Vertices[0]
	hi = lo
	for _, t := range m.Triangles {
		for _, v := range t.Vertices {
			lo = lo.Min(v)
			hi = hi.Max(v)
		}
	}
	return lo, hi
}

// Center returns the center of the bounding box.
func (m Mesh) Center() math3d.Vec3 {
	lo, hi := m.Bounds()
	return lo.Add(hi).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m Mesh) Size() math3d.Vec3 {
	lo, hi := m.Bounds()
	return hi.Sub(lo)
}

// Fit returns a copy whose vertices are centered on the origin and scaled
// so the largest bounding box dimension equals extent. Placement fields
// are kept.
func (m Mesh) Fit(extent float64) Mesh {
	out := m.Clone()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		return out
	}

	center := m.Center()
	s := extent / maxDim
	for i := range out.Triangles {
		for j, v := range out.Triangles[i].Vertices {
			out.Triangles[i].Vertices[j] = v.Sub(center).Scale(s)
		}
	}
	return out
}

// Translated returns a copy with offset added to every vertex.
func (m Mesh) Translated(offset math3d.Vec3) Mesh {
	out := m.Clone()
	for i := range out.Triangles {
		for j, v := range out.Triangles[i].Vertices {
			out.Triangles[i].Vertices[j] = v.Add(offset)
		}
	}
	return out
}

// Transformed returns the triangles with Scale, Rotation and Position
// applied, in that order.
func (m Mesh) Transformed() ([]Triangle, error) {
	rot := m.Rotation.Matrix()
	out := make([]Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tt, err := t.Transform(m.Scale, rot, m.Position)
		if err != nil {
			return nil, fmt.Errorf("transform triangle %d of %q: %w", i, m.Name, err)
		}
		out[i] = tt
	}
	return out, nil
}

// Clone creates a deep copy of the mesh.
func (m Mesh) Clone() Mesh {
	clone := m
	clone.Triangles = make([]Triangle, len(m.Triangles))
	copy(clone.Triangles, m.Triangles)
	return clone
}
