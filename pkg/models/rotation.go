package models

import "github.com/taigrr/asciirast/pkg/math3d"

// Rotation holds Euler angles in radians, one per axis.
type Rotation struct {
	X, Y, Z float64
}

// NewRotation creates a Rotation from per-axis angles.
func NewRotation(x, y, z float64) Rotation {
	return Rotation{X: x, Y: y, Z: z}
}

// IsZero reports whether all angles are zero.
func (r Rotation) IsZero() bool {
	return r.X == 0 && r.Y == 0 && r.Z == 0
}

// Matrix returns the 3x3 rotation matrix Rz * Ry * Rx.
func (r Rotation) Matrix() math3d.Matrix[float64] {
	return math3d.EulerRotation(r.X, r.Y, r.Z)
}
