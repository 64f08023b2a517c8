package math3d

import "math"

// RotationX returns the 3x3 matrix rotating points by angle (radians)
// around the X axis.
func RotationX(angle float64) Matrix[float64] {
	c, s := math.Cos(angle), math.Sin(angle)
	return MustFromRows([][]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	})
}

// RotationY returns the 3x3 matrix rotating points by angle (radians)
// around the Y axis.
func RotationY(angle float64) Matrix[float64] {
	c, s := math.Cos(angle), math.Sin(angle)
	return MustFromRows([][]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	})
}

// RotationZ returns the 3x3 matrix rotating points by angle (radians)
// around the Z axis.
func RotationZ(angle float64) Matrix[float64] {
	c, s := math.Cos(angle), math.Sin(angle)
	return MustFromRows([][]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	})
}

// Rotation2D returns the 2x2 matrix rotating row vectors counter-clockwise
// by angle (radians).
func Rotation2D(angle float64) Matrix[float64] {
	c, s := math.Cos(angle), math.Sin(angle)
	return MustFromRows([][]float64{
		{c, s},
		{-s, c},
	})
}

// EulerRotation composes the X, Y and Z rotations as Rz * Ry * Rx, so X
// is applied first.
func EulerRotation(x, y, z float64) Matrix[float64] {
	zy, _ := RotationZ(z).Mul(RotationY(y))
	m, _ := zy.Mul(RotationX(x))
	return m
}
