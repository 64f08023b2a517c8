package math3d

// Vec2 represents a 2D vector, typically a point on the image plane.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (a Vec2) IsFinite() bool {
	return finite(a.X) && finite(a.Y)
}
