package render

import (
	"math"

	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/models"
)

// Camera describes the view used to project points onto the character
// grid. The camera sits at the origin looking down +Z; Location and
// Rotation are carried for callers but do not move the view.
type Camera struct {
	Location math3d.Vec3
	Width    int
	Height   int
	Rotation models.Rotation
	FOV      float64 // Field of view in radians
}

// CameraConfig collects the optional parts of a Camera. Build fills
// whatever was left unset.
type CameraConfig struct {
	Location *math3d.Vec3
	Width    *int
	Height   *int
	FOV      *float64
}

// Camera defaults.
const (
	DefaultCameraWidth  = 100
	DefaultCameraHeight = 60
	DefaultFOV          = math.Pi / 2
)

// Build finalizes the configuration. Defaults: location (0, 0, 0), width
// 100, height 60, fov π/2.
func (c CameraConfig) Build() Camera {
	cam := Camera{
		Width:  DefaultCameraWidth,
		Height: DefaultCameraHeight,
		FOV:    DefaultFOV,
	}
	if c.Location != nil {
		cam.Location = *c.Location
	}
	if c.Width != nil {
		cam.Width = *c.Width
	}
	if c.Height != nil {
		cam.Height = *c.Height
	}
	if c.FOV != nil {
		cam.FOV = *c.FOV
	}
	return cam
}

// NewCamera returns a camera with default settings.
func NewCamera() Camera {
	return CameraConfig{}.Build()
}

// FocalLength returns (height/2) / tan(fov/2). The half height is taken
// in whole cells.
func (c Camera) FocalLength() float64 {
	return float64(c.Height/2) / math.Tan(c.FOV/2)
}

// Project maps p to grid coordinates using focal length f. Points on or
// behind the camera plane and non-finite results are rejected.
func Project(p math3d.Vec3, f float64) (math3d.Vec2, bool) {
	if !(p.Z > 0) {
		return math3d.Vec2{}, false
	}
	v := p.Project(f)
	if !v.IsFinite() {
		return math3d.Vec2{}, false
	}
	return v, true
}

// Placement returns the camera-space position whose projection lands on
// grid cell (col, row) at depth z.
func (c Camera) Placement(col, row, z float64) math3d.Vec3 {
	f := c.FocalLength()
	return math3d.V3(col*z/f, row*z/f, z)
}
