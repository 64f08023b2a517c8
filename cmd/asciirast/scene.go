package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/models"
	"github.com/taigrr/asciirast/pkg/render"
)

// modelFill is the share of the frame height the model spans.
const modelFill = 0.4

// loadScene loads the model (or the cube) and places it in the middle of
// the camera's view at the configured distance. Edges are rasterized before
// projection, so the default distance of one focal length maps one unit to
// one cell and keeps outlines unbroken.
func loadScene(cfg *config, cam render.Camera) (models.Mesh, error) {
	distance := cfg.distance
	if distance <= 0 {
		distance = cam.FocalLength()
	}

	mesh := models.Cube(1)
	if cfg.modelPath != "" {
		ext := strings.ToLower(filepath.Ext(cfg.modelPath))
		if ext != ".glb" && ext != ".gltf" {
			return models.Mesh{}, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
		}
		var err error
		mesh, err = models.LoadGLB(cfg.modelPath)
		if err != nil {
			return models.Mesh{}, fmt.Errorf("load model: %w", err)
		}
	}

	// World units spanning modelFill of the frame at the model's depth.
	extent := modelFill * float64(cam.Height) * distance / cam.FocalLength()
	mesh = mesh.Fit(extent)
	center := cam.Placement(float64(cam.Width)/2, float64(cam.Height)/2, distance)

	if cfg.transform {
		mesh.Position = center
		mesh.Rotation = models.NewRotation(0.5, 0.6, 0)
		return mesh, nil
	}
	mesh = mesh.Translated(center)
	mesh.Position = math3d.Zero3()
	return mesh, nil
}

// lightSway swings the light around the Y axis, easing between the two
// extremes with a spring.
type lightSway struct {
	base     math3d.Vec3
	angle    float64
	velocity float64
	target   float64
	spring   harmonica.Spring
	period   uint64 // frames between target flips
	logger   *slog.Logger
}

const swayAngle = 1.0 // radians either side of the base direction

func newLightSway(base math3d.Vec3, fps int, logger *slog.Logger) *lightSway {
	return &lightSway{
		logger: orNop(logger),
		base: base,
		// Frequency 1.5, damping 0.6: a slightly bouncy swing.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 1.5, 0.6),
		target: swayAngle,
		period: uint64(2 * fps),
	}
}

// Step advances the sway by one frame and returns the light direction.
func (s *lightSway) Step(frame uint64) math3d.Vec3 {
	if frame > 0 && frame%s.period == 0 {
		s.target = -s.target
	}
	s.angle, s.velocity = s.spring.Update(s.angle, s.velocity, s.target)

	dir, err := s.base.Transform(math3d.RotationY(s.angle))
	if err != nil {
		return s.base
	}
	return dir
}

// hook adapts the sway to a renderer frame hook.
func (s *lightSway) hook(r *render.Renderer, frame uint64) {
	dir := s.Step(frame)
	if err := r.SetLightDirection(dir); err != nil {
		// The renderer keeps its previous light.
		s.logger.Debug("light sway rejected", "frame", frame, "dir", dir, "err", err)
	}
}
