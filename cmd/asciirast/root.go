package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/render"
)

// config holds the parsed command line.
type config struct {
	modelPath string
	fps       int
	quality   string
	width     int
	height    int
	fov       float64 // degrees
	light     string
	distance  float64
	ansi      bool
	color     string
	transform bool
	sway      bool
	once      bool
	logPath   string
}

func newRootCmd() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "asciirast [model.glb|model.gltf]",
		Short: "Render 3D meshes as ASCII art in the terminal",
		Long: "asciirast projects triangle meshes onto a character grid, shades each face\n" +
			"by its angle to the light and redraws the frame at a fixed rate.\n" +
			"Without a model a unit cube is shown.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.modelPath = args[0]
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.fps, "fps", render.DefaultFPS, "target frames per second")
	f.StringVar(&cfg.quality, "quality", "low", "presentation workers: low, medium or high")
	f.IntVar(&cfg.width, "width", 0, "frame width in cells (default: terminal width)")
	f.IntVar(&cfg.height, "height", 0, "frame height in cells (default: terminal height)")
	f.Float64Var(&cfg.fov, "fov", 90, "field of view in degrees")
	f.StringVar(&cfg.light, "light", "0,0,-1", "light direction as x,y,z")
	f.Float64Var(&cfg.distance, "distance", 0, "distance from the camera to the model center (default: focal length)")
	f.BoolVar(&cfg.ansi, "ansi", false, "write raw ANSI sequences instead of using the cell renderer")
	f.StringVar(&cfg.color, "color", "", "tint glyphs toward this hex color, e.g. #ffcc33")
	f.BoolVar(&cfg.transform, "transform", false, "place the model through its mesh transform (with a tilt)")
	f.BoolVar(&cfg.sway, "sway", false, "swing the light back and forth")
	f.BoolVar(&cfg.once, "once", false, "print a single frame to stdout and exit")
	f.StringVar(&cfg.logPath, "log", "", "write debug logs to this file")

	return cmd
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v[i]); err != nil {
			return math3d.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
