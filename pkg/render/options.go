package render

import (
	"log/slog"

	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/models"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.New(render.NewANSIWriter(os.Stdout),
//		render.WithSize(80, 40),
//		render.WithQuality(render.QualityHigh),
//		render.WithMeshes(models.Cube(2)),
//	)
type Option func(*options)

type options struct {
	fps            int
	quality        Quality
	width, height  int
	light          math3d.Vec3
	meshes         []models.Mesh
	errorHandler   ErrorHandler
	logger         *slog.Logger
	frameHook      func(*Renderer, uint64)
	applyTransform bool
}

// Renderer defaults.
const (
	DefaultFPS    = 60
	DefaultWidth  = 100
	DefaultHeight = 50
)

func defaultOptions() options {
	return options{
		fps:     DefaultFPS,
		quality: QualityLow,
		width:   DefaultWidth,
		height:  DefaultHeight,
		light:   math3d.V3(0, 0, -1), // toward the camera
		logger:  slog.Default(),
	}
}

// WithFPS sets the target frame rate.
func WithFPS(fps int) Option {
	return func(o *options) { o.fps = fps }
}

// WithQuality sets how many bands present a frame in parallel.
func WithQuality(q Quality) Option {
	return func(o *options) { o.quality = q }
}

// WithSize sets the frame size in cells.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithLight sets the initial light direction. It need not be unit length
// but must not be zero.
func WithLight(dir math3d.Vec3) Option {
	return func(o *options) { o.light = dir }
}

// WithMeshes sets the scene, drawn in the given order.
func WithMeshes(meshes ...models.Mesh) Option {
	return func(o *options) { o.meshes = meshes }
}

// WithErrorHandler sets the handler for errors the loop recovers from.
// The default logs them at warn level.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) { o.errorHandler = h }
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFrameHook registers fn to run on the render goroutine before each
// frame is drawn, with the frame number. It may call SetLightDirection.
func WithFrameHook(fn func(r *Renderer, frame uint64)) Option {
	return func(o *options) { o.frameHook = fn }
}

// WithMeshTransform makes the renderer apply each mesh's Scale, Rotation
// and Position. By default raw vertices are drawn.
func WithMeshTransform(enabled bool) Option {
	return func(o *options) { o.applyTransform = enabled }
}
