package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/models"
	"golang.org/x/sync/errgroup"
)

// Renderer draws a scene into a back buffer, swaps it to the front and
// presents the front buffer in parallel bands, at a fixed frame rate.
type Renderer struct {
	writer   TerminalWriter
	opts     options
	meshes   []models.Mesh
	logger   *slog.Logger
	handler  ErrorHandler
	interval time.Duration

	front, back *AsciiBuffer
	transfer    *Transferer

	light   atomic.Pointer[math3d.Vec3]
	running atomic.Bool
	frames  atomic.Uint64
}

// New creates an idle Renderer presenting to w.
func New(w TerminalWriter, opts ...Option) (*Renderer, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil terminal writer", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.fps <= 0 {
		return nil, fmt.Errorf("%w: fps %d", ErrInvalidConfig, o.fps)
	}
	if !o.quality.Valid() {
		return nil, fmt.Errorf("%w: quality %d", ErrInvalidConfig, int(o.quality))
	}

	front, err := NewAsciiBuffer(o.width, o.height)
	if err != nil {
		return nil, err
	}
	back, _ := NewAsciiBuffer(o.width, o.height)

	r := &Renderer{
		writer:   w,
		opts:     o,
		meshes:   append([]models.Mesh(nil), o.meshes...),
		logger:   o.logger,
		handler:  o.errorHandler,
		interval: time.Second / time.Duration(o.fps),
		front:    front,
		back:     back,
		transfer: &Transferer{ApplyTransform: o.applyTransform},
	}
	if r.logger == nil {
		r.logger = newNopLogger()
	}
	if r.handler == nil {
		r.handler = logErrors{logger: r.logger}
	}
	if err := r.SetLightDirection(o.light); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

// SetLightDirection changes the light used from the next frame on. The
// direction is normalized; a zero or non-finite direction is rejected.
func (r *Renderer) SetLightDirection(dir math3d.Vec3) error {
	n, err := dir.Normalize()
	if err != nil {
		return fmt.Errorf("light direction %v: %w", dir, err)
	}
	r.light.Store(&n)
	return nil
}

// LightDirection returns the current unit light direction.
func (r *Renderer) LightDirection() math3d.Vec3 {
	return *r.light.Load()
}

// Frames returns the number of frames presented so far.
func (r *Renderer) Frames() uint64 {
	return r.frames.Load()
}

// Interval returns the target time between frames.
func (r *Renderer) Interval() time.Duration {
	return r.interval
}

// Size returns the frame size in cells.
func (r *Renderer) Size() (width, height int) {
	return r.opts.width, r.opts.height
}

// Stats returns the transfer statistics of the last frame. It must not be
// called while Start is running.
func (r *Renderer) Stats() TransferStats {
	return r.transfer.Stats
}

// Snapshot returns the last presented frame as text. It must not be
// called while Start is running.
func (r *Renderer) Snapshot() string {
	return r.front.String()
}

// Start runs the render loop until ctx is cancelled, then returns nil.
// Frame errors go to the error handler and the loop continues. Starting
// a renderer that is already running fails with ErrAlreadyRunning.
func (r *Renderer) Start(ctx context.Context, cam Camera) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.running.Store(false)

	r.logger.Info("render loop started",
		"fps", r.opts.fps,
		"quality", r.opts.quality,
		"width", r.opts.width,
		"height", r.opts.height,
		"meshes", len(r.meshes),
	)

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			r.logger.Info("render loop stopped", "frames", r.Frames())
			return nil
		}

		start := time.Now()
		if err := r.frame(ctx, cam); err != nil && !abandoned(ctx, err) {
			r.handler.HandleError(err)
		}

		elapsed := time.Since(start)
		if elapsed >= r.interval {
			r.logger.Debug("frame late", "elapsed", elapsed, "interval", r.interval)
			continue
		}

		timer.Reset(r.interval - elapsed)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

// RenderFrame draws and presents a single frame outside the loop and
// returns its error instead of handing it to the error handler.
func (r *Renderer) RenderFrame(ctx context.Context, cam Camera) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.running.Store(false)
	return r.frame(ctx, cam)
}

// frame runs one transfer, swap and present cycle.
func (r *Renderer) frame(ctx context.Context, cam Camera) error {
	n := r.frames.Load()
	if r.opts.frameHook != nil {
		r.opts.frameHook(r, n)
	}

	if err := r.transfer.Transfer(r.back, cam, r.LightDirection(), r.meshes); err != nil {
		return fmt.Errorf("frame %d: transfer: %w", n, err)
	}

	r.front, r.back = r.back, r.front

	err := r.present(ctx)
	if abandoned(ctx, err) {
		return fmt.Errorf("frame %d abandoned: %w", n, err)
	}
	r.frames.Add(1)
	if err != nil {
		return fmt.Errorf("frame %d: %w", n, err)
	}
	return nil
}

// present writes the front buffer in quality bands concurrently and
// flushes once all of them are done. Failures of every band are joined.
// Bands not yet started when ctx is cancelled are skipped, and the partial
// frame is never flushed; the error then wraps ctx.Err().
func (r *Renderer) present(ctx context.Context) error {
	bands, err := r.opts.quality.Bands(r.front)
	if err != nil {
		return err
	}

	errs := make([]error, len(bands)+1)
	var skipped atomic.Bool
	var g errgroup.Group
	g.SetLimit(r.opts.quality.Workers())
	for i, band := range bands {
		g.Go(func() error {
			if ctx.Err() != nil {
				skipped.Store(true)
				return nil
			}
			errs[i] = band.Present(r.writer)
			return nil
		})
	}
	_ = g.Wait()

	if skipped.Load() {
		errs[len(bands)] = ctx.Err()
		return errors.Join(errs...)
	}
	if err := r.writer.Flush(); err != nil {
		errs[len(bands)] = fmt.Errorf("%w: flush: %w", ErrPresentation, err)
	}
	return errors.Join(errs...)
}

// abandoned reports whether err stems from ctx being cancelled mid-frame.
func abandoned(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}
