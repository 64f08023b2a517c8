package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/asciirast/pkg/math3d"
	"github.com/taigrr/asciirast/pkg/render"
)

const (
	fallbackWidth  = render.DefaultWidth
	fallbackHeight = render.DefaultHeight
)

func run(ctx context.Context, cfg *config) error {
	quality, err := render.ParseQuality(cfg.quality)
	if err != nil {
		return err
	}
	light, err := parseVec3(cfg.light)
	if err != nil {
		return fmt.Errorf("light: %w", err)
	}
	if cfg.distance < 0 {
		return fmt.Errorf("distance must not be negative, got %v", cfg.distance)
	}

	logger, closeLog, err := openLogger(cfg.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	switch {
	case cfg.once:
		return runOnce(ctx, cfg, quality, light, logger)
	case cfg.ansi:
		return runANSI(ctx, cfg, quality, light, logger)
	default:
		return runCells(ctx, cfg, quality, light, logger)
	}
}

// openLogger returns a debug logger writing to path, or nil (silent) when
// path is empty.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

// frameSize resolves the frame size from flags, falling back to the
// detected terminal size and then to the defaults.
func frameSize(cfg *config, termWidth, termHeight int) (int, int) {
	w, h := cfg.width, cfg.height
	if w <= 0 {
		w = termWidth
	}
	if h <= 0 {
		h = termHeight
	}
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

// newRenderer builds the camera, scene and renderer for a width×height frame.
func newRenderer(cfg *config, w render.TerminalWriter, width, height int, quality render.Quality, light math3d.Vec3, logger *slog.Logger, extra ...render.Option) (*render.Renderer, render.Camera, error) {
	fov := degToRad(cfg.fov)
	cam := render.CameraConfig{Width: &width, Height: &height, FOV: &fov}.Build()

	mesh, err := loadScene(cfg, cam)
	if err != nil {
		return nil, cam, err
	}
	logger = orNop(logger)
	logger.Info("scene loaded", "model", mesh.Name, "triangles", mesh.TriangleCount())

	opts := []render.Option{
		render.WithFPS(cfg.fps),
		render.WithQuality(quality),
		render.WithSize(width, height),
		render.WithLight(light),
		render.WithMeshes(mesh),
		render.WithLogger(logger),
		render.WithMeshTransform(cfg.transform),
	}
	if cfg.sway {
		opts = append(opts, render.WithFrameHook(newLightSway(light, cfg.fps, logger).hook))
	}
	opts = append(opts, extra...)

	r, err := render.New(w, opts...)
	if err != nil {
		return nil, cam, err
	}
	return r, cam, nil
}

// runOnce renders one frame and prints it as plain text.
func runOnce(ctx context.Context, cfg *config, quality render.Quality, light math3d.Vec3, logger *slog.Logger) error {
	tw, th := 0, 0
	if term.IsTerminal(os.Stdout.Fd()) {
		tw, th, _ = term.GetSize(os.Stdout.Fd())
	}
	width, height := frameSize(cfg, tw, th)

	r, cam, err := newRenderer(cfg, render.NewANSIWriter(io.Discard), width, height, quality, light, logger)
	if err != nil {
		return err
	}
	if err := r.RenderFrame(ctx, cam); err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, r.Snapshot())
	return err
}

// runANSI draws with raw cursor sequences on stdout.
func runANSI(ctx context.Context, cfg *config, quality render.Quality, light math3d.Vec3, logger *slog.Logger) error {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return errors.New("stdout is not a terminal (use --once to print a frame)")
	}
	tw, th, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	width, height := frameSize(cfg, tw, th)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	failure := stopOnError(cancel)

	r, cam, err := newRenderer(cfg, render.NewANSIWriter(os.Stdout), width, height, quality, light, logger,
		render.WithErrorHandler(failure))
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, ansi.HideCursor+ansi.EraseEntireScreen)
	defer fmt.Fprint(os.Stdout, ansi.ShowCursor+ansi.CursorPosition(1, height+1))

	if err := r.Start(ctx, cam); err != nil {
		return err
	}
	return failure.err
}

// runCells draws through the ultraviolet terminal.
func runCells(ctx context.Context, cfg *config, quality render.Quality, light math3d.Vec3, logger *slog.Logger) error {
	t := uv.DefaultTerminal()

	tw, th, err := t.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	width, height := frameSize(cfg, tw, th)

	writer := render.NewCellWriter(t, t.Display)
	if cfg.color != "" {
		c, err := colorful.Hex(cfg.color)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		writer.Tint(c)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	failure := stopOnError(cancel)

	r, cam, err := newRenderer(cfg, writer, width, height, quality, light, logger,
		render.WithErrorHandler(failure))
	if err != nil {
		return err
	}

	if err := t.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(tw, th)
	defer func() {
		t.ExitAltScreen()
		t.ShowCursor()
		t.Shutdown(context.Background())
	}()

	go func() {
		for ev := range t.Events() {
			switch ev := ev.(type) {
			case uv.KeyPressEvent:
				if ev.MatchString("q", "escape", "ctrl+c") {
					cancel()
					return
				}
			case uv.WindowSizeEvent:
				// The frame keeps its size; only the screen follows.
				writer.WithLock(func() {
					t.Erase()
					t.Resize(ev.Width, ev.Height)
				})
			}
		}
	}()

	if err := r.Start(ctx, cam); err != nil {
		return err
	}
	return failure.err
}

// firstError is an ErrorHandler that keeps the first error and stops the
// loop.
type firstError struct {
	err    error
	cancel context.CancelFunc
}

func stopOnError(cancel context.CancelFunc) *firstError {
	return &firstError{cancel: cancel}
}

func (f *firstError) HandleError(err error) {
	if f.err == nil {
		f.err = err
	}
	f.cancel()
}

func orNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
