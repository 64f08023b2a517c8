package render

import (
	"errors"
	"sync"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"
)

// fakeScreen records cells like an ultraviolet screen buffer.
type fakeScreen struct {
	mu    sync.Mutex
	cells map[cell]uv.Cell
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{cells: make(map[cell]uv.Cell)}
}

func (s *fakeScreen) SetCell(x, y int, c *uv.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[cell{x, y}] = *c
}

func TestCellWriterWritesCells(t *testing.T) {
	scr := newFakeScreen()
	displays := 0
	w := NewCellWriter(scr, func() error {
		displays++
		return nil
	})

	if err := w.WriteAt(2, 3, '#'); err != nil {
		t.Fatal(err)
	}
	got := scr.cells[cell{2, 3}]
	if got.Content != "#" || got.Width != 1 {
		t.Errorf("cell = %+v, want content # width 1", got)
	}
	if got.Style.Fg != nil {
		t.Error("untinted cell should keep the default color")
	}

	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if displays != 1 {
		t.Errorf("display called %d times, want 1", displays)
	}
}

func TestCellWriterFlushError(t *testing.T) {
	w := NewCellWriter(newFakeScreen(), func() error { return errWriteFailed })
	if err := w.Flush(); !errors.Is(err, errWriteFailed) {
		t.Errorf("got %v, want display error", err)
	}

	if err := NewCellWriter(newFakeScreen(), nil).Flush(); err != nil {
		t.Errorf("nil display: %v", err)
	}
}

func TestCellWriterTint(t *testing.T) {
	scr := newFakeScreen()
	w := NewCellWriter(scr, nil)
	w.Tint(colorful.Color{R: 1, G: 0.8, B: 0.2})

	_ = w.WriteAt(0, 0, '@')
	_ = w.WriteAt(1, 0, '.')
	_ = w.WriteAt(2, 0, 'x')

	dense, sparse := scr.cells[cell{0, 0}].Style.Fg, scr.cells[cell{1, 0}].Style.Fg
	if dense == nil || sparse == nil {
		t.Fatal("ramp glyphs should be tinted")
	}
	dc, _ := colorful.MakeColor(dense)
	sc, _ := colorful.MakeColor(sparse)
	_, _, dl := dc.Hsl()
	_, _, sl := sc.Hsl()
	if dl <= sl {
		t.Errorf("dense glyph lightness %v should exceed sparse %v", dl, sl)
	}

	if scr.cells[cell{2, 0}].Style.Fg != nil {
		t.Error("glyphs outside the ramp should not be tinted")
	}
}

func TestCellWriterIsTerminalWriter(t *testing.T) {
	var _ TerminalWriter = NewCellWriter(newFakeScreen(), nil)
	var _ TerminalWriter = NewANSIWriter(nil)
}

func TestCellWriterWithLockExcludesWrites(t *testing.T) {
	w := NewCellWriter(newFakeScreen(), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go w.WithLock(func() {
		close(entered)
		<-release
	})
	<-entered

	go func() {
		_ = w.WriteAt(0, 0, '#')
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WriteAt ran while the lock was held")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WriteAt did not resume after the lock was released")
	}
}
