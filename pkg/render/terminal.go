package render

import (
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// CellScreen is the part of an ultraviolet screen a CellWriter draws on.
type CellScreen interface {
	SetCell(x, y int, c *uv.Cell)
}

// CellWriter is a TerminalWriter that places glyphs as ultraviolet cells
// and renders them with display on Flush.
type CellWriter struct {
	mu      sync.Mutex
	scr     CellScreen
	display func() error
	tint    []uv.Style // per ramp glyph, nil when untinted
}

// NewCellWriter creates a CellWriter. display is called by Flush and may
// be nil.
func NewCellWriter(scr CellScreen, display func() error) *CellWriter {
	return &CellWriter{scr: scr, display: display}
}

// Tint colors glyphs by their ramp position, blending from dim to base in
// Lab space. Glyphs outside the ramp keep the default style.
func (c *CellWriter) Tint(base colorful.Color) {
	dim := colorful.Color{R: 0.15, G: 0.15, B: 0.2}
	styles := make([]uv.Style, len(ramp))
	for i := range ramp {
		t := float64(i) / float64(len(ramp)-1)
		styles[i] = uv.Style{Fg: dim.BlendLab(base, t).Clamped()}
	}

	c.mu.Lock()
	c.tint = styles
	c.mu.Unlock()
}

// WriteAt sets the cell at (col, row) to g.
func (c *CellWriter) WriteAt(col, row int, g rune) error {
	cell := &uv.Cell{
		Content: string(g),
		Width:   max(runewidth.RuneWidth(g), 1),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tint != nil {
		if i := RampIndex(g); i >= 0 {
			cell.Style = c.tint[i]
		}
	}
	c.scr.SetCell(col, row, cell)
	return nil
}

// Flush displays the drawn cells.
func (c *CellWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.display == nil {
		return nil
	}
	return c.display()
}

// WithLock runs fn while no cell is being written or displayed. Use it for
// screen changes, such as a resize, made outside the render loop.
func (c *CellWriter) WithLock(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}
