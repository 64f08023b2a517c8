// Package render turns meshes into character frames and presents them on
// a terminal.
package render

import (
	"fmt"
	"strings"
)

// Blank is the glyph of an empty cell.
const Blank = ' '

// AsciiBuffer is a flat, row-major grid of glyphs. Width is the row
// stride; cell (x, y) lives at index x + y*width.
//
// A buffer returned by Chunk is a view into its parent: it shares the
// glyphs and the stride and remembers where it starts in the full frame.
type AsciiBuffer struct {
	glyphs []rune
	width  int
	offset int // index of glyphs[0] in the full frame
}

// NewAsciiBuffer creates a blank width×height buffer.
func NewAsciiBuffer(width, height int) (*AsciiBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: buffer size %dx%d", ErrInvalidConfig, width, height)
	}
	b := &AsciiBuffer{
		glyphs: make([]rune, width*height),
		width:  width,
	}
	b.Clear()
	return b, nil
}

// NewAsciiBufferFrom wraps glyphs as a buffer of the given width. The
// glyph count must be a whole number of rows.
func NewAsciiBufferFrom(width int, glyphs []rune) (*AsciiBuffer, error) {
	if width <= 0 || len(glyphs)%width != 0 {
		return nil, fmt.Errorf("%w: %d glyphs do not fill rows of %d", ErrInvalidConfig, len(glyphs), width)
	}
	return &AsciiBuffer{glyphs: glyphs, width: width}, nil
}

// Len returns the number of cells.
func (b *AsciiBuffer) Len() int { return len(b.glyphs) }

// Width returns the row stride.
func (b *AsciiBuffer) Width() int { return b.width }

// Height returns the number of whole rows.
func (b *AsciiBuffer) Height() int { return len(b.glyphs) / b.width }

// Offset returns the index of the first cell within the full frame. It is
// zero for buffers not created by Chunk.
func (b *AsciiBuffer) Offset() int { return b.offset }

// Index maps (x, y) to a flat index.
func (b *AsciiBuffer) Index(x, y int) (int, error) {
	// Compare y before multiplying so huge rows cannot overflow.
	if x < 0 || x >= b.width || x >= len(b.glyphs) || y < 0 || y > (len(b.glyphs)-1-x)/b.width {
		return 0, fmt.Errorf("%w: (%d, %d) in %d cells of width %d", ErrIndexOutOfRange, x, y, len(b.glyphs), b.width)
	}
	return x + y*b.width, nil
}

// At returns the glyph at (x, y).
func (b *AsciiBuffer) At(x, y int) (rune, error) {
	i, err := b.Index(x, y)
	if err != nil {
		return 0, err
	}
	return b.glyphs[i], nil
}

// UpdateAt sets the glyph at (x, y).
func (b *AsciiBuffer) UpdateAt(x, y int, g rune) error {
	i, err := b.Index(x, y)
	if err != nil {
		return err
	}
	b.glyphs[i] = g
	return nil
}

// set writes without bounds checking; callers have already clipped.
func (b *AsciiBuffer) set(x, y int, g rune) {
	b.glyphs[x+y*b.width] = g
}

// Chunk returns the cells [start, end) as a view sharing this buffer's
// storage and stride.
func (b *AsciiBuffer) Chunk(start, end int) (*AsciiBuffer, error) {
	if start < 0 || end < start || end > len(b.glyphs) {
		return nil, fmt.Errorf("%w: chunk [%d, %d) of %d cells", ErrIndexOutOfRange, start, end, len(b.glyphs))
	}
	return &AsciiBuffer{
		glyphs: b.glyphs[start:end:end],
		width:  b.width,
		offset: b.offset + start,
	}, nil
}

// Clear fills the buffer with Blank.
func (b *AsciiBuffer) Clear() {
	b.Fill(Blank)
}

// Fill sets every cell to g.
func (b *AsciiBuffer) Fill(g rune) {
	if len(b.glyphs) == 0 {
		return
	}
	// Copy-doubling fill.
	b.glyphs[0] = g
	for filled := 1; filled < len(b.glyphs); filled *= 2 {
		copy(b.glyphs[filled:], b.glyphs[:filled])
	}
}

// Present writes every cell to w at its position in the full frame. It
// stops at the first failing write.
func (b *AsciiBuffer) Present(w TerminalWriter) error {
	for i, g := range b.glyphs {
		p := b.offset + i
		col, row := p%b.width, p/b.width
		if err := w.WriteAt(col, row, g); err != nil {
			return fmt.Errorf("%w: write (%d, %d): %w", ErrPresentation, col, row, err)
		}
	}
	return nil
}

// String renders the buffer as text, one line per row.
func (b *AsciiBuffer) String() string {
	var sb strings.Builder
	sb.Grow(len(b.glyphs) + b.Height())
	for i, g := range b.glyphs {
		if i > 0 && (b.offset+i)%b.width == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(g)
	}
	return sb.String()
}
