package render

import (
	"bufio"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// TerminalWriter receives positioned glyphs and pushes them to a display.
// WriteAt moves the cursor and writes the glyph as one step so writes from
// concurrent bands cannot interleave. Implementations must be safe for
// concurrent use.
type TerminalWriter interface {
	WriteAt(col, row int, glyph rune) error
	Flush() error
}

// ANSIWriter writes glyphs as ANSI cursor moves followed by the glyph,
// buffered until Flush.
type ANSIWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewANSIWriter creates an ANSIWriter on top of w.
func NewANSIWriter(w io.Writer) *ANSIWriter {
	return &ANSIWriter{w: bufio.NewWriter(w)}
}

// MoveCursor moves the cursor to the zero-based (col, row).
func (a *ANSIWriter) MoveCursor(col, row int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.moveCursor(col, row)
}

// WriteChar writes g at the current cursor position.
func (a *ANSIWriter) WriteChar(g rune) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.w.WriteRune(g)
	return err
}

// WriteAt moves to (col, row) and writes g.
func (a *ANSIWriter) WriteAt(col, row int, g rune) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.moveCursor(col, row); err != nil {
		return err
	}
	_, err := a.w.WriteRune(g)
	return err
}

// Flush writes buffered output to the underlying writer.
func (a *ANSIWriter) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.w.Flush()
}

func (a *ANSIWriter) moveCursor(col, row int) error {
	// CUP is 1-based.
	_, err := a.w.WriteString(ansi.CursorPosition(col+1, row+1))
	return err
}
