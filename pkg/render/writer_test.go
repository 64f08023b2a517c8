package render

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestANSIWriterWriteAt(t *testing.T) {
	var out bytes.Buffer
	w := NewANSIWriter(&out)

	if err := w.WriteAt(3, 1, '@'); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Error("output should be buffered until Flush")
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), ansi.CursorPosition(4, 2)+"@"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestANSIWriterMoveThenWrite(t *testing.T) {
	var a, b bytes.Buffer
	wa, wb := NewANSIWriter(&a), NewANSIWriter(&b)

	_ = wa.WriteAt(7, 0, '#')
	_ = wb.MoveCursor(7, 0)
	_ = wb.WriteChar('#')
	_ = wa.Flush()
	_ = wb.Flush()

	if a.String() != b.String() {
		t.Errorf("WriteAt = %q, MoveCursor+WriteChar = %q", a.String(), b.String())
	}
}

func TestANSIWriterConcurrentWritesStayPaired(t *testing.T) {
	var out bytes.Buffer
	w := NewANSIWriter(&out)

	const rows, cols = 8, 16
	var wg sync.WaitGroup
	for row := range rows {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for col := range cols {
				_ = w.WriteAt(col, row, '*')
			}
		}()
	}
	wg.Wait()
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for row := range rows {
		for col := range cols {
			pair := ansi.CursorPosition(col+1, row+1) + "*"
			if !strings.Contains(got, pair) {
				t.Fatalf("missing positioned write for (%d, %d)", col, row)
			}
		}
	}
	if n := strings.Count(got, "*"); n != rows*cols {
		t.Errorf("got %d glyphs, want %d", n, rows*cols)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

func TestANSIWriterFlushError(t *testing.T) {
	w := NewANSIWriter(failingWriter{})
	_ = w.WriteAt(0, 0, 'x')
	if err := w.Flush(); !errors.Is(err, errWriteFailed) {
		t.Errorf("got %v, want the underlying write error", err)
	}
}
