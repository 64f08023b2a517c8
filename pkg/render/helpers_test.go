package render

import (
	"errors"
	"sync"
	"time"
)

var errWriteFailed = errors.New("write failed")

type cell struct{ col, row int }

// recordWriter is a TerminalWriter that remembers every write.
type recordWriter struct {
	mu        sync.Mutex
	cells     map[cell]rune
	counts    map[cell]int
	flushes   []time.Time
	failAll   bool
	failFlush bool
}

func newRecordWriter() *recordWriter {
	return &recordWriter{
		cells:  make(map[cell]rune),
		counts: make(map[cell]int),
	}
}

func (w *recordWriter) WriteAt(col, row int, g rune) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failAll {
		return errWriteFailed
	}
	c := cell{col, row}
	w.cells[c] = g
	w.counts[c]++
	return nil
}

func (w *recordWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flushes = append(w.flushes, time.Now())
	if w.failFlush {
		return errWriteFailed
	}
	return nil
}

func (w *recordWriter) flushTimes() []time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]time.Time(nil), w.flushes...)
}
