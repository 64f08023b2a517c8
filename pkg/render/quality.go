package render

import (
	"fmt"
	"strings"
)

// Quality is the number of workers presenting a frame in parallel.
type Quality int

const (
	QualityLow    Quality = 1
	QualityMedium Quality = 2
	QualityHigh   Quality = 4
)

// Valid reports whether q is one of the defined levels.
func (q Quality) Valid() bool {
	switch q {
	case QualityLow, QualityMedium, QualityHigh:
		return true
	}
	return false
}

// Workers returns the number of presentation bands.
func (q Quality) Workers() int { return int(q) }

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality parses "low", "medium" or "high" (case-insensitive).
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	}
	return 0, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, s)
}

// Bands splits buf into q.Workers() views of whole rows. Every band gets
// height/workers rows and the last one also takes the remainder, so the
// bands cover the buffer exactly once. Bands may be empty when the
// buffer has fewer rows than workers.
func (q Quality) Bands(buf *AsciiBuffer) ([]*AsciiBuffer, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: quality %d", ErrInvalidConfig, int(q))
	}

	n := q.Workers()
	span := buf.Height() / n * buf.Width()
	bands := make([]*AsciiBuffer, n)
	for i := range n {
		start, end := i*span, (i+1)*span
		if i == n-1 {
			end = buf.Len()
		}
		band, err := buf.Chunk(start, end)
		if err != nil {
			return nil, err
		}
		bands[i] = band
	}
	return bands, nil
}
