package math3d

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when matrix operands have incompatible
// dimensions.
var ErrShapeMismatch = errors.New("math3d: matrix shape mismatch")

// Number is the set of element types a Matrix can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Matrix is a dense rows×cols matrix stored in row-major order.
//
// Memory layout (indices) of a 2x3 matrix:
// | 0 1 2 |
// | 3 4 5 |
//
// Operations never modify their operands; every result is a fresh matrix.
type Matrix[T Number] struct {
	rows, cols int
	data       []T
}

// NewMatrix returns a rows×cols matrix of zeros.
func NewMatrix[T Number](rows, cols int) Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("math3d: invalid matrix shape %dx%d", rows, cols))
	}
	return Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromRows builds a matrix from a slice of rows. Every row must have the
// same length, otherwise ErrShapeMismatch is returned.
func FromRows[T Number](rows [][]T) (Matrix[T], error) {
	if len(rows) == 0 {
		return Matrix[T]{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix[T](len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return Matrix[T]{}, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), cols, ErrShapeMismatch)
		}
		copy(m.data[r*cols:], row)
	}
	return m, nil
}

// MustFromRows is like FromRows but panics on a ragged input. It is meant
// for literal matrices whose shape is known at compile time.
func MustFromRows[T Number](rows [][]T) Matrix[T] {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity[T Number](n int) Matrix[T] {
	m := NewMatrix[T](n, n)
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix[T]) Cols() int { return m.cols }

// At returns the element at (row, col). It panics when the index lies
// outside the matrix, like slice indexing does.
func (m Matrix[T]) At(row, col int) T {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("math3d: index (%d, %d) out of range for %dx%d matrix", row, col, m.rows, m.cols))
	}
	return m.data[row*m.cols+col]
}

// SameShape reports whether m and b have identical dimensions.
func (m Matrix[T]) SameShape(b Matrix[T]) bool {
	return m.rows == b.rows && m.cols == b.cols
}

// Add returns the elementwise sum m + b.
func (m Matrix[T]) Add(b Matrix[T]) (Matrix[T], error) {
	if !m.SameShape(b) {
		return Matrix[T]{}, fmt.Errorf("add %dx%d and %dx%d: %w", m.rows, m.cols, b.rows, b.cols, ErrShapeMismatch)
	}
	out := NewMatrix[T](m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns the elementwise difference m - b.
func (m Matrix[T]) Sub(b Matrix[T]) (Matrix[T], error) {
	if !m.SameShape(b) {
		return Matrix[T]{}, fmt.Errorf("sub %dx%d and %dx%d: %w", m.rows, m.cols, b.rows, b.cols, ErrShapeMismatch)
	}
	out := NewMatrix[T](m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] - b.data[i]
	}
	return out, nil
}

// Mul multiplies two matrices: m (R×C) * b (C×K) = R×K.
// Each sum starts from T's zero value.
func (m Matrix[T]) Mul(b Matrix[T]) (Matrix[T], error) {
	if m.cols != b.rows {
		return Matrix[T]{}, fmt.Errorf("mul %dx%d by %dx%d: %w", m.rows, m.cols, b.rows, b.cols, ErrShapeMismatch)
	}
	out := NewMatrix[T](m.rows, b.cols)
	for row := range m.rows {
		for col := range b.cols {
			var sum T
			for k := range m.cols {
				sum += m.data[row*m.cols+k] * b.data[k*b.cols+col]
			}
			out.data[row*b.cols+col] = sum
		}
	}
	return out, nil
}

// Equal reports whether m and b have the same shape and elements.
func (m Matrix[T]) Equal(b Matrix[T]) bool {
	if !m.SameShape(b) {
		return false
	}
	for i := range m.data {
		if m.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m Matrix[T]) String() string {
	s := ""
	for row := range m.rows {
		s += fmt.Sprint(m.data[row*m.cols : (row+1)*m.cols])
		if row < m.rows-1 {
			s += "\n"
		}
	}
	return s
}

// ColumnVec3 returns v as a 3×1 column matrix.
func ColumnVec3(v Vec3) Matrix[float64] {
	return Matrix[float64]{rows: 3, cols: 1, data: []float64{v.X, v.Y, v.Z}}
}

// Transform returns m * v for a 3×3 matrix m.
func (a Vec3) Transform(m Matrix[float64]) (Vec3, error) {
	out, err := m.Mul(ColumnVec3(a))
	if err != nil {
		return Vec3{}, err
	}
	if out.rows != 3 {
		return Vec3{}, fmt.Errorf("transform by %dx%d: %w", m.rows, m.cols, ErrShapeMismatch)
	}
	return Vec3{out.data[0], out.data[1], out.data[2]}, nil
}
