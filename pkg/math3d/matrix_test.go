package math3d

import (
	"errors"
	"math"
	"testing"
)

func TestMatrixAdd(t *testing.T) {
	a := MustFromRows([][]int{{1, 2, 3}, {4, 5, 6}})
	b := MustFromRows([][]int{{1, 1, 1}, {1, 1, 1}})

	got, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	want := MustFromRows([][]int{{2, 3, 4}, {5, 6, 7}})
	if !got.Equal(want) {
		t.Errorf("got\n%v\nwant\n%v", got, want)
	}
}

func TestMatrixSub(t *testing.T) {
	a := MustFromRows([][]int{{1, 2, 3}, {4, 5, 6}})
	b := MustFromRows([][]int{{1, 1, 1}, {1, 1, 1}})

	got, err := a.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	want := MustFromRows([][]int{{0, 1, 2}, {3, 4, 5}})
	if !got.Equal(want) {
		t.Errorf("got\n%v\nwant\n%v", got, want)
	}
}

func TestMatrixMul(t *testing.T) {
	a := MustFromRows([][]int{{1, 2, 3}, {4, 5, 6}})
	b := MustFromRows([][]int{{7, 8}, {9, 10}, {11, 12}})

	got, err := a.Mul(b)
	if err != nil {
		t.Fatal(err)
	}
	want := MustFromRows([][]int{{58, 64}, {139, 154}})
	if !got.Equal(want) {
		t.Errorf("got\n%v\nwant\n%v", got, want)
	}
	if got.Rows() != 2 || got.Cols() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", got.Rows(), got.Cols())
	}
}

func TestMatrixAddSubRoundTrip(t *testing.T) {
	a := MustFromRows([][]float64{{1.5, -2}, {3, 4.25}, {0, 9}})
	b := MustFromRows([][]float64{{0.5, 7}, {-3, 1}, {2, 2}})

	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := sum.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(a) {
		t.Errorf("(A + B) - B =\n%v\nwant\n%v", got, a)
	}
}

func TestMatrixMulIdentity(t *testing.T) {
	a := MustFromRows([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})

	got, err := a.Mul(Identity[int](3))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(a) {
		t.Errorf("A * I =\n%v\nwant\n%v", got, a)
	}

	got, err = Identity[int](3).Mul(a)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(a) {
		t.Errorf("I * A =\n%v\nwant\n%v", got, a)
	}
}

func TestMatrixShapeMismatch(t *testing.T) {
	a := NewMatrix[float64](2, 3)
	b := NewMatrix[float64](3, 2)

	if _, err := a.Add(b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Add: got %v, want ErrShapeMismatch", err)
	}
	if _, err := a.Sub(b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Sub: got %v, want ErrShapeMismatch", err)
	}
	if _, err := a.Mul(a); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Mul: got %v, want ErrShapeMismatch", err)
	}
	if _, err := FromRows([][]int{{1, 2}, {3}}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("FromRows: got %v, want ErrShapeMismatch", err)
	}
	if _, err := V3(1, 2, 3).Transform(Identity[float64](2)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Transform: got %v, want ErrShapeMismatch", err)
	}
}

func TestMatrixAt(t *testing.T) {
	m := MustFromRows([][]int{{1, 2, 3}})
	if got := m.At(0, 2); got != 3 {
		t.Errorf("At(0, 2) = %d, want 3", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("At out of range should panic")
		}
	}()
	m.At(1, 0)
}

func TestRotationMatrices(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix[float64]
		in   Vec3
		want Vec3
	}{
		{"x quarter turn", RotationX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"y quarter turn", RotationY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"z quarter turn", RotationZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"euler zero", EulerRotation(0, 0, 0), V3(1, 2, 3), V3(1, 2, 3)},
		{"euler x then z", EulerRotation(math.Pi/2, 0, math.Pi/2), V3(0, 1, 0), V3(0, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Transform(tc.m)
			if err != nil {
				t.Fatal(err)
			}
			if !got.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotation2D(t *testing.T) {
	row := MustFromRows([][]float64{{1, 0}})
	got, err := row.Mul(Rotation2D(math.Pi / 2))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.At(0, 0)) > 1e-9 || math.Abs(got.At(0, 1)-1) > 1e-9 {
		t.Errorf("got %v, want [0 1]", got)
	}
}
