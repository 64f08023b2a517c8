package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/asciirast/pkg/math3d"
)

func TestMeshConfigDefaults(t *testing.T) {
	mesh := MeshConfig{
		Triangles: []Triangle{
			NewTriangle(math3d.V3(1, 1, 1), math3d.V3(2, 2, 2), math3d.V3(3, 3, 3)),
		},
	}.Build()

	if mesh.Position != math3d.Zero3() {
		t.Errorf("position = %v, want origin", mesh.Position)
	}
	if !mesh.Rotation.IsZero() {
		t.Errorf("rotation = %v, want zero", mesh.Rotation)
	}
	if mesh.Scale != math3d.One3() {
		t.Errorf("scale = %v, want (1, 1, 1)", mesh.Scale)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("got %d triangles, want 1", mesh.TriangleCount())
	}
}

func TestMeshConfigLastWriteWins(t *testing.T) {
	cfg := MeshConfig{}
	rot := NewRotation(0, 0, 0)
	cfg.Rotation = &rot
	rot2 := NewRotation(2, 0, 0)
	cfg.Rotation = &rot2
	pos := math3d.V3(0, 0, 5)
	cfg.Position = &pos

	mesh := cfg.Build()
	if mesh.Rotation != NewRotation(2, 0, 0) {
		t.Errorf("rotation = %v, want (2, 0, 0)", mesh.Rotation)
	}
	if mesh.Position != pos {
		t.Errorf("position = %v, want %v", mesh.Position, pos)
	}
}

func TestMeshConfigBuildCopiesTriangles(t *testing.T) {
	tris := []Triangle{NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))}
	mesh := MeshConfig{Triangles: tris}.Build()
	tris[0].Vertices[0] = math3d.V3(9, 9, 9)
	if mesh.Triangles[0].Vertices[0] != math3d.Zero3() {
		t.Error("Build should not share the triangle slice with the config")
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	n, err := tri.Normal()
	if err != nil {
		t.Fatal(err)
	}
	if !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("normal = %v, want (0, 0, 1)", n)
	}

	reversed := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0))
	n, err = reversed.Normal()
	if err != nil {
		t.Fatal(err)
	}
	if !n.ApproxEqual(math3d.V3(0, 0, -1), 1e-9) {
		t.Errorf("reversed normal = %v, want (0, 0, -1)", n)
	}
}

func TestTriangleNormalDegenerate(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1), math3d.V3(2, 2, 2))
	if _, err := tri.Normal(); !errors.Is(err, math3d.ErrDegenerateVector) {
		t.Errorf("got %v, want ErrDegenerateVector", err)
	}
}

func TestTriangleRasterizeOutline(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 4), math3d.V3(3, 0, 4), math3d.V3(0, 3, 4))
	pts := tri.Rasterize()

	// Edges: 4 + 4 + 4 points, shared corners repeated.
	if len(pts) != 12 {
		t.Fatalf("got %d points, want 12", len(pts))
	}
	if pts[0] != math3d.V3(0, 0, 4) || pts[3] != math3d.V3(3, 0, 4) {
		t.Errorf("first edge = %v, want (0,0)->(3,0)", pts[:4])
	}
	if pts[4] != math3d.V3(3, 0, 4) || pts[7] != math3d.V3(0, 3, 4) {
		t.Errorf("second edge = %v, want (3,0)->(0,3)", pts[4:8])
	}
	if pts[8] != math3d.V3(0, 3, 4) || pts[11] != math3d.V3(0, 0, 4) {
		t.Errorf("third edge = %v, want (0,3)->(0,0)", pts[8:])
	}

	// Interior cell (1, 1) is not filled.
	for _, p := range pts {
		if p.X == 1 && p.Y == 1 {
			t.Error("interior cell (1, 1) should not be rasterized")
		}
	}
}

func TestMeshBoundsAndFit(t *testing.T) {
	mesh := Cube(2)
	lo, hi := mesh.Bounds()
	if lo != math3d.V3(-1, -1, -1) || hi != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v, want (-1,-1,-1)..(1,1,1)", lo, hi)
	}

	fitted := mesh.Translated(math3d.V3(5, 5, 5)).Fit(10)
	if c := fitted.Center(); !c.ApproxEqual(math3d.Zero3(), 1e-9) {
		t.Errorf("fitted center = %v, want origin", c)
	}
	if s := fitted.Size(); !s.ApproxEqual(math3d.V3(10, 10, 10), 1e-9) {
		t.Errorf("fitted size = %v, want (10, 10, 10)", s)
	}

	// The source mesh is untouched.
	if lo2, _ := mesh.Bounds(); lo2 != lo {
		t.Error("Fit modified the source mesh")
	}
}

func TestMeshEmptyBounds(t *testing.T) {
	mesh := NewMesh("empty")
	lo, hi := mesh.Bounds()
	if lo != math3d.Zero3() || hi != math3d.Zero3() {
		t.Errorf("empty bounds = %v..%v", lo, hi)
	}
	if got := mesh.Fit(3); got.TriangleCount() != 0 {
		t.Error("fitting an empty mesh should stay empty")
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	cube := Cube(2)
	if cube.TriangleCount() != 12 {
		t.Fatalf("got %d triangles, want 12", cube.TriangleCount())
	}
	if cube.Position != math3d.V3(0, 0, 10) {
		t.Errorf("position = %v, want (0, 0, 10)", cube.Position)
	}

	for i, tri := range cube.Triangles {
		n, err := tri.Normal()
		if err != nil {
			t.Fatalf("triangle %d: %v", i, err)
		}
		centroid := tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Scale(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, n)
		}
	}
}

func TestMeshTransformed(t *testing.T) {
	scale := math3d.V3(2, 2, 2)
	rot := NewRotation(0, 0, math.Pi/2)
	pos := math3d.V3(0, 0, 10)
	mesh := MeshConfig{
		Triangles: []Triangle{NewTriangle(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))},
		Position:  &pos,
		Rotation:  &rot,
		Scale:     &scale,
	}.Build()

	tris, err := mesh.Transformed()
	if err != nil {
		t.Fatal(err)
	}
	want := []math3d.Vec3{math3d.V3(0, 2, 10), math3d.V3(-2, 0, 10), math3d.V3(0, 0, 12)}
	for i, v := range tris[0].Vertices {
		if !v.ApproxEqual(want[i], 1e-9) {
			t.Errorf("vertex %d = %v, want %v", i, v, want[i])
		}
	}

	// Raw triangles are untouched.
	if mesh.Triangles[0].Vertices[0] != math3d.V3(1, 0, 0) {
		t.Error("Transformed modified the mesh")
	}
}
