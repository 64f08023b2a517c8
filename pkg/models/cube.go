package models

import "github.com/taigrr/asciirast/pkg/math3d"

// Cube returns an axis-aligned cube of the given edge length centered on
// the origin, as 12 triangles with outward normals, placed at (0, 0, 10).
func Cube(size float64) Mesh {
	h := size / 2

	v := [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0: left-bottom-back
		{X: h, Y: -h, Z: -h},  // 1: right-bottom-back
		{X: h, Y: h, Z: -h},   // 2: right-top-back
		{X: -h, Y: h, Z: -h},  // 3: left-top-back
		{X: -h, Y: -h, Z: h},  // 4: left-bottom-front
		{X: h, Y: -h, Z: h},   // 5: right-bottom-front
		{X: h, Y: h, Z: h},    // 6: right-top-front
		{X: -h, Y: h, Z: h},   // 7: left-top-front
	}

	faces := [][4]int{
		{0, 3, 2, 1}, // Back   (-Z)
		{4, 5, 6, 7}, // Front  (+Z)
		{4, 7, 3, 0}, // Left   (-X)
		{1, 2, 6, 5}, // Right  (+X)
		{3, 7, 6, 2}, // Top    (+Y)
		{4, 0, 1, 5}, // Bottom (-Y)
	}

	triangles := make([]Triangle, 0, 12)
	for _, f := range faces {
		triangles = append(triangles,
			NewTriangle(v[f[0]], v[f[1]], v[f[2]]),
			NewTriangle(v[f[0]], v[f[2]], v[f[3]]),
		)
	}

	pos := math3d.V3(0, 0, 10)
	return MeshConfig{Name: "cube", Triangles: triangles, Position: &pos}.Build()
}
