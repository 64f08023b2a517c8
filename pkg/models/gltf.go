package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/asciirast/pkg/math3d"
)

// ErrNoTriangles is returned when a model contains no triangle geometry.
var ErrNoTriangles = errors.New("models: no triangle primitives")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FlipWinding swaps the second and third corner of every triangle,
	// reversing the direction of the face normals.
	FlipWinding bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// LoadGLB loads a binary GLTF (.glb) or a .gltf file with embedded buffers.
func LoadGLB(path string) (Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns its triangles as one Mesh.
func (l *GLTFLoader) Load(path string) (Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc)
	if err != nil {
		return Mesh{}, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument converts every triangle primitive of an already decoded
// document into one Mesh.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (Mesh, error) {
	var triangles []Triangle
	for _, m := range doc.Meshes {
		var err error
		triangles, err = l.appendMesh(doc, m, triangles)
		if err != nil {
			return Mesh{}, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(triangles) == 0 {
		return Mesh{}, ErrNoTriangles
	}
	return NewMesh("", triangles...), nil
}

// appendMesh extracts the triangles of a GLTF mesh.
func (l *GLTFLoader) appendMesh(doc *gltf.Document, m *gltf.Mesh, dst []Triangle) ([]Triangle, error) {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip lines, points and strips.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, positions are sequential triangles.
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if a >= len(positions) || b >= len(positions) || c >= len(positions) {
				return nil, fmt.Errorf("index out of range at triangle %d", i/3)
			}
			if l.FlipWinding {
				b, c = c, b
			}
			dst = append(dst, NewTriangle(positions[a], positions[b], positions[c]))
		}
	}

	return dst, nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d does not exist", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+12 > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d does not exist", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+size > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes returns the embedded buffer backing an accessor together
// with the first element's offset and the element stride. It checks that
// every element of the accessor lies inside the buffer.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d does not exist", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d does not exist", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if len(buffer.Data) == 0 {
		return nil, 0, 0, fmt.Errorf("buffer %d has no embedded data", bufferView.Buffer)
	}

	if accessor.ByteOffset < 0 || bufferView.ByteOffset < 0 || bufferView.ByteStride < 0 {
		return nil, 0, 0, fmt.Errorf("negative offset or stride (accessor %d, view %d, stride %d)",
			accessor.ByteOffset, bufferView.ByteOffset, bufferView.ByteStride)
	}
	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if stride < elemSize {
		return nil, 0, 0, fmt.Errorf("stride %d is shorter than element size %d", stride, elemSize)
	}

	data = buffer.Data
	start = bufferView.ByteOffset + accessor.ByteOffset
	if accessor.Count < 0 {
		return nil, 0, 0, fmt.Errorf("negative count %d", accessor.Count)
	}
	if accessor.Count > 0 {
		room := len(data) - start - elemSize
		if start > len(data) || room < 0 || accessor.Count-1 > room/stride {
			return nil, 0, 0, fmt.Errorf("%d elements from offset %d overrun %d bytes", accessor.Count, start, len(data))
		}
	}
	return data, start, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
