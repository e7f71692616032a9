package renderer

import (
	"fmt"

	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/geometry"
	"github.com/spaghettifunk/rampart/engine/math"
)

// shapeColors assigns one flat color per shape kind. Colors come from the
// mesh tag, not from the generator's per-vertex attributes.
var shapeColors = [ShapeCount]math.Vec4{
	ShapeBox:             {X: 1.000, Y: 0.843, Z: 0.000, W: 1}, // gold
	ShapeGrid:            {X: 0.133, Y: 0.545, Z: 0.133, W: 1}, // forest green
	ShapeSphere:          {X: 0.863, Y: 0.078, Z: 0.235, W: 1}, // crimson
	ShapeCylinder:        {X: 0.274, Y: 0.510, Z: 0.706, W: 1}, // steel blue
	ShapeCone:            {X: 0.000, Y: 0.545, Z: 0.545, W: 1}, // dark cyan
	ShapeTorus:           {X: 0.721, Y: 0.525, Z: 0.043, W: 1}, // dark goldenrod
	ShapeDiamond:         {X: 0.804, Y: 0.361, Z: 0.361, W: 1}, // indian red
	ShapeWedge:           {X: 0.871, Y: 0.722, Z: 0.529, W: 1}, // burly wood
	ShapePyramid:         {X: 0.957, Y: 0.643, Z: 0.376, W: 1}, // sandy brown
	ShapeTriangularPrism: {X: 1.000, Y: 0.271, Z: 0.000, W: 1}, // orange red
	ShapeQuad:            {X: 1.000, Y: 0.078, Z: 0.576, W: 1}, // deep pink
}

// MeshEntry pairs a generated mesh with the shape tag it registers under.
type MeshEntry struct {
	Shape ShapeID
	Mesh  geometry.MeshData
}

// GeometryBatch packs independently generated meshes into one shared vertex
// array and one shared index array, recording each mesh's sub-range. The
// batch is immutable after Build; there is no dynamic resizing.
type GeometryBatch struct {
	vertices []Vertex
	indices  []uint32

	subMeshes [ShapeCount]SubMesh
	present   [ShapeCount]bool
}

// BuildGeometryBatch concatenates the supplied meshes in order. Each mesh's
// start index is the running sum of prior index counts and its base vertex
// the running sum of prior vertex counts, so the sub-ranges exactly
// partition both buffers.
func BuildGeometryBatch(entries []MeshEntry) (*GeometryBatch, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("geometry batch requires at least one mesh")
	}

	totalVertices := 0
	totalIndices := 0
	for _, e := range entries {
		totalVertices += len(e.Mesh.Vertices)
		totalIndices += len(e.Mesh.Indices)
	}

	batch := &GeometryBatch{
		vertices: make([]Vertex, 0, totalVertices),
		indices:  make([]uint32, 0, totalIndices),
	}

	vertexOffset := uint32(0)
	indexOffset := uint32(0)
	for _, e := range entries {
		if e.Shape < 0 || e.Shape >= ShapeCount {
			return nil, fmt.Errorf("mesh entry has invalid shape id %d", e.Shape)
		}
		if batch.present[e.Shape] {
			return nil, fmt.Errorf("shape '%s' registered twice", e.Shape)
		}
		if len(e.Mesh.Indices) == 0 {
			return nil, fmt.Errorf("shape '%s' has an empty index list", e.Shape)
		}

		color := shapeColors[e.Shape]
		for _, v := range e.Mesh.Vertices {
			batch.vertices = append(batch.vertices, Vertex{Position: v.Position, Color: color})
		}
		batch.indices = append(batch.indices, e.Mesh.Indices...)

		batch.subMeshes[e.Shape] = SubMesh{
			IndexCount:         e.Mesh.IndexCount(),
			StartIndexLocation: indexOffset,
			BaseVertexLocation: int32(vertexOffset),
		}
		batch.present[e.Shape] = true

		vertexOffset += e.Mesh.VertexCount()
		indexOffset += e.Mesh.IndexCount()
	}

	core.LogDebug("geometry batch built: %d meshes, %d vertices, %d indices",
		len(entries), len(batch.vertices), len(batch.indices))

	return batch, nil
}

// SubMesh returns the range registered for the shape. Asking for a shape the
// batch was not built with is a programmer error and aborts.
func (b *GeometryBatch) SubMesh(shape ShapeID) SubMesh {
	if shape < 0 || shape >= ShapeCount || !b.present[shape] {
		core.LogFatal("shape '%s' is not part of the geometry batch", shape)
	}
	return b.subMeshes[shape]
}

// Has reports whether the shape was registered at build time.
func (b *GeometryBatch) Has(shape ShapeID) bool {
	return shape >= 0 && shape < ShapeCount && b.present[shape]
}

// Vertices exposes the concatenated vertex array for upload. Read-only.
func (b *GeometryBatch) Vertices() []Vertex {
	return b.vertices
}

// Indices exposes the concatenated index array for upload. Read-only.
func (b *GeometryBatch) Indices() []uint32 {
	return b.indices
}
