package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rampart/engine/geometry"
)

func TestBuildGeometryBatchPartitionsBuffers(t *testing.T) {
	entries := []MeshEntry{
		{Shape: ShapeBox, Mesh: geometry.NewBox(10, 8, 1)},
		{Shape: ShapeSphere, Mesh: geometry.NewSphere(0.5, 20, 20)},
		{Shape: ShapeCylinder, Mesh: geometry.NewCylinder(1, 1, 4, 20, 20)},
		{Shape: ShapeDiamond, Mesh: geometry.NewDiamond(2, 1, 2)},
	}

	batch, err := BuildGeometryBatch(entries)
	require.NoError(t, err)

	// Sub-mesh ranges exactly partition [0, totalIndexCount) and
	// [0, totalVertexCount) with no gaps or overlaps, in supply order.
	var indexCursor uint32
	var vertexCursor int32
	for _, e := range entries {
		sub := batch.SubMesh(e.Shape)
		assert.Equal(t, indexCursor, sub.StartIndexLocation, "%s start index", e.Shape)
		assert.Equal(t, vertexCursor, sub.BaseVertexLocation, "%s base vertex", e.Shape)
		assert.Equal(t, e.Mesh.IndexCount(), sub.IndexCount, "%s index count", e.Shape)
		indexCursor += e.Mesh.IndexCount()
		vertexCursor += int32(e.Mesh.VertexCount())
	}
	assert.Equal(t, int(indexCursor), len(batch.Indices()))
	assert.Equal(t, int(vertexCursor), len(batch.Vertices()))
}

func TestBuildGeometryBatchBoxGridOffsets(t *testing.T) {
	box := geometry.NewBox(10, 8, 1)
	grid := geometry.NewGrid(20, 20, 20, 40)

	batch, err := BuildGeometryBatch([]MeshEntry{
		{Shape: ShapeBox, Mesh: box},
		{Shape: ShapeGrid, Mesh: grid},
	})
	require.NoError(t, err)

	boxSub := batch.SubMesh(ShapeBox)
	gridSub := batch.SubMesh(ShapeGrid)

	assert.Equal(t, uint32(0), boxSub.StartIndexLocation)
	assert.Equal(t, int32(0), boxSub.BaseVertexLocation)
	assert.Equal(t, box.IndexCount(), gridSub.StartIndexLocation)
	assert.Equal(t, int32(box.VertexCount()), gridSub.BaseVertexLocation)
}

func TestBuildGeometryBatchAssignsShapeColors(t *testing.T) {
	batch, err := BuildGeometryBatch([]MeshEntry{
		{Shape: ShapeBox, Mesh: geometry.NewBox(1, 1, 1)},
		{Shape: ShapeQuad, Mesh: geometry.NewQuad(0, 0, 1, 1, 0)},
	})
	require.NoError(t, err)

	verts := batch.Vertices()
	boxSub := batch.SubMesh(ShapeBox)
	quadSub := batch.SubMesh(ShapeQuad)

	assert.Equal(t, shapeColors[ShapeBox], verts[boxSub.BaseVertexLocation].Color)
	assert.Equal(t, shapeColors[ShapeQuad], verts[quadSub.BaseVertexLocation].Color)
}

func TestBuildGeometryBatchRejectsBadInput(t *testing.T) {
	_, err := BuildGeometryBatch(nil)
	assert.Error(t, err)

	_, err = BuildGeometryBatch([]MeshEntry{
		{Shape: ShapeBox, Mesh: geometry.NewBox(1, 1, 1)},
		{Shape: ShapeBox, Mesh: geometry.NewBox(2, 2, 2)},
	})
	assert.Error(t, err)

	_, err = BuildGeometryBatch([]MeshEntry{
		{Shape: ShapeBox, Mesh: geometry.MeshData{}},
	})
	assert.Error(t, err)
}

func TestShapeIDNameRoundTrip(t *testing.T) {
	for s := ShapeID(0); s < ShapeCount; s++ {
		got, ok := ShapeIDFromName(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	_, ok := ShapeIDFromName("dodecahedron")
	assert.False(t, ok)
}
