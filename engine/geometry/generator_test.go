package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rampart/engine/math"
)

func assertTriangleList(t *testing.T, mesh MeshData) {
	t.Helper()
	require.Equal(t, uint32(0), mesh.IndexCount()%3, "index count must be a multiple of three")
	for i, idx := range mesh.Indices {
		require.Less(t, idx, mesh.VertexCount(), "index %d out of range", i)
	}
}

func TestNewBox(t *testing.T) {
	box := NewBox(10, 8, 1)
	assert.Equal(t, uint32(24), box.VertexCount())
	assert.Equal(t, uint32(36), box.IndexCount())
	assertTriangleList(t, box)

	// All positions within the half extents.
	for _, v := range box.Vertices {
		assert.LessOrEqual(t, math.Abs(v.Position.X), float32(5.0))
		assert.LessOrEqual(t, math.Abs(v.Position.Y), float32(4.0))
		assert.LessOrEqual(t, math.Abs(v.Position.Z), float32(0.5))
	}
}

func TestNewGrid(t *testing.T) {
	grid := NewGrid(20, 20, 20, 40)
	assert.Equal(t, uint32(20*40), grid.VertexCount())
	assert.Equal(t, uint32(19*39*6), grid.IndexCount())
	assertTriangleList(t, grid)

	// Flat in the xz-plane.
	for _, v := range grid.Vertices {
		assert.Equal(t, float32(0), v.Position.Y)
	}
}

func TestNewSphere(t *testing.T) {
	sphere := NewSphere(0.5, 20, 20)
	assert.Equal(t, uint32(2+19*21), sphere.VertexCount())
	assert.Equal(t, uint32(20*3+18*20*6+20*3), sphere.IndexCount())
	assertTriangleList(t, sphere)

	for _, v := range sphere.Vertices {
		assert.InDelta(t, 0.5, float64(v.Position.Length()), 1e-4)
	}
}

func TestNewCylinder(t *testing.T) {
	cyl := NewCylinder(1, 1, 4, 20, 20)
	// 21 side rings of 21 verts, two caps of 21+1 verts each.
	assert.Equal(t, uint32(21*21+2*22), cyl.VertexCount())
	assert.Equal(t, uint32(20*20*6+2*20*3), cyl.IndexCount())
	assertTriangleList(t, cyl)
}

func TestNewConePointedTipHasNoTopCap(t *testing.T) {
	cone := NewCone(1, 0, 2, 20, 20)
	// Same as the cylinder but without the top cap ring.
	assert.Equal(t, uint32(21*21+22), cone.VertexCount())
	assert.Equal(t, uint32(20*20*6+20*3), cone.IndexCount())
	assertTriangleList(t, cone)
}

func TestNewTorus(t *testing.T) {
	torus := NewTorus(4, 5, 20, 20)
	assert.Equal(t, uint32(21*21), torus.VertexCount())
	assert.Equal(t, uint32(20*20*6), torus.IndexCount())
	assertTriangleList(t, torus)

	// Every vertex sits within the outer radius of the ring plane.
	for _, v := range torus.Vertices {
		planar := math.NewVec3(v.Position.X, 0, v.Position.Z).Length()
		assert.LessOrEqual(t, planar, float32(5.0)+1e-4)
	}
}

func TestFixedShapes(t *testing.T) {
	tests := []struct {
		name     string
		mesh     MeshData
		vertices uint32
		indices  uint32
	}{
		{"diamond", NewDiamond(2, 1, 2), 6, 24},
		{"wedge", NewWedge(5, 2, 5), 6, 24},
		{"pyramid", NewPyramid(1, 1, 2), 5, 18},
		{"triangularPrism", NewTriangularPrism(2, 2, 2), 6, 24},
		{"quad", NewQuad(2, 2, 2, 2, 2), 4, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.vertices, tc.mesh.VertexCount())
			assert.Equal(t, tc.indices, tc.mesh.IndexCount())
			assertTriangleList(t, tc.mesh)
		})
	}
}

func TestZeroParamsFallBackToDefaults(t *testing.T) {
	box := NewBox(0, 0, 0)
	assert.Equal(t, uint32(24), box.VertexCount())

	grid := NewGrid(10, 10, 0, 0)
	assert.Equal(t, uint32(4), grid.VertexCount())
}
