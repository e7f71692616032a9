package renderer

import (
	"github.com/spaghettifunk/rampart/engine/math"
)

// RingDepth is the number of frame resources rotated by the ring: up to this
// many frames of GPU work may be outstanding at once.
const RingDepth = 3

// ShapeID enumerates every shape the scene can reference. Sub-mesh lookups
// are indexed by ShapeID so an invalid reference is a compile-time concern,
// not a runtime string miss.
type ShapeID int

const (
	ShapeBox ShapeID = iota
	ShapeGrid
	ShapeSphere
	ShapeCylinder
	ShapeCone
	ShapeTorus
	ShapeDiamond
	ShapeWedge
	ShapePyramid
	ShapeTriangularPrism
	ShapeQuad
	ShapeCount
)

func (s ShapeID) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeGrid:
		return "grid"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCone:
		return "cone"
	case ShapeTorus:
		return "torus"
	case ShapeDiamond:
		return "diamond"
	case ShapeWedge:
		return "wedge"
	case ShapePyramid:
		return "pyramid"
	case ShapeTriangularPrism:
		return "triangularPrism"
	case ShapeQuad:
		return "quad"
	}
	return "unknown"
}

// ShapeIDFromName resolves a descriptor name to its ShapeID. The second
// return is false for unknown names.
func ShapeIDFromName(name string) (ShapeID, bool) {
	for s := ShapeID(0); s < ShapeCount; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Vertex is the wire format of the shared vertex buffer: position plus a
// per-mesh color. Immutable once uploaded.
type Vertex struct {
	Position math.Vec3
	Color    math.Vec4
}

// SubMesh is a named contiguous range inside the shared index/vertex
// buffers. Created once at batch-build time, never mutated.
type SubMesh struct {
	IndexCount         uint32
	StartIndexLocation uint32
	BaseVertexLocation int32
}

// ObjectConstants is the per-draw constant block. The world matrix is stored
// transposed for the shader.
type ObjectConstants struct {
	World math.Mat4
}

// PassConstants is the per-frame constant block shared by every draw. All
// matrices are stored transposed. Field order defines the GPU byte layout;
// every field is four bytes so the Go layout has no implicit padding.
type PassConstants struct {
	View        math.Mat4
	InvView     math.Mat4
	Proj        math.Mat4
	InvProj     math.Mat4
	ViewProj    math.Mat4
	InvViewProj math.Mat4

	EyePos    math.Vec3
	padding0  float32
	RTSize    math.Vec2
	InvRTSize math.Vec2

	NearZ     float32
	FarZ      float32
	TotalTime float32
	DeltaTime float32
}

// FrameState is the per-tick snapshot handed to DrawFrame. The renderer never
// queries input or clocks directly.
type FrameState struct {
	Wireframe bool
	TotalTime float32
	DeltaTime float32
}
