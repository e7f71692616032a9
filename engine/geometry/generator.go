package geometry

import (
	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/math"
)

// MeshData is the output of a shape generator: raw positions and a
// triangle-list index buffer. Normals and texcoords are produced where the
// shape math yields them naturally; the renderer discards them.
type MeshData struct {
	Vertices []math.Vertex3D
	Indices  []uint32
}

func (m MeshData) VertexCount() uint32 {
	return uint32(len(m.Vertices))
}

func (m MeshData) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// NewBox creates a box centered at the origin with the given dimensions.
func NewBox(width, height, depth float32) MeshData {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}

	w2 := width * 0.5
	h2 := height * 0.5
	d2 := depth * 0.5

	verts := make([]math.Vertex3D, 24)

	// Front face
	verts[0] = vertex(-w2, -h2, -d2, 0, 0, -1, 0, 1)
	verts[1] = vertex(-w2, h2, -d2, 0, 0, -1, 0, 0)
	verts[2] = vertex(w2, h2, -d2, 0, 0, -1, 1, 0)
	verts[3] = vertex(w2, -h2, -d2, 0, 0, -1, 1, 1)
	// Back face
	verts[4] = vertex(-w2, -h2, d2, 0, 0, 1, 1, 1)
	verts[5] = vertex(w2, -h2, d2, 0, 0, 1, 0, 1)
	verts[6] = vertex(w2, h2, d2, 0, 0, 1, 0, 0)
	verts[7] = vertex(-w2, h2, d2, 0, 0, 1, 1, 0)
	// Top face
	verts[8] = vertex(-w2, h2, -d2, 0, 1, 0, 0, 1)
	verts[9] = vertex(-w2, h2, d2, 0, 1, 0, 0, 0)
	verts[10] = vertex(w2, h2, d2, 0, 1, 0, 1, 0)
	verts[11] = vertex(w2, h2, -d2, 0, 1, 0, 1, 1)
	// Bottom face
	verts[12] = vertex(-w2, -h2, -d2, 0, -1, 0, 1, 1)
	verts[13] = vertex(w2, -h2, -d2, 0, -1, 0, 0, 1)
	verts[14] = vertex(w2, -h2, d2, 0, -1, 0, 0, 0)
	verts[15] = vertex(-w2, -h2, d2, 0, -1, 0, 1, 0)
	// Left face
	verts[16] = vertex(-w2, -h2, d2, -1, 0, 0, 0, 1)
	verts[17] = vertex(-w2, h2, d2, -1, 0, 0, 0, 0)
	verts[18] = vertex(-w2, h2, -d2, -1, 0, 0, 1, 0)
	verts[19] = vertex(-w2, -h2, -d2, -1, 0, 0, 1, 1)
	// Right face
	verts[20] = vertex(w2, -h2, -d2, 1, 0, 0, 0, 1)
	verts[21] = vertex(w2, h2, -d2, 1, 0, 0, 0, 0)
	verts[22] = vertex(w2, h2, d2, 1, 0, 0, 1, 0)
	verts[23] = vertex(w2, -h2, d2, 1, 0, 0, 1, 1)

	indices := make([]uint32, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		copy(indices[face*6:], []uint32{base, base + 1, base + 2, base, base + 2, base + 3})
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewGrid creates a flat grid in the xz-plane with m rows and n columns of
// vertices, centered at the origin.
func NewGrid(width, depth float32, m, n uint32) MeshData {
	if m < 2 {
		core.LogWarn("Row count must be at least two. Defaulting to two.")
		m = 2
	}
	if n < 2 {
		core.LogWarn("Column count must be at least two. Defaulting to two.")
		n = 2
	}

	half_width := 0.5 * width
	half_depth := 0.5 * depth
	dx := width / float32(n-1)
	dz := depth / float32(m-1)
	du := 1.0 / float32(n-1)
	dv := 1.0 / float32(m-1)

	verts := make([]math.Vertex3D, m*n)
	for i := uint32(0); i < m; i++ {
		z := half_depth - float32(i)*dz
		for j := uint32(0); j < n; j++ {
			x := -half_width + float32(j)*dx
			v := &verts[i*n+j]
			v.Position = math.NewVec3(x, 0, z)
			v.Normal = math.NewVec3(0, 1, 0)
			v.Texcoord = math.NewVec2(float32(j)*du, float32(i)*dv)
		}
	}

	indices := make([]uint32, (m-1)*(n-1)*6)
	k := 0
	for i := uint32(0); i < m-1; i++ {
		for j := uint32(0); j < n-1; j++ {
			indices[k+0] = i*n + j
			indices[k+1] = i*n + j + 1
			indices[k+2] = (i+1)*n + j
			indices[k+3] = (i+1)*n + j
			indices[k+4] = i*n + j + 1
			indices[k+5] = (i+1)*n + j + 1
			k += 6
		}
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewSphere creates a sphere of the given radius built from stacked rings of
// sliceCount segments, with single vertices at the poles.
func NewSphere(radius float32, sliceCount, stackCount uint32) MeshData {
	if sliceCount < 3 {
		core.LogWarn("Slice count must be at least three. Defaulting to three.")
		sliceCount = 3
	}
	if stackCount < 2 {
		core.LogWarn("Stack count must be at least two. Defaulting to two.")
		stackCount = 2
	}

	verts := make([]math.Vertex3D, 0, 2+(stackCount-1)*(sliceCount+1))
	verts = append(verts, vertex(0, radius, 0, 0, 1, 0, 0, 0))

	phi_step := math.K_PI / float32(stackCount)
	theta_step := math.K_PI_2 / float32(sliceCount)

	for i := uint32(1); i < stackCount; i++ {
		phi := float32(i) * phi_step
		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * theta_step
			p := sphericalToCartesian(radius, theta, phi)
			n := p.Normalized()
			verts = append(verts, vertex(p.X, p.Y, p.Z, n.X, n.Y, n.Z,
				theta/math.K_PI_2, phi/math.K_PI))
		}
	}
	verts = append(verts, vertex(0, -radius, 0, 0, -1, 0, 0, 1))

	indices := make([]uint32, 0, sliceCount*6+(stackCount-2)*sliceCount*6)

	// Top fan.
	for i := uint32(1); i <= sliceCount; i++ {
		indices = append(indices, 0, i+1, i)
	}

	// Middle stacks.
	base := uint32(1)
	ring := sliceCount + 1
	for i := uint32(0); i < stackCount-2; i++ {
		for j := uint32(0); j < sliceCount; j++ {
			indices = append(indices,
				base+i*ring+j,
				base+i*ring+j+1,
				base+(i+1)*ring+j,
				base+(i+1)*ring+j,
				base+i*ring+j+1,
				base+(i+1)*ring+j+1)
		}
	}

	// Bottom fan.
	south := uint32(len(verts) - 1)
	base = south - ring
	for i := uint32(0); i < sliceCount; i++ {
		indices = append(indices, south, base+i, base+i+1)
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewCylinder creates a cylinder parallel to the y-axis and centered at the
// origin. Differing top and bottom radii produce a truncated cone.
func NewCylinder(bottomRadius, topRadius, height float32, sliceCount, stackCount uint32) MeshData {
	if sliceCount < 3 {
		core.LogWarn("Slice count must be at least three. Defaulting to three.")
		sliceCount = 3
	}
	if stackCount < 1 {
		core.LogWarn("Stack count must be at least one. Defaulting to one.")
		stackCount = 1
	}

	stack_height := height / float32(stackCount)
	radius_step := (topRadius - bottomRadius) / float32(stackCount)
	ring := sliceCount + 1

	verts := make([]math.Vertex3D, 0, (stackCount+1)*ring+2*(sliceCount+2))

	// Side rings, bottom to top.
	for i := uint32(0); i <= stackCount; i++ {
		y := -0.5*height + float32(i)*stack_height
		r := bottomRadius + float32(i)*radius_step
		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * math.K_PI_2 / float32(sliceCount)
			c := cosf(theta)
			s := sinf(theta)
			n := math.NewVec3(c, 0, s).Normalized()
			verts = append(verts, vertex(r*c, y, r*s, n.X, n.Y, n.Z,
				float32(j)/float32(sliceCount), 1.0-float32(i)/float32(stackCount)))
		}
	}

	indices := make([]uint32, 0, stackCount*sliceCount*6+sliceCount*6)
	for i := uint32(0); i < stackCount; i++ {
		for j := uint32(0); j < sliceCount; j++ {
			indices = append(indices,
				i*ring+j,
				(i+1)*ring+j,
				(i+1)*ring+j+1,
				i*ring+j,
				(i+1)*ring+j+1,
				i*ring+j+1)
		}
	}

	// Top cap.
	if topRadius > 0 {
		base := uint32(len(verts))
		y := 0.5 * height
		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * math.K_PI_2 / float32(sliceCount)
			verts = append(verts, vertex(topRadius*cosf(theta), y, topRadius*sinf(theta), 0, 1, 0,
				cosf(theta)*0.5+0.5, sinf(theta)*0.5+0.5))
		}
		verts = append(verts, vertex(0, y, 0, 0, 1, 0, 0.5, 0.5))
		center := uint32(len(verts) - 1)
		for j := uint32(0); j < sliceCount; j++ {
			indices = append(indices, center, base+j+1, base+j)
		}
	}

	// Bottom cap.
	if bottomRadius > 0 {
		base := uint32(len(verts))
		y := -0.5 * height
		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * math.K_PI_2 / float32(sliceCount)
			verts = append(verts, vertex(bottomRadius*cosf(theta), y, bottomRadius*sinf(theta), 0, -1, 0,
				cosf(theta)*0.5+0.5, sinf(theta)*0.5+0.5))
		}
		verts = append(verts, vertex(0, y, 0, 0, -1, 0, 0.5, 0.5))
		center := uint32(len(verts) - 1)
		for j := uint32(0); j < sliceCount; j++ {
			indices = append(indices, center, base+j, base+j+1)
		}
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewCone creates a cone as a cylinder with a shrinking top radius. A top
// radius of zero yields a pointed tip.
func NewCone(bottomRadius, topRadius, height float32, sliceCount, stackCount uint32) MeshData {
	return NewCylinder(bottomRadius, topRadius, height, sliceCount, stackCount)
}

// NewTorus creates a torus in the xz-plane from inner and outer radii: the
// ring radius is their midpoint and the tube radius half their difference.
func NewTorus(innerRadius, outerRadius float32, sliceCount, stackCount uint32) MeshData {
	if outerRadius <= innerRadius {
		core.LogWarn("Outer radius must exceed inner radius. Swapping.")
		innerRadius, outerRadius = outerRadius, innerRadius
	}
	if sliceCount < 3 {
		core.LogWarn("Slice count must be at least three. Defaulting to three.")
		sliceCount = 3
	}
	if stackCount < 3 {
		core.LogWarn("Stack count must be at least three. Defaulting to three.")
		stackCount = 3
	}

	ring_radius := (innerRadius + outerRadius) * 0.5
	tube_radius := (outerRadius - innerRadius) * 0.5
	ring := sliceCount + 1

	verts := make([]math.Vertex3D, 0, (stackCount+1)*ring)
	for i := uint32(0); i <= stackCount; i++ {
		phi := float32(i) * math.K_PI_2 / float32(stackCount)
		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * math.K_PI_2 / float32(sliceCount)
			cx := ring_radius * cosf(phi)
			cz := ring_radius * sinf(phi)
			x := (ring_radius + tube_radius*cosf(theta)) * cosf(phi)
			y := tube_radius * sinf(theta)
			z := (ring_radius + tube_radius*cosf(theta)) * sinf(phi)
			n := math.NewVec3(x-cx, y, z-cz).Normalized()
			verts = append(verts, vertex(x, y, z, n.X, n.Y, n.Z,
				float32(j)/float32(sliceCount), float32(i)/float32(stackCount)))
		}
	}

	indices := make([]uint32, 0, stackCount*sliceCount*6)
	for i := uint32(0); i < stackCount; i++ {
		for j := uint32(0); j < sliceCount; j++ {
			indices = append(indices,
				i*ring+j,
				(i+1)*ring+j,
				(i+1)*ring+j+1,
				i*ring+j,
				(i+1)*ring+j+1,
				i*ring+j+1)
		}
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewDiamond creates a six-vertex octahedron stretched to the given
// dimensions, apexes along the y-axis.
func NewDiamond(width, height, depth float32) MeshData {
	w2 := width * 0.5
	h2 := height * 0.5
	d2 := depth * 0.5

	verts := []math.Vertex3D{
		vertex(0, h2, 0, 0, 1, 0, 0.5, 0),    // top apex
		vertex(-w2, 0, 0, -1, 0, 0, 0, 0.5),  // left
		vertex(0, 0, -d2, 0, 0, -1, 0.5, 0.5), // front
		vertex(w2, 0, 0, 1, 0, 0, 1, 0.5),    // right
		vertex(0, 0, d2, 0, 0, 1, 0.5, 0.5),  // back
		vertex(0, -h2, 0, 0, -1, 0, 0.5, 1),  // bottom apex
	}

	indices := []uint32{
		// Upper pyramid.
		0, 2, 1,
		0, 3, 2,
		0, 4, 3,
		0, 1, 4,
		// Lower pyramid.
		5, 1, 2,
		5, 2, 3,
		5, 3, 4,
		5, 4, 1,
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewWedge creates a right triangular wedge: a box cut diagonally from the
// top-front edge down to the bottom-back edge, ramp facing -z.
func NewWedge(width, height, depth float32) MeshData {
	w2 := width * 0.5
	h2 := height * 0.5
	d2 := depth * 0.5

	verts := []math.Vertex3D{
		vertex(-w2, -h2, -d2, 0, -1, 0, 0, 1), // 0 bottom front left
		vertex(w2, -h2, -d2, 0, -1, 0, 1, 1),  // 1 bottom front right
		vertex(w2, -h2, d2, 0, -1, 0, 1, 0),   // 2 bottom back right
		vertex(-w2, -h2, d2, 0, -1, 0, 0, 0),  // 3 bottom back left
		vertex(-w2, h2, d2, 0, 1, 0, 0, 0),    // 4 top back left
		vertex(w2, h2, d2, 0, 1, 0, 1, 0),     // 5 top back right
	}

	indices := []uint32{
		// Bottom.
		0, 2, 1,
		0, 3, 2,
		// Back.
		3, 4, 5,
		3, 5, 2,
		// Ramp.
		0, 1, 5,
		0, 5, 4,
		// Left triangle.
		0, 4, 3,
		// Right triangle.
		1, 2, 5,
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewPyramid creates a four-sided pyramid with a rectangular base centered at
// the origin and the apex along +y.
func NewPyramid(width, height, depth float32) MeshData {
	w2 := width * 0.5
	h2 := height * 0.5
	d2 := depth * 0.5

	verts := []math.Vertex3D{
		vertex(-w2, -h2, -d2, 0, -1, 0, 0, 1), // 0 base front left
		vertex(w2, -h2, -d2, 0, -1, 0, 1, 1),  // 1 base front right
		vertex(w2, -h2, d2, 0, -1, 0, 1, 0),   // 2 base back right
		vertex(-w2, -h2, d2, 0, -1, 0, 0, 0),  // 3 base back left
		vertex(0, h2, 0, 0, 1, 0, 0.5, 0.5),   // 4 apex
	}

	indices := []uint32{
		// Base.
		0, 1, 2,
		0, 2, 3,
		// Sides.
		0, 4, 1,
		1, 4, 2,
		2, 4, 3,
		3, 4, 0,
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewTriangularPrism creates a prism with a triangular cross-section in the
// xy-plane, extruded along z.
func NewTriangularPrism(width, height, depth float32) MeshData {
	w2 := width * 0.5
	h2 := height * 0.5
	d2 := depth * 0.5

	verts := []math.Vertex3D{
		vertex(-w2, -h2, -d2, 0, 0, -1, 0, 1), // 0 front bottom left
		vertex(w2, -h2, -d2, 0, 0, -1, 1, 1),  // 1 front bottom right
		vertex(0, h2, -d2, 0, 0, -1, 0.5, 0),  // 2 front top
		vertex(-w2, -h2, d2, 0, 0, 1, 1, 1),   // 3 back bottom left
		vertex(w2, -h2, d2, 0, 0, 1, 0, 1),    // 4 back bottom right
		vertex(0, h2, d2, 0, 0, 1, 0.5, 0),    // 5 back top
	}

	indices := []uint32{
		// Front triangle.
		0, 2, 1,
		// Back triangle.
		3, 4, 5,
		// Bottom.
		0, 1, 4,
		0, 4, 3,
		// Left slope.
		0, 3, 5,
		0, 5, 2,
		// Right slope.
		1, 2, 5,
		1, 5, 4,
	}

	return MeshData{Vertices: verts, Indices: indices}
}

// NewQuad creates a single quad in the z=depth plane with its top-left corner
// at (x, y), extending right and down. Used for billboard-style decoration.
func NewQuad(x, y, width, height, depth float32) MeshData {
	verts := []math.Vertex3D{
		vertex(x, y-height, depth, 0, 0, -1, 0, 1),
		vertex(x, y, depth, 0, 0, -1, 0, 0),
		vertex(x+width, y, depth, 0, 0, -1, 1, 0),
		vertex(x+width, y-height, depth, 0, 0, -1, 1, 1),
	}

	indices := []uint32{0, 1, 2, 0, 2, 3}

	return MeshData{Vertices: verts, Indices: indices}
}

func vertex(px, py, pz, nx, ny, nz, u, v float32) math.Vertex3D {
	return math.Vertex3D{
		Position: math.NewVec3(px, py, pz),
		Normal:   math.NewVec3(nx, ny, nz),
		Texcoord: math.NewVec2(u, v),
	}
}

func sphericalToCartesian(radius, theta, phi float32) math.Vec3 {
	return math.NewVec3(
		radius*sinf(phi)*cosf(theta),
		radius*cosf(phi),
		radius*sinf(phi)*sinf(theta),
	)
}

func sinf(x float32) float32 {
	return math.Sin(x)
}

func cosf(x float32) float32 {
	return math.Cos(x)
}
