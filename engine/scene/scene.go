package scene

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/rampart/engine/geometry"
	"github.com/spaghettifunk/rampart/engine/math"
	"github.com/spaghettifunk/rampart/engine/renderer"
)

// ItemDesc places one shape instance in the world. Items are ordered: the
// position in the list is the instance's constant-buffer slot.
type ItemDesc struct {
	Shape    string     `toml:"shape"`
	Position [3]float32 `toml:"position"`
	YawDeg   float32    `toml:"yaw_deg,omitempty"`
}

// Descriptor is a declarative scene: an ordered list of shape placements.
type Descriptor struct {
	Name  string     `toml:"name"`
	Items []ItemDesc `toml:"items"`
}

// Load reads a scene descriptor from a TOML file.
func Load(path string) (*Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file '%s': %w", path, err)
	}
	desc := &Descriptor{}
	if err := toml.Unmarshal(raw, desc); err != nil {
		return nil, fmt.Errorf("failed to parse scene file '%s': %w", path, err)
	}
	if len(desc.Items) == 0 {
		return nil, fmt.Errorf("scene '%s' has no items", path)
	}
	return desc, nil
}

// World computes the item's world matrix: yaw about y, then translation.
func (i ItemDesc) World() math.Mat4 {
	world := math.NewMat4Translation(math.NewVec3(i.Position[0], i.Position[1], i.Position[2]))
	if i.YawDeg != 0 {
		world = math.NewMat4EulerY(math.DegToRad(i.YawDeg)).Mul(world)
	}
	return world
}

// BuildItems resolves every descriptor entry against the geometry batch and
// produces the ordered render-item list. Unknown shape names are an error.
func (d *Descriptor) BuildItems(batch *renderer.GeometryBatch) ([]*renderer.RenderItem, error) {
	items := make([]*renderer.RenderItem, 0, len(d.Items))
	for slot, entry := range d.Items {
		shape, ok := renderer.ShapeIDFromName(entry.Shape)
		if !ok {
			return nil, fmt.Errorf("scene item %d references unknown shape '%s'", slot, entry.Shape)
		}
		if !batch.Has(shape) {
			return nil, fmt.Errorf("scene item %d references shape '%s' missing from the batch", slot, entry.Shape)
		}
		items = append(items, renderer.NewRenderItem(shape, uint32(slot), entry.World(), batch.SubMesh(shape)))
	}
	return items, nil
}

// Apply pushes the descriptor's transforms onto an existing item list,
// re-arming the dirty counter of every item whose placement changed. Item
// count and shape order must match the list the scene was built from.
func (d *Descriptor) Apply(items []*renderer.RenderItem) error {
	if len(d.Items) != len(items) {
		return fmt.Errorf("scene has %d items but the renderer holds %d", len(d.Items), len(items))
	}
	for slot, entry := range d.Items {
		shape, ok := renderer.ShapeIDFromName(entry.Shape)
		if !ok {
			return fmt.Errorf("scene item %d references unknown shape '%s'", slot, entry.Shape)
		}
		if shape != items[slot].Shape {
			return fmt.Errorf("scene item %d changed shape from '%s' to '%s'; shape edits require a restart",
				slot, items[slot].Shape, shape)
		}
		world := entry.World()
		if !items[slot].World().Compare(world, 0) {
			items[slot].SetWorld(world)
		}
	}
	return nil
}

// Meshes returns the generator output for every shape the castle uses, in
// batch order.
func Meshes() []renderer.MeshEntry {
	return []renderer.MeshEntry{
		{Shape: renderer.ShapeBox, Mesh: geometry.NewBox(10, 8, 1)},
		{Shape: renderer.ShapeGrid, Mesh: geometry.NewGrid(20, 20, 20, 40)},
		{Shape: renderer.ShapeSphere, Mesh: geometry.NewSphere(0.5, 20, 20)},
		{Shape: renderer.ShapeCylinder, Mesh: geometry.NewCylinder(1, 1, 4, 20, 20)},
		{Shape: renderer.ShapeCone, Mesh: geometry.NewCone(1, 0, 2, 20, 20)},
		{Shape: renderer.ShapeTorus, Mesh: geometry.NewTorus(4, 5, 20, 20)},
		{Shape: renderer.ShapeDiamond, Mesh: geometry.NewDiamond(2, 1, 2)},
		{Shape: renderer.ShapeWedge, Mesh: geometry.NewWedge(5, 2, 5)},
		{Shape: renderer.ShapePyramid, Mesh: geometry.NewPyramid(1, 1, 2)},
		{Shape: renderer.ShapeTriangularPrism, Mesh: geometry.NewTriangularPrism(2, 2, 2)},
		{Shape: renderer.ShapeQuad, Mesh: geometry.NewQuad(2, 2, 2, 2, 2)},
	}
}

// Castle returns the built-in castle layout: four walls, a ground grid, a
// centre sphere, four towers capped by cones, a decorative torus, twelve
// rooftop diamonds, a gate wedge, and pyramid/prism/quad ornaments.
func Castle() *Descriptor {
	items := []ItemDesc{
		// Walls.
		{Shape: "box", Position: [3]float32{0, 4, 5}},
		{Shape: "box", Position: [3]float32{0, 4, -5}},
		{Shape: "box", Position: [3]float32{5, 4, 0}, YawDeg: 90},
		{Shape: "box", Position: [3]float32{-5, 4, 0}, YawDeg: 90},
		// Ground.
		{Shape: "grid", Position: [3]float32{0, 0, 0}},
		// Centre sphere.
		{Shape: "sphere", Position: [3]float32{0, 1, 0}},
		// Towers.
		{Shape: "cylinder", Position: [3]float32{-5, 10, 5}},
		{Shape: "cylinder", Position: [3]float32{5, 10, 5}},
		{Shape: "cylinder", Position: [3]float32{-5, 10, -5}},
		{Shape: "cylinder", Position: [3]float32{5, 10, -5}},
		// Tower tops.
		{Shape: "cone", Position: [3]float32{-5, 13, 5}},
		{Shape: "cone", Position: [3]float32{5, 13, 5}},
		{Shape: "cone", Position: [3]float32{-5, 13, -5}},
		{Shape: "cone", Position: [3]float32{5, 13, -5}},
		// Decoration.
		{Shape: "torus", Position: [3]float32{0, 2, 0}},
		// Rooftop diamonds, three per wall.
		{Shape: "diamond", Position: [3]float32{-5, 8.5, 3}},
		{Shape: "diamond", Position: [3]float32{-5, 8.5, 0}},
		{Shape: "diamond", Position: [3]float32{-5, 8.5, -3}},
		{Shape: "diamond", Position: [3]float32{-3, 8.5, 5}},
		{Shape: "diamond", Position: [3]float32{0, 8.5, 5}},
		{Shape: "diamond", Position: [3]float32{3, 8.5, 5}},
		{Shape: "diamond", Position: [3]float32{-3, 8.5, -5}},
		{Shape: "diamond", Position: [3]float32{0, 8.5, -5}},
		{Shape: "diamond", Position: [3]float32{3, 8.5, -5}},
		{Shape: "diamond", Position: [3]float32{5, 8.5, -3}},
		{Shape: "diamond", Position: [3]float32{5, 8.5, 0}},
		{Shape: "diamond", Position: [3]float32{5, 8.5, 3}},
		// Gate ramp.
		{Shape: "wedge", Position: [3]float32{0, 0.8, 5.5}},
		// Ornaments.
		{Shape: "pyramid", Position: [3]float32{0, 1.5, 0}},
		{Shape: "triangularPrism", Position: [3]float32{0, 4.5, 0}},
		{Shape: "quad", Position: [3]float32{0, 5, -7.6}},
	}
	return &Descriptor{Name: "castle", Items: items}
}
