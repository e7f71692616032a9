package renderer

import (
	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/math"
)

// RenderItem describes one instance to draw: a world transform, the shape's
// sub-range in the geometry batch, and the item's constant-buffer slot.
// Items are owned exclusively by the renderer's item list.
type RenderItem struct {
	ID        string
	Shape     ShapeID
	SlotIndex uint32

	world math.Mat4
	sub   SubMesh

	// dirtyFrames counts how many ring slots still need the current world
	// matrix. It starts at RingDepth so a fresh transform reaches every
	// slot exactly once before the item goes idle.
	dirtyFrames int
}

// NewRenderItem creates an item already marked dirty for every ring slot.
func NewRenderItem(shape ShapeID, slotIndex uint32, world math.Mat4, sub SubMesh) *RenderItem {
	return &RenderItem{
		ID:          core.GenerateNewUUID(),
		Shape:       shape,
		SlotIndex:   slotIndex,
		world:       world,
		sub:         sub,
		dirtyFrames: RingDepth,
	}
}

// World returns the current world transform.
func (r *RenderItem) World() math.Mat4 {
	return r.world
}

// SetWorld replaces the world transform and re-arms the dirty counter so the
// new matrix propagates to every ring slot.
func (r *RenderItem) SetWorld(world math.Mat4) {
	r.world = world
	r.dirtyFrames = RingDepth
}

// Sub returns the item's sub-mesh range.
func (r *RenderItem) Sub() SubMesh {
	return r.sub
}

// Dirty reports whether the item still has pending constant uploads.
func (r *RenderItem) Dirty() bool {
	return r.dirtyFrames > 0
}

// DirtyFrames returns the remaining upload count.
func (r *RenderItem) DirtyFrames() int {
	return r.dirtyFrames
}
