package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rampart/engine/math"
)

const matTolerance = 1e-4

func setupUploader(t *testing.T, itemCount uint32) (*fakeDevice, *ConstantUploadEngine) {
	t.Helper()
	device := newFakeDevice()
	require.NoError(t, device.CreateFrameResources(HeapLayout{RingDepth: RingDepth, ItemCount: itemCount}))
	return device, NewConstantUploadEngine(device)
}

func TestUpdateObjectsPropagatesToEverySlot(t *testing.T) {
	device, uploader := setupUploader(t, 2)

	world := math.NewMat4Translation(math.NewVec3(1, 2, 3))
	item := NewRenderItem(ShapeBox, 0, world, SubMesh{IndexCount: 36})
	idle := NewRenderItem(ShapeGrid, 1, math.NewMat4Identity(), SubMesh{IndexCount: 6})
	idle.dirtyFrames = 0
	items := []*RenderItem{item, idle}

	// A fresh transform is dirty for RingDepth frames; after one update per
	// distinct ring slot the counter reaches zero and every slot holds the
	// transpose of the same world matrix.
	require.Equal(t, RingDepth, item.DirtyFrames())
	for slot := uint32(0); slot < RingDepth; slot++ {
		uploader.UpdateObjects(slot, items)
	}
	assert.Equal(t, 0, item.DirtyFrames())

	want := world.Transposed()
	for slot := 0; slot < RingDepth; slot++ {
		assert.True(t, device.objects[slot][0].World.Compare(want, matTolerance), "slot %d", slot)
		// The idle item was skipped everywhere.
		assert.True(t, device.objects[slot][1].World.Compare(math.Mat4{}, 0), "slot %d idle", slot)
	}

	// A fourth pass is a no-op.
	device.objects[0][0] = ObjectConstants{}
	uploader.UpdateObjects(0, items)
	assert.True(t, device.objects[0][0].World.Compare(math.Mat4{}, 0))
}

func TestSetWorldRearmsDirtyCounter(t *testing.T) {
	device, uploader := setupUploader(t, 1)

	item := NewRenderItem(ShapeTorus, 0, math.NewMat4Identity(), SubMesh{IndexCount: 3})
	items := []*RenderItem{item}
	for slot := uint32(0); slot < RingDepth; slot++ {
		uploader.UpdateObjects(slot, items)
	}
	require.False(t, item.Dirty())

	moved := math.NewMat4Translation(math.NewVec3(0, 5, 0))
	item.SetWorld(moved)
	require.Equal(t, RingDepth, item.DirtyFrames())

	for slot := uint32(0); slot < RingDepth; slot++ {
		uploader.UpdateObjects(slot, items)
	}
	want := moved.Transposed()
	for slot := 0; slot < RingDepth; slot++ {
		assert.True(t, device.objects[slot][0].World.Compare(want, matTolerance))
	}
}

func TestUpdatePassConstants(t *testing.T) {
	device, uploader := setupUploader(t, 1)
	camera := NewOrbitCamera()

	uploader.UpdatePass(1, camera, 1280, 720, 12.5, 0.016)
	pass := device.pass[1]

	view := camera.ViewMatrix()
	proj := math.NewMat4Perspective(FieldOfView, 1280.0/720.0, NearZ, FarZ)
	viewProj := view.Mul(proj)

	assert.True(t, pass.View.Compare(view.Transposed(), matTolerance))
	assert.True(t, pass.Proj.Compare(proj.Transposed(), matTolerance))
	assert.True(t, pass.ViewProj.Compare(viewProj.Transposed(), matTolerance))

	// Inverse round-trip: untransposed inverses must cancel their matrices.
	identity := math.NewMat4Identity()
	assert.True(t, pass.InvView.Transposed().Mul(view).Compare(identity, matTolerance))
	assert.True(t, pass.InvProj.Transposed().Mul(proj).Compare(identity, matTolerance))
	assert.True(t, pass.InvViewProj.Transposed().Mul(viewProj).Compare(identity, matTolerance))

	assert.True(t, pass.EyePos.Compare(camera.EyePosition(), matTolerance))
	assert.Equal(t, math.NewVec2(1280, 720), pass.RTSize)
	assert.InDelta(t, 1.0/1280.0, float64(pass.InvRTSize.X), 1e-7)
	assert.InDelta(t, 1.0/720.0, float64(pass.InvRTSize.Y), 1e-7)
	assert.Equal(t, NearZ, pass.NearZ)
	assert.Equal(t, FarZ, pass.FarZ)
	assert.Equal(t, float32(12.5), pass.TotalTime)
	assert.Equal(t, float32(0.016), pass.DeltaTime)

	// Only the targeted slot was written.
	assert.True(t, device.pass[0].View.Compare(math.Mat4{}, 0))
	assert.True(t, device.pass[2].View.Compare(math.Mat4{}, 0))
}
