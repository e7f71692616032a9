package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rampart/engine/geometry"
	"github.com/spaghettifunk/rampart/engine/math"
)

func newTestRenderer(t *testing.T) (*Renderer, *fakeDevice) {
	t.Helper()

	batch, err := BuildGeometryBatch([]MeshEntry{
		{Shape: ShapeBox, Mesh: geometry.NewBox(10, 8, 1)},
		{Shape: ShapeSphere, Mesh: geometry.NewSphere(0.5, 20, 20)},
	})
	require.NoError(t, err)

	items := []*RenderItem{
		NewRenderItem(ShapeBox, 0, math.NewMat4Translation(math.NewVec3(0, 4, 5)), batch.SubMesh(ShapeBox)),
		NewRenderItem(ShapeSphere, 1, math.NewMat4Translation(math.NewVec3(0, 1, 0)), batch.SubMesh(ShapeSphere)),
		NewRenderItem(ShapeBox, 2, math.NewMat4Identity(), batch.SubMesh(ShapeBox)),
	}

	device := newFakeDevice()
	r, err := NewRenderer(device, "test", 1280, 720, batch, items, NewOrbitCamera())
	require.NoError(t, err)
	return r, device
}

func TestNewRendererUploadsGeometryAndAllocatesRing(t *testing.T) {
	r, device := newTestRenderer(t)

	assert.Equal(t, r.batch.Vertices(), device.vertices)
	assert.Equal(t, r.batch.Indices(), device.indices)
	assert.Equal(t, HeapLayout{RingDepth: RingDepth, ItemCount: 3}, device.layout)
}

func TestNewRendererRequiresItems(t *testing.T) {
	batch, err := BuildGeometryBatch([]MeshEntry{
		{Shape: ShapeBox, Mesh: geometry.NewBox(1, 1, 1)},
	})
	require.NoError(t, err)

	_, err = NewRenderer(newFakeDevice(), "test", 800, 600, batch, nil, NewOrbitCamera())
	assert.Error(t, err)
}

func TestDrawFrameIssuesOneDrawPerItem(t *testing.T) {
	r, device := newTestRenderer(t)

	require.NoError(t, r.DrawFrame(FrameState{TotalTime: 1, DeltaTime: 0.016}))

	// First frame runs on ring slot 0.
	require.Equal(t, []uint32{0}, device.frameBegins)

	// One object bind and one draw per item, at slot*itemCount+itemSlot.
	require.Len(t, device.draws, 3)
	for i, item := range r.Items() {
		assert.Equal(t, r.Layout().ObjectIndex(0, item.SlotIndex), device.boundIndices[i])
		assert.Equal(t, item.Sub(), device.draws[i])
	}

	// The frame was submitted with fence value 1.
	assert.Equal(t, []uint64{1}, device.signals)
}

func TestDrawFrameRotatesSlotsAndFences(t *testing.T) {
	r, device := newTestRenderer(t)

	for frame := 0; frame < 5; frame++ {
		require.NoError(t, r.DrawFrame(FrameState{}))
	}

	assert.Equal(t, []uint32{0, 1, 2, 0, 1}, device.frameBegins)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, device.signals)

	// Reusing slot 0 at frame 3 and slot 1 at frame 4 required waiting on
	// their fences, since the fake GPU never progressed on its own.
	assert.Equal(t, []uint64{1, 2}, device.waits)
}

func TestDrawFrameReevaluatesWireframeEachFrame(t *testing.T) {
	r, device := newTestRenderer(t)

	require.NoError(t, r.DrawFrame(FrameState{Wireframe: false}))
	require.NoError(t, r.DrawFrame(FrameState{Wireframe: true}))
	require.NoError(t, r.DrawFrame(FrameState{Wireframe: false}))

	assert.Equal(t, []bool{false, true, false}, device.wireframeFlags)
}

func TestDrawFrameSkipsWhileSwapchainBoots(t *testing.T) {
	r, device := newTestRenderer(t)

	device.frameBeginErr = errSwapchain
	require.NoError(t, r.DrawFrame(FrameState{}))

	// No draw, no submit, no fence signal.
	assert.Empty(t, device.draws)
	assert.Empty(t, device.signals)
}

func TestOnResizeForwardsToDevice(t *testing.T) {
	r, device := newTestRenderer(t)

	require.NoError(t, r.OnResize(1920, 1080))
	require.Len(t, device.resizes, 1)
	assert.Equal(t, [2]uint16{1920, 1080}, device.resizes[0])
}

func TestShutdownFlushesDevice(t *testing.T) {
	r, device := newTestRenderer(t)
	require.NoError(t, r.Shutdown())
	assert.True(t, device.shutdown)
}
