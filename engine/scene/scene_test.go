package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rampart/engine/math"
	"github.com/spaghettifunk/rampart/engine/renderer"
)

// nullDevice satisfies renderer.Device with no-ops so scene tests can drive
// the constant uploader without a GPU.
type nullDevice struct{}

func (nullDevice) Initialize(string, uint32, uint32) error                       { return nil }
func (nullDevice) Shutdown() error                                               { return nil }
func (nullDevice) Resized(uint16, uint16) error                                  { return nil }
func (nullDevice) UploadGeometry([]renderer.Vertex, []uint32) error              { return nil }
func (nullDevice) CreateFrameResources(renderer.HeapLayout) error                { return nil }
func (nullDevice) WriteObjectConstants(uint32, uint32, renderer.ObjectConstants) {}
func (nullDevice) WritePassConstants(uint32, renderer.PassConstants)             {}
func (nullDevice) FenceCompletedValue() uint64                                   { return 0 }
func (nullDevice) FenceWait(uint64) error                                        { return nil }
func (nullDevice) FrameBegin(uint32, bool) error                                 { return nil }
func (nullDevice) BindObjectConstants(uint32)                                    {}
func (nullDevice) DrawIndexed(renderer.SubMesh)                                  {}
func (nullDevice) FrameEnd(uint64) error                                         { return nil }

func buildCastleBatch(t *testing.T) *renderer.GeometryBatch {
	t.Helper()
	batch, err := renderer.BuildGeometryBatch(Meshes())
	require.NoError(t, err)
	return batch
}

func TestCastleCatalog(t *testing.T) {
	castle := Castle()
	assert.Equal(t, "castle", castle.Name)
	require.Len(t, castle.Items, 31)

	counts := map[string]int{}
	for _, item := range castle.Items {
		counts[item.Shape]++
	}
	assert.Equal(t, 4, counts["box"])
	assert.Equal(t, 1, counts["grid"])
	assert.Equal(t, 1, counts["sphere"])
	assert.Equal(t, 4, counts["cylinder"])
	assert.Equal(t, 4, counts["cone"])
	assert.Equal(t, 1, counts["torus"])
	assert.Equal(t, 12, counts["diamond"])
	assert.Equal(t, 1, counts["wedge"])
	assert.Equal(t, 1, counts["pyramid"])
	assert.Equal(t, 1, counts["triangularPrism"])
	assert.Equal(t, 1, counts["quad"])
}

func TestBuildItemsAssignsSequentialSlots(t *testing.T) {
	batch := buildCastleBatch(t)
	items, err := Castle().BuildItems(batch)
	require.NoError(t, err)
	require.Len(t, items, 31)

	for slot, item := range items {
		assert.Equal(t, uint32(slot), item.SlotIndex)
		assert.Equal(t, batch.SubMesh(item.Shape), item.Sub())
		// Fresh items are dirty for every ring slot.
		assert.Equal(t, renderer.RingDepth, item.DirtyFrames())
	}
}

func TestItemDescWorld(t *testing.T) {
	plain := ItemDesc{Shape: "sphere", Position: [3]float32{0, 1, 0}}
	assert.True(t, plain.World().Compare(
		math.NewMat4Translation(math.NewVec3(0, 1, 0)), 1e-6))

	rotated := ItemDesc{Shape: "box", Position: [3]float32{5, 4, 0}, YawDeg: 90}
	want := math.NewMat4EulerY(math.DegToRad(90)).Mul(
		math.NewMat4Translation(math.NewVec3(5, 4, 0)))
	assert.True(t, rotated.World().Compare(want, 1e-6))
}

func TestBuildItemsRejectsUnknownShape(t *testing.T) {
	batch := buildCastleBatch(t)
	desc := &Descriptor{Items: []ItemDesc{{Shape: "moat"}}}
	_, err := desc.BuildItems(batch)
	assert.Error(t, err)
}

func TestApplyMarksMovedItemsDirty(t *testing.T) {
	batch := buildCastleBatch(t)
	castle := Castle()
	items, err := castle.BuildItems(batch)
	require.NoError(t, err)

	// Drain the initial dirtiness through the uploader.
	uploader := renderer.NewConstantUploadEngine(nullDevice{})
	for slot := uint32(0); slot < renderer.RingDepth; slot++ {
		uploader.UpdateObjects(slot, items)
	}
	for _, item := range items {
		require.False(t, item.Dirty())
	}

	moved := Castle()
	moved.Items[5].Position = [3]float32{0, 3, 0} // raise the sphere

	require.NoError(t, moved.Apply(items))

	assert.Equal(t, renderer.RingDepth, items[5].DirtyFrames())
	for slot, item := range items {
		if slot == 5 {
			continue
		}
		assert.False(t, item.Dirty(), "item %d should be untouched", slot)
	}
}

func TestApplyRejectsShapeEdits(t *testing.T) {
	batch := buildCastleBatch(t)
	items, err := Castle().BuildItems(batch)
	require.NoError(t, err)

	edited := Castle()
	edited.Items[0].Shape = "torus"
	assert.Error(t, edited.Apply(items))

	short := &Descriptor{Items: edited.Items[:3]}
	assert.Error(t, short.Apply(items))
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "castle.toml")

	content := `name = "castle"

[[items]]
shape = "box"
position = [0.0, 4.0, 5.0]

[[items]]
shape = "box"
position = [5.0, 4.0, 0.0]
yaw_deg = 90.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	desc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "castle", desc.Name)
	require.Len(t, desc.Items, 2)
	assert.Equal(t, float32(90), desc.Items[1].YawDeg)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestWatcherDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	initial := `[[items]]
shape = "sphere"
position = [0.0, 1.0, 0.0]
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	assert.Nil(t, w.TakePending())

	updated := `[[items]]
shape = "sphere"
position = [0.0, 3.0, 0.0]
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	// The watcher goroutine needs a moment to observe the write.
	var desc *Descriptor
	require.Eventually(t, func() bool {
		desc = w.TakePending()
		return desc != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, float32(3), desc.Items[0].Position[1])
}
