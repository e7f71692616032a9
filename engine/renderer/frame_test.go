package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRing(t *testing.T, device *fakeDevice, itemCount uint32) *FrameResourceRing {
	t.Helper()
	ring, err := NewFrameResourceRing(device, HeapLayout{RingDepth: RingDepth, ItemCount: itemCount})
	require.NoError(t, err)
	return ring
}

func TestNewFrameResourceRingValidatesLayout(t *testing.T) {
	_, err := NewFrameResourceRing(newFakeDevice(), HeapLayout{RingDepth: 0, ItemCount: 4})
	assert.Error(t, err)
	_, err = NewFrameResourceRing(newFakeDevice(), HeapLayout{RingDepth: 3, ItemCount: 0})
	assert.Error(t, err)
}

func TestRingRotatesThroughAllSlots(t *testing.T) {
	device := newFakeDevice()
	ring := newTestRing(t, device, 4)

	for frame := 0; frame < 2*RingDepth; frame++ {
		require.NoError(t, ring.Advance())
		assert.Equal(t, uint32(frame%RingDepth), ring.CurrentIndex())
		ring.ReserveFence()
		device.completed = ring.Current().FenceValue // GPU keeps pace
	}
}

func TestRingAdvanceSkipsWaitForFreshSlots(t *testing.T) {
	device := newFakeDevice()
	ring := newTestRing(t, device, 4)

	// The first RingDepth advances hit slots that were never submitted, so
	// no fence wait may occur.
	for frame := 0; frame < RingDepth; frame++ {
		require.NoError(t, ring.Advance())
		ring.ReserveFence()
	}
	assert.Empty(t, device.waits)
}

func TestRingBlocksUntilSlotFenceCompleted(t *testing.T) {
	device := newFakeDevice()
	ring := newTestRing(t, device, 4)

	// Submit RingDepth frames without the GPU making any progress.
	var fences []uint64
	for frame := 0; frame < RingDepth; frame++ {
		require.NoError(t, ring.Advance())
		fences = append(fences, ring.ReserveFence())
	}

	// Frame f+RingDepth returns to slot f's resources and must wait on
	// fence(f) before reuse.
	for frame := 0; frame < RingDepth; frame++ {
		require.NoError(t, ring.Advance())
		require.Len(t, device.waits, frame+1)
		assert.Equal(t, fences[frame], device.waits[frame])
		ring.ReserveFence()
	}
}

func TestRingSkipsWaitWhenGPUAlreadyCaughtUp(t *testing.T) {
	device := newFakeDevice()
	ring := newTestRing(t, device, 4)

	for frame := 0; frame < RingDepth; frame++ {
		require.NoError(t, ring.Advance())
		ring.ReserveFence()
	}

	// GPU has finished everything; reuse must not block.
	device.completed = ring.Current().FenceValue
	require.NoError(t, ring.Advance())
	assert.Empty(t, device.waits)
}

func TestReserveFenceIsMonotonic(t *testing.T) {
	device := newFakeDevice()
	ring := newTestRing(t, device, 1)

	var last uint64
	for frame := 0; frame < 10; frame++ {
		require.NoError(t, ring.Advance())
		fence := ring.ReserveFence()
		assert.Greater(t, fence, last)
		assert.Equal(t, fence, ring.Current().FenceValue)
		last = fence
	}
}
