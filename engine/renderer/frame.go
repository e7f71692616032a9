package renderer

import (
	"fmt"

	"github.com/spaghettifunk/rampart/engine/core"
)

// FrameResource is the CPU-side record for one ring slot. The constant
// arenas and command allocator live in the device, keyed by the slot index;
// what the ring tracks here is the fence value that must be reached before
// the slot's GPU resources can be reused.
type FrameResource struct {
	Index      uint32
	FenceValue uint64
}

// FrameResourceRing rotates RingDepth frame resources so the CPU can record
// up to RingDepth frames ahead of the GPU. Advance is the only blocking
// point in the renderer.
type FrameResourceRing struct {
	device Device
	frames []*FrameResource

	current   int
	nextFence uint64
}

// NewFrameResourceRing allocates the device-side frame resources for the
// given layout and the ring that rotates them.
func NewFrameResourceRing(device Device, layout HeapLayout) (*FrameResourceRing, error) {
	if layout.RingDepth == 0 || layout.ItemCount == 0 {
		return nil, fmt.Errorf("frame resource ring requires a nonzero ring depth and item count")
	}
	if err := device.CreateFrameResources(layout); err != nil {
		core.LogError("failed to create device frame resources")
		return nil, err
	}

	frames := make([]*FrameResource, layout.RingDepth)
	for i := range frames {
		frames[i] = &FrameResource{Index: uint32(i)}
	}

	return &FrameResourceRing{
		device: device,
		frames: frames,
		// Advance moves to slot 0 on the first frame.
		current: len(frames) - 1,
	}, nil
}

// Advance rotates to the next ring slot. If the GPU has not yet reached the
// fence value recorded for that slot, the calling thread blocks until it
// has. A zero fence value means the slot has never been submitted.
func (r *FrameResourceRing) Advance() error {
	r.current = (r.current + 1) % len(r.frames)
	fr := r.frames[r.current]
	if fr.FenceValue != 0 && r.device.FenceCompletedValue() < fr.FenceValue {
		if err := r.device.FenceWait(fr.FenceValue); err != nil {
			core.LogError("fence wait failed for frame slot %d", fr.Index)
			return err
		}
	}
	return nil
}

// Current returns the active frame resource.
func (r *FrameResourceRing) Current() *FrameResource {
	return r.frames[r.current]
}

// CurrentIndex returns the active ring slot index.
func (r *FrameResourceRing) CurrentIndex() uint32 {
	return r.frames[r.current].Index
}

// ReserveFence assigns the next global fence value to the current slot. The
// caller passes the value to Device.FrameEnd so the GPU signals it after the
// frame's commands complete.
func (r *FrameResourceRing) ReserveFence() uint64 {
	r.nextFence++
	r.frames[r.current].FenceValue = r.nextFence
	return r.nextFence
}

// Depth returns the ring depth.
func (r *FrameResourceRing) Depth() int {
	return len(r.frames)
}
