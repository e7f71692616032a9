package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/rampart/engine/core"
)

// Renderer owns the draw pipeline: the geometry batch, the render-item list,
// the frame-resource ring and the constant uploader, all driven against a
// Device. One instance per process, driven by a single thread.
type Renderer struct {
	device   Device
	ring     *FrameResourceRing
	uploader *ConstantUploadEngine

	batch  *GeometryBatch
	items  []*RenderItem
	camera *OrbitCamera
	layout HeapLayout

	width  uint32
	height uint32
}

// NewRenderer initializes the device and uploads the scene: the batch's
// shared buffers become GPU resident and the frame ring is allocated sized
// to the item list. Fatal device errors are returned wrapped; there is no
// retry.
func NewRenderer(device Device, appName string, width, height uint32, batch *GeometryBatch, items []*RenderItem, camera *OrbitCamera) (*Renderer, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("renderer requires at least one render item")
	}

	if err := device.Initialize(appName, width, height); err != nil {
		core.LogError("failed to initialize the graphics device")
		return nil, err
	}

	if err := device.UploadGeometry(batch.Vertices(), batch.Indices()); err != nil {
		core.LogError("failed to upload the geometry batch")
		return nil, err
	}

	layout := HeapLayout{RingDepth: RingDepth, ItemCount: uint32(len(items))}
	ring, err := NewFrameResourceRing(device, layout)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		device:   device,
		ring:     ring,
		uploader: NewConstantUploadEngine(device),
		batch:    batch,
		items:    items,
		camera:   camera,
		layout:   layout,
		width:    width,
		height:   height,
	}, nil
}

// Camera exposes the orbit camera for input mapping.
func (r *Renderer) Camera() *OrbitCamera {
	return r.camera
}

// Items exposes the render-item list. Transforms may be mutated between
// frames only, never concurrently with DrawFrame.
func (r *Renderer) Items() []*RenderItem {
	return r.items
}

// Layout exposes the descriptor layout in use.
func (r *Renderer) Layout() HeapLayout {
	return r.layout
}

// OnResize updates the cached framebuffer size and forwards to the device.
func (r *Renderer) OnResize(width, height uint16) error {
	r.width = uint32(width)
	r.height = uint32(height)
	return r.device.Resized(width, height)
}

// DrawFrame renders one frame:
//
//  1. advance the ring, blocking until the incoming slot's prior GPU work
//     is complete;
//  2. upload dirty object constants and the pass constants into that slot;
//  3. begin the frame with the pipeline selected by this tick's wireframe
//     flag (re-evaluated every frame, never cached);
//  4. issue one indexed draw per item against its slot's object view;
//  5. submit, present and signal the slot's new fence value.
func (r *Renderer) DrawFrame(state FrameState) error {
	if err := r.ring.Advance(); err != nil {
		return err
	}
	slot := r.ring.CurrentIndex()

	r.uploader.UpdateObjects(slot, r.items)
	r.uploader.UpdatePass(slot, r.camera, r.width, r.height, state.TotalTime, state.DeltaTime)

	if err := r.device.FrameBegin(slot, state.Wireframe); err != nil {
		if errors.Is(err, core.ErrSwapchainBooting) {
			// Mid-resize; skip the frame.
			return nil
		}
		return err
	}

	for _, item := range r.items {
		r.device.BindObjectConstants(r.layout.ObjectIndex(slot, item.SlotIndex))
		r.device.DrawIndexed(item.Sub())
	}

	fence := r.ring.ReserveFence()
	return r.device.FrameEnd(fence)
}

// Shutdown flushes the device and releases its resources.
func (r *Renderer) Shutdown() error {
	return r.device.Shutdown()
}
