package renderer

// Device is the graphics-device collaborator the renderer drives. It hides
// instance/swapchain management, buffer and descriptor creation, command
// recording and submission behind a handful of frame-shaped calls.
//
// Fence semantics: the device exposes one monotonically increasing fence.
// FrameEnd(value) submits the frame's commands and arranges for the fence to
// reach value once the GPU finishes them; FenceCompletedValue reports how far
// the GPU has progressed and FenceWait blocks until the given value is
// reached. Waits are unbounded: a hung driver stalls the process.
type Device interface {
	// Initialize brings up the device against the platform window.
	Initialize(appName string, width, height uint32) error
	// Shutdown tears everything down. The device flushes outstanding GPU
	// work first.
	Shutdown() error
	// Resized is called when the framebuffer size changes.
	Resized(width, height uint16) error

	// UploadGeometry pushes the shared vertex/index buffers to GPU-resident
	// memory. Called once, before the first frame.
	UploadGeometry(vertices []Vertex, indices []uint32) error

	// CreateFrameResources allocates the per-ring-slot command recording
	// state and persistently mapped constant arenas laid out per layout.
	CreateFrameResources(layout HeapLayout) error

	// WriteObjectConstants stores the constant block for one item slot in
	// one ring slot's arena. Plain memory write; fencing is the caller's
	// concern.
	WriteObjectConstants(ringSlot, itemSlot uint32, data ObjectConstants)
	// WritePassConstants stores the pass block in one ring slot's arena.
	WritePassConstants(ringSlot uint32, data PassConstants)

	// FenceCompletedValue returns the last fence value the GPU has reached.
	FenceCompletedValue() uint64
	// FenceWait blocks until the GPU reaches the given fence value.
	FenceWait(value uint64) error

	// FrameBegin acquires the next backbuffer and starts command recording
	// for the ring slot: reset allocator, select the solid or wireframe
	// pipeline, transition/clear/bind the render target, bind the shared
	// geometry buffers and the slot's pass constants. Returns
	// core.ErrSwapchainBooting when the swapchain is mid-recreate and the
	// frame should simply be skipped.
	FrameBegin(ringSlot uint32, wireframe bool) error
	// BindObjectConstants binds the object view at the given descriptor
	// index for the next draw.
	BindObjectConstants(index uint32)
	// DrawIndexed issues one indexed draw for the sub-range.
	DrawIndexed(sub SubMesh)
	// FrameEnd closes and submits the command list, presents, and signals
	// the fence with the given value when the GPU finishes.
	FrameEnd(fenceValue uint64) error
}
