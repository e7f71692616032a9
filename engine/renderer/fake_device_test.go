package renderer

import (
	"github.com/spaghettifunk/rampart/engine/core"
)

// fakeDevice records every call the renderer makes so tests can assert on
// ordering, descriptor indexing and fence discipline without a GPU.
type fakeDevice struct {
	layout HeapLayout

	objects [][]ObjectConstants
	pass    []PassConstants

	vertices []Vertex
	indices  []uint32

	completed uint64
	waits     []uint64
	signals   []uint64

	frameBegins    []uint32
	wireframeFlags []bool
	boundIndices   []uint32
	draws          []SubMesh

	// waitAdvancesGPU makes FenceWait behave like a real fence: the GPU
	// "catches up" to the awaited value.
	waitAdvancesGPU bool
	frameBeginErr   error

	shutdown bool
	resizes  [][2]uint16
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{waitAdvancesGPU: true}
}

func (d *fakeDevice) Initialize(appName string, width, height uint32) error {
	return nil
}

func (d *fakeDevice) Shutdown() error {
	d.shutdown = true
	return nil
}

func (d *fakeDevice) Resized(width, height uint16) error {
	d.resizes = append(d.resizes, [2]uint16{width, height})
	return nil
}

func (d *fakeDevice) UploadGeometry(vertices []Vertex, indices []uint32) error {
	d.vertices = vertices
	d.indices = indices
	return nil
}

func (d *fakeDevice) CreateFrameResources(layout HeapLayout) error {
	d.layout = layout
	d.objects = make([][]ObjectConstants, layout.RingDepth)
	for i := range d.objects {
		d.objects[i] = make([]ObjectConstants, layout.ItemCount)
	}
	d.pass = make([]PassConstants, layout.RingDepth)
	return nil
}

func (d *fakeDevice) WriteObjectConstants(ringSlot, itemSlot uint32, data ObjectConstants) {
	d.objects[ringSlot][itemSlot] = data
}

func (d *fakeDevice) WritePassConstants(ringSlot uint32, data PassConstants) {
	d.pass[ringSlot] = data
}

func (d *fakeDevice) FenceCompletedValue() uint64 {
	return d.completed
}

func (d *fakeDevice) FenceWait(value uint64) error {
	d.waits = append(d.waits, value)
	if d.waitAdvancesGPU && d.completed < value {
		d.completed = value
	}
	return nil
}

func (d *fakeDevice) FrameBegin(ringSlot uint32, wireframe bool) error {
	if d.frameBeginErr != nil {
		return d.frameBeginErr
	}
	d.frameBegins = append(d.frameBegins, ringSlot)
	d.wireframeFlags = append(d.wireframeFlags, wireframe)
	return nil
}

func (d *fakeDevice) BindObjectConstants(index uint32) {
	d.boundIndices = append(d.boundIndices, index)
}

func (d *fakeDevice) DrawIndexed(sub SubMesh) {
	d.draws = append(d.draws, sub)
}

func (d *fakeDevice) FrameEnd(fenceValue uint64) error {
	d.signals = append(d.signals, fenceValue)
	return nil
}

var _ Device = (*fakeDevice)(nil)

// errSwapchain mirrors the sentinel a real device returns mid-resize.
var errSwapchain = core.ErrSwapchainBooting
