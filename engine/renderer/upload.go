package renderer

import (
	"github.com/spaghettifunk/rampart/engine/math"
)

// Near and far clip planes of the scene camera.
const (
	NearZ float32 = 1.0
	FarZ  float32 = 1000.0
)

// FieldOfView is the vertical field of view in radians.
const FieldOfView = math.K_QUARTER_PI

// ConstantUploadEngine recomputes and writes the constant blocks for the
// current ring slot each frame. Both operations are synchronous and must run
// after the ring's fence wait and before the frame is submitted; the writes
// themselves are plain stores into memory the GPU is guaranteed not to be
// reading.
type ConstantUploadEngine struct {
	device Device
}

func NewConstantUploadEngine(device Device) *ConstantUploadEngine {
	return &ConstantUploadEngine{device: device}
}

// UpdateObjects uploads the transposed world matrix of every dirty item into
// the ring slot's object arena and decrements the dirty counter. Idle items
// are skipped so unchanged transforms cost no GPU writes.
func (e *ConstantUploadEngine) UpdateObjects(ringSlot uint32, items []*RenderItem) {
	for _, item := range items {
		if !item.Dirty() {
			continue
		}
		e.device.WriteObjectConstants(ringSlot, item.SlotIndex, ObjectConstants{
			World: item.World().Transposed(),
		})
		item.dirtyFrames--
	}
}

// UpdatePass recomputes the camera/projection constants and writes them into
// the ring slot's pass arena. View and projection are always well-formed for
// the orbit camera; Inverse degrades to identity on a singular matrix rather
// than asserting.
func (e *ConstantUploadEngine) UpdatePass(ringSlot uint32, camera *OrbitCamera, width, height uint32, totalTime, deltaTime float32) {
	view := camera.ViewMatrix()
	proj := math.NewMat4Perspective(FieldOfView, float32(width)/float32(height), NearZ, FarZ)
	viewProj := view.Mul(proj)

	pass := PassConstants{
		View:        view.Transposed(),
		InvView:     view.Inverse().Transposed(),
		Proj:        proj.Transposed(),
		InvProj:     proj.Inverse().Transposed(),
		ViewProj:    viewProj.Transposed(),
		InvViewProj: viewProj.Inverse().Transposed(),
		EyePos:      camera.EyePosition(),
		RTSize:      math.NewVec2(float32(width), float32(height)),
		InvRTSize:   math.NewVec2(1.0/float32(width), 1.0/float32(height)),
		NearZ:       NearZ,
		FarZ:        FarZ,
		TotalTime:   totalTime,
		DeltaTime:   deltaTime,
	}

	e.device.WritePassConstants(ringSlot, pass)
}
