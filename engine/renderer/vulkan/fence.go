package vulkan

import (
	"fmt"
	"math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rampart/engine/containers"
	"github.com/spaghettifunk/rampart/engine/core"
)

type VulkanFence struct {
	Handle     vk.Fence
	IsSignaled bool
}

func NewFence(context *VulkanContext, createSignaled bool) (*VulkanFence, error) {
	fence := &VulkanFence{
		IsSignaled: createSignaled,
	}

	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if fence.IsSignaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var pFence vk.Fence
	if res := vk.CreateFence(context.Device.LogicalDevice, &fenceCreateInfo, context.Allocator, &pFence); res != vk.Success {
		err := fmt.Errorf("failed to create fence: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}
	fence.Handle = pFence
	return fence, nil
}

func (vf *VulkanFence) FenceDestroy(context *VulkanContext) {
	if vf.Handle != vk.NullFence {
		vk.DestroyFence(context.Device.LogicalDevice, vf.Handle, context.Allocator)
		vf.Handle = vk.NullFence
	}
	vf.IsSignaled = false
}

func (vf *VulkanFence) FenceWait(context *VulkanContext, timeoutNs uint64) bool {
	if vf.IsSignaled {
		// If already signaled, do not wait.
		return true
	}
	result := vk.WaitForFences(context.Device.LogicalDevice, 1, []vk.Fence{vf.Handle}, vk.True, timeoutNs)
	switch result {
	case vk.Success:
		vf.IsSignaled = true
		return true
	case vk.Timeout:
		core.LogWarn("vk_fence_wait - Timed out")
	case vk.ErrorDeviceLost:
		core.LogError("vk_fence_wait - VK_ERROR_DEVICE_LOST.")
	case vk.ErrorOutOfHostMemory:
		core.LogError("vk_fence_wait - VK_ERROR_OUT_OF_HOST_MEMORY.")
	case vk.ErrorOutOfDeviceMemory:
		core.LogError("vk_fence_wait - VK_ERROR_OUT_OF_DEVICE_MEMORY.")
	default:
		core.LogError("vk_fence_wait - An unknown error has occurred.")
	}
	return false
}

func (vf *VulkanFence) FenceReset(context *VulkanContext) error {
	if vf.IsSignaled {
		if res := vk.ResetFences(context.Device.LogicalDevice, 1, []vk.Fence{vf.Handle}); res != vk.Success {
			err := fmt.Errorf("failed to reset fence: %s", VulkanResultString(res))
			core.LogError(err.Error())
			return err
		}
		vf.IsSignaled = false
	}
	return nil
}

// FenceTimeline puts one monotonically increasing counter in front of a set of
// per-submission fences. Submissions retire in queue order, so a FIFO of
// (value, fence) pairs is enough: the completed value advances as the fences
// at the front signal, and retired fences are recycled for later submissions.
type FenceTimeline struct {
	completed uint64
	pending   *containers.RingQueue[timelinePoint]
	free      []*VulkanFence
}

type timelinePoint struct {
	value uint64
	fence *VulkanFence
}

// NewFenceTimeline sizes the pending queue for capacity concurrent
// submissions. The frame ring blocks before ever exceeding it.
func NewFenceTimeline(capacity int) *FenceTimeline {
	return &FenceTimeline{
		pending: containers.NewRingQueue[timelinePoint](capacity),
	}
}

// Acquire returns an unsignaled fence to attach to the next queue submission.
func (ft *FenceTimeline) Acquire(context *VulkanContext) (*VulkanFence, error) {
	if n := len(ft.free); n > 0 {
		fence := ft.free[n-1]
		ft.free = ft.free[:n-1]
		if err := fence.FenceReset(context); err != nil {
			return nil, err
		}
		return fence, nil
	}
	return NewFence(context, false)
}

// Submitted records that the given fence will signal once the GPU reaches
// value. Values must be submitted in increasing order.
func (ft *FenceTimeline) Submitted(fence *VulkanFence, value uint64) error {
	if err := ft.pending.Enqueue(timelinePoint{value: value, fence: fence}); err != nil {
		err := fmt.Errorf("fence timeline overflow at value %d: %w", value, err)
		core.LogError(err.Error())
		return err
	}
	return nil
}

// CompletedValue polls pending fences front to back and reports the highest
// value the GPU has reached.
func (ft *FenceTimeline) CompletedValue(context *VulkanContext) uint64 {
	for {
		point, err := ft.pending.Peek()
		if err != nil {
			break
		}
		if !point.fence.IsSignaled {
			if vk.GetFenceStatus(context.Device.LogicalDevice, point.fence.Handle) != vk.Success {
				break
			}
			point.fence.IsSignaled = true
		}
		ft.retire(point)
	}
	return ft.completed
}

// WaitFor blocks until the GPU reaches the given value.
func (ft *FenceTimeline) WaitFor(context *VulkanContext, value uint64) error {
	for ft.completed < value {
		point, err := ft.pending.Peek()
		if err != nil {
			return fmt.Errorf("fence value %d has no pending submission", value)
		}
		if !point.fence.FenceWait(context, math.MaxUint64) {
			return fmt.Errorf("wait for fence value %d failed", point.value)
		}
		ft.retire(point)
	}
	return nil
}

func (ft *FenceTimeline) retire(point timelinePoint) {
	ft.completed = point.value
	ft.pending.Dequeue()
	ft.free = append(ft.free, point.fence)
}

func (ft *FenceTimeline) Destroy(context *VulkanContext) {
	for {
		point, err := ft.pending.Dequeue()
		if err != nil {
			break
		}
		point.fence.FenceDestroy(context)
	}
	for _, fence := range ft.free {
		fence.FenceDestroy(context)
	}
	ft.free = nil
}
