package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rampart/engine/core"
)

type VulkanBuffer struct {
	Handle    vk.Buffer
	Memory    vk.DeviceMemory
	TotalSize vk.DeviceSize
	Usage     vk.BufferUsageFlags
}

func BufferCreate(context *VulkanContext, size vk.DeviceSize, usage vk.BufferUsageFlags, memoryFlags vk.MemoryPropertyFlags) (*VulkanBuffer, error) {
	buffer := &VulkanBuffer{
		TotalSize: size,
		Usage:     usage,
	}

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &bufferCreateInfo, context.Allocator, &handle); res != vk.Success {
		err := fmt.Errorf("failed to create buffer: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}
	buffer.Handle = handle

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, buffer.Handle, &requirements)
	requirements.Deref()

	memoryIndex := context.FindMemoryIndex(requirements.MemoryTypeBits, uint32(memoryFlags))
	if memoryIndex == -1 {
		err := fmt.Errorf("required memory type not found for buffer")
		core.LogError(err.Error())
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &memory); res != vk.Success {
		err := fmt.Errorf("failed to allocate buffer memory: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}
	buffer.Memory = memory

	if res := vk.BindBufferMemory(context.Device.LogicalDevice, buffer.Handle, buffer.Memory, 0); res != vk.Success {
		err := fmt.Errorf("failed to bind buffer memory: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}

	return buffer, nil
}

func (vb *VulkanBuffer) Destroy(context *VulkanContext) {
	if vb.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(context.Device.LogicalDevice, vb.Memory, context.Allocator)
		vb.Memory = vk.NullDeviceMemory
	}
	if vb.Handle != vk.NullBuffer {
		vk.DestroyBuffer(context.Device.LogicalDevice, vb.Handle, context.Allocator)
		vb.Handle = vk.NullBuffer
	}
	vb.TotalSize = 0
}

func (vb *VulkanBuffer) Map(context *VulkanContext, offset, size vk.DeviceSize) (unsafe.Pointer, error) {
	var data unsafe.Pointer
	if res := vk.MapMemory(context.Device.LogicalDevice, vb.Memory, offset, size, 0, &data); res != vk.Success {
		err := fmt.Errorf("failed to map buffer memory: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}
	return data, nil
}

func (vb *VulkanBuffer) Unmap(context *VulkanContext) {
	vk.UnmapMemory(context.Device.LogicalDevice, vb.Memory)
}

// LoadData maps the buffer, copies data into it at offset and unmaps. Only
// valid for host-visible buffers.
func (vb *VulkanBuffer) LoadData(context *VulkanContext, offset vk.DeviceSize, data []byte) error {
	dst, err := vb.Map(context, offset, vk.DeviceSize(len(data)))
	if err != nil {
		return err
	}
	vk.Memcopy(dst, data)
	vb.Unmap(context)
	return nil
}

// CopyTo records and submits a single-use transfer of this buffer's contents
// into dst, waiting for completion.
func (vb *VulkanBuffer) CopyTo(context *VulkanContext, pool vk.CommandPool, queue vk.Queue, dst *VulkanBuffer, size vk.DeviceSize) error {
	cb, err := AllocateAndBeginSingleUse(context, pool)
	if err != nil {
		return err
	}

	copyRegion := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      size,
	}
	vk.CmdCopyBuffer(cb.Handle, vb.Handle, dst.Handle, 1, []vk.BufferCopy{copyRegion})

	return cb.EndSingleUse(context, pool, queue)
}

// VulkanConstantArena is one ring slot's persistently mapped uniform buffer.
// It holds itemCount object blocks, each padded to the device's uniform
// offset alignment, followed by one pass block.
type VulkanConstantArena struct {
	Buffer       *VulkanBuffer
	Mapped       unsafe.Pointer
	ObjectStride vk.DeviceSize
	ObjectSize   vk.DeviceSize
	PassOffset   vk.DeviceSize
	PassSize     vk.DeviceSize
}

func NewConstantArena(context *VulkanContext, itemCount uint32, objectSize, passSize vk.DeviceSize) (*VulkanConstantArena, error) {
	alignment := vk.DeviceSize(context.Device.Properties.Limits.MinUniformBufferOffsetAlignment)
	objectStride := alignUp(objectSize, alignment)
	passOffset := objectStride * vk.DeviceSize(itemCount)
	totalSize := passOffset + alignUp(passSize, alignment)

	buffer, err := BufferCreate(
		context,
		totalSize,
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, err
	}

	mapped, err := buffer.Map(context, 0, totalSize)
	if err != nil {
		buffer.Destroy(context)
		return nil, err
	}

	return &VulkanConstantArena{
		Buffer:       buffer,
		Mapped:       mapped,
		ObjectStride: objectStride,
		ObjectSize:   objectSize,
		PassOffset:   passOffset,
		PassSize:     passSize,
	}, nil
}

// WriteObject copies one object constant block into the arena.
func (a *VulkanConstantArena) WriteObject(itemSlot uint32, data []byte) {
	offset := uintptr(a.ObjectStride) * uintptr(itemSlot)
	vk.Memcopy(unsafe.Pointer(uintptr(a.Mapped)+offset), data)
}

// WritePass copies the pass constant block into the arena.
func (a *VulkanConstantArena) WritePass(data []byte) {
	vk.Memcopy(unsafe.Pointer(uintptr(a.Mapped)+uintptr(a.PassOffset)), data)
}

func (a *VulkanConstantArena) Destroy(context *VulkanContext) {
	if a.Mapped != nil {
		a.Buffer.Unmap(context)
		a.Mapped = nil
	}
	a.Buffer.Destroy(context)
}

func alignUp(value, alignment vk.DeviceSize) vk.DeviceSize {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) / alignment * alignment
}
