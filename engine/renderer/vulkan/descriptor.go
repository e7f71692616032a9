package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/renderer"
)

/**
 * @brief A flat table of uniform-buffer descriptor sets addressed exactly
 * like the renderer's heap layout: object views fill [0, RingDepth*ItemCount)
 * ordered ring slot by ring slot, pass views follow at PassOffset(). Each set
 * has a single binding 0 pointing into its ring slot's constant arena.
 */
type VulkanConstantTable struct {
	/** @brief The pool all sets are allocated from. */
	Pool vk.DescriptorPool
	/** @brief The single-binding layout shared by object and pass sets. */
	SetLayout vk.DescriptorSetLayout
	/** @brief One set per descriptor index, len = layout.TotalDescriptors(). */
	Sets []vk.DescriptorSet
}

func NewConstantTable(context *VulkanContext, layout renderer.HeapLayout, arenas []*VulkanConstantArena) (*VulkanConstantTable, error) {
	table := &VulkanConstantTable{}
	totalSets := layout.TotalDescriptors()

	// Single uniform buffer visible to the vertex stage.
	binding := vk.DescriptorSetLayoutBinding{
		Binding:         0,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
	}

	layoutCreateInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings:    []vk.DescriptorSetLayoutBinding{binding},
	}
	var setLayout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(context.Device.LogicalDevice, &layoutCreateInfo, context.Allocator, &setLayout); res != vk.Success {
		err := fmt.Errorf("failed to create descriptor set layout: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}
	table.SetLayout = setLayout

	poolSize := vk.DescriptorPoolSize{
		Type:            vk.DescriptorTypeUniformBuffer,
		DescriptorCount: totalSets,
	}
	poolCreateInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PoolSizeCount: 1,
		PPoolSizes:    []vk.DescriptorPoolSize{poolSize},
		MaxSets:       totalSets,
	}
	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(context.Device.LogicalDevice, &poolCreateInfo, context.Allocator, &pool); res != vk.Success {
		err := fmt.Errorf("failed to create descriptor pool: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}
	table.Pool = pool

	table.Sets = make([]vk.DescriptorSet, totalSets)
	for i := uint32(0); i < totalSets; i++ {
		allocateInfo := vk.DescriptorSetAllocateInfo{
			SType:              vk.StructureTypeDescriptorSetAllocateInfo,
			DescriptorPool:     table.Pool,
			DescriptorSetCount: 1,
			PSetLayouts:        []vk.DescriptorSetLayout{table.SetLayout},
		}
		if res := vk.AllocateDescriptorSets(context.Device.LogicalDevice, &allocateInfo, &table.Sets[i]); res != vk.Success {
			err := fmt.Errorf("failed to allocate descriptor set %d: %s", i, VulkanResultString(res))
			core.LogError(err.Error())
			return nil, err
		}
	}

	// Point the object sets at their arena blocks, ring slot by ring slot.
	for ringSlot := uint32(0); ringSlot < layout.RingDepth; ringSlot++ {
		arena := arenas[ringSlot]
		for itemSlot := uint32(0); itemSlot < layout.ItemCount; itemSlot++ {
			table.writeSet(context,
				table.Sets[layout.ObjectIndex(ringSlot, itemSlot)],
				arena.Buffer.Handle,
				arena.ObjectStride*vk.DeviceSize(itemSlot),
				arena.ObjectSize)
		}
		table.writeSet(context,
			table.Sets[layout.PassIndex(ringSlot)],
			arena.Buffer.Handle,
			arena.PassOffset,
			arena.PassSize)
	}

	return table, nil
}

func (t *VulkanConstantTable) writeSet(context *VulkanContext, set vk.DescriptorSet, buffer vk.Buffer, offset, size vk.DeviceSize) {
	bufferInfo := vk.DescriptorBufferInfo{
		Buffer: buffer,
		Offset: offset,
		Range:  size,
	}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set,
		DstBinding:      0,
		DstArrayElement: 0,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
	}
	vk.UpdateDescriptorSets(context.Device.LogicalDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
}

func (t *VulkanConstantTable) Destroy(context *VulkanContext) {
	if t.Pool != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(context.Device.LogicalDevice, t.Pool, context.Allocator)
		t.Pool = vk.NullDescriptorPool
	}
	if t.SetLayout != vk.NullDescriptorSetLayout {
		vk.DestroyDescriptorSetLayout(context.Device.LogicalDevice, t.SetLayout, context.Allocator)
		t.SetLayout = vk.NullDescriptorSetLayout
	}
	t.Sets = nil
}
