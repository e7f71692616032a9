package vulkan

import (
	"fmt"
	"os"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rampart/engine/core"
)

/**
 * @brief Represents a single shader stage.
 */
type VulkanShaderStage struct {
	/** @brief The internal shader module handle. */
	Handle vk.ShaderModule
	/** @brief The pipeline shader stage creation info. */
	ShaderStageCreateInfo vk.PipelineShaderStageCreateInfo
}

// NewShaderModule loads a compiled SPIR-V binary from disk and wraps it in a
// pipeline stage description.
func NewShaderModule(context *VulkanContext, path string, shaderStageFlag vk.ShaderStageFlagBits) (*VulkanShaderStage, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("unable to read shader module %s: %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	if len(code) == 0 || len(code)%4 != 0 {
		err = fmt.Errorf("shader module %s is not valid SPIR-V (size %d)", path, len(code))
		core.LogError(err.Error())
		return nil, err
	}

	stage := &VulkanShaderStage{}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}

	if res := vk.CreateShaderModule(
		context.Device.LogicalDevice,
		&createInfo,
		context.Allocator,
		&stage.Handle); res != vk.Success {
		err = fmt.Errorf("failed to create shader module %s: %s", path, VulkanResultString(res))
		core.LogError(err.Error())
		return nil, err
	}

	stage.ShaderStageCreateInfo = vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  shaderStageFlag,
		Module: stage.Handle,
		PName:  VulkanSafeString("main"),
	}

	return stage, nil
}

func (s *VulkanShaderStage) Destroy(context *VulkanContext) {
	if s.Handle != vk.NullShaderModule {
		vk.DestroyShaderModule(context.Device.LogicalDevice, s.Handle, context.Allocator)
		s.Handle = vk.NullShaderModule
	}
}

// sliceUint32 reinterprets SPIR-V bytes as the word slice the API expects.
func sliceUint32(data []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
