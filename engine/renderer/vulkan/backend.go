package vulkan

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/platform"
	"github.com/spaghettifunk/rampart/engine/renderer"
)

const (
	vertexShaderPath   = "assets/shaders/scene.vert.spv"
	fragmentShaderPath = "assets/shaders/scene.frag.spv"
)

// VulkanRenderer drives a Vulkan device through the renderer's frame-shaped
// contract. Ring slots map onto in-flight frames: the swapchain allows
// renderer.RingDepth frames in flight and the constant arenas, semaphore
// pairs and descriptor table are all addressed by ring slot.
type VulkanRenderer struct {
	platform                *platform.Platform
	context                 *VulkanContext
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32

	timeline *FenceTimeline
	layout   renderer.HeapLayout
	arenas   []*VulkanConstantArena
	table    *VulkanConstantTable

	// Fence value of the frame last rendered into each swapchain image.
	imagesInFlight []uint64

	vertexBuffer *VulkanBuffer
	indexBuffer  *VulkanBuffer

	vertexShader   *VulkanShaderStage
	fragmentShader *VulkanShaderStage

	solidPipeline     *VulkanPipeline
	wireframePipeline *VulkanPipeline

	// Recording state for the frame between FrameBegin and FrameEnd.
	recordingBuffer *VulkanCommandBuffer
	boundPipeline   *VulkanPipeline
	currentRingSlot uint32

	debug bool
}

var _ renderer.Device = (*VulkanRenderer)(nil)

func New(p *platform.Platform) *VulkanRenderer {
	return &VulkanRenderer{
		platform: p,
		context: &VulkanContext{
			FramebufferWidth:  0,
			FramebufferHeight: 0,
			Allocator:         nil,
		},
		debug: true,
	}
}

func (vr *VulkanRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		err := fmt.Errorf("GetInstanceProcAddress is nil")
		core.LogFatal(err.Error())
		return err
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		core.LogFatal("failed to initialize vk: %s", err)
		return err
	}

	vr.context.Allocator = nil
	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight
	vr.cachedFramebufferWidth = 0
	vr.cachedFramebufferHeight = 0

	// Setup Vulkan instance.
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Rampart Engine"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	// Obtain a list of required extensions. The generic surface extension is
	// always needed; the platform adds its windowing-system specific one.
	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
	}

	if vr.debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
		core.LogInfo("Required extensions:")
		for i := 0; i < len(requiredExtensions); i++ {
			core.LogInfo(requiredExtensions[i])
		}
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	// Validation layers. Only enabled on non-release builds.
	requiredValidationLayerNames := []string{}
	if vr.debug {
		core.LogInfo("Validation layers enabled. Enumerating...")
		requiredValidationLayerNames = []string{"VK_LAYER_KHRONOS_validation"}

		if runtime.GOOS == "darwin" {
			createInfo.Flags |= 1
		}

		var availableLayerCount uint32
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
			err := fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res))
			core.LogError(err.Error())
			return err
		}
		availableLayers := make([]vk.LayerProperties, availableLayerCount)
		if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
			err := fmt.Errorf("failed to enumerate instance layers: %s", VulkanResultString(res))
			core.LogError(err.Error())
			return err
		}

		// Verify all required layers are available.
		for i := range requiredValidationLayerNames {
			found := false
			for j := range availableLayers {
				availableLayers[j].Deref()
				endIdx := FindFirstZeroInByteArray(availableLayers[j].LayerName[:])
				if requiredValidationLayerNames[i] == vk.ToString(availableLayers[j].LayerName[:endIdx+1]) {
					found = true
					break
				}
			}
			if !found {
				err := fmt.Errorf("required validation layer is missing: %s", requiredValidationLayerNames[i])
				core.LogFatal(err.Error())
				return err
			}
		}
		core.LogInfo("All required validation layers are present.")
	}

	createInfo.EnabledLayerCount = uint32(len(requiredValidationLayerNames))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(requiredValidationLayerNames)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		err := fmt.Errorf("failed to create the Vulkan instance: %s", VulkanResultString(res))
		core.LogError(err.Error())
		return err
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		core.LogError(err.Error())
		return err
	}

	core.LogInfo("Vulkan instance created.")

	// Debugger
	if vr.debug {
		core.LogDebug("Creating Vulkan debugger...")
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: dbgCallbackFunc,
			PNext:       nil,
		}

		var dbg vk.DebugReportCallback
		if err := vk.Error(vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg)); err != nil {
			core.LogError("vk.CreateDebugReportCallback failed with %s", err)
			return err
		}
		vr.context.debugMessenger = dbg
		core.LogDebug("Vulkan debugger created.")
	}

	// Surface
	core.LogDebug("Creating Vulkan surface...")
	surface, err := vr.platform.Window.CreateWindowSurface(vr.context.Instance, nil)
	if err != nil {
		core.LogError("Vulkan surface creation failed.")
		return err
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	// Device creation
	if err := DeviceCreate(vr.context); err != nil {
		core.LogError("Failed to create device!")
		return err
	}

	// Swapchain
	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc

	// Sky-blue clear to match the castle scene.
	rp, err := RenderpassCreate(
		vr.context,
		0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight),
		0.69, 0.77, 0.87, 1.0,
		1.0,
		0)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	// Swapchain framebuffers.
	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(vr.context.Swapchain, vr.context.MainRenderpass); err != nil {
		return err
	}

	if err := vr.createCommandBuffers(); err != nil {
		return err
	}

	// Sync objects: one semaphore pair per ring slot, plus the fence timeline.
	maxFrames := int(vr.context.Swapchain.MaxFramesInFlight)
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, maxFrames)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, maxFrames)

	for i := 0; i < maxFrames; i++ {
		semaphoreCreateInfo := vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			err := fmt.Errorf("failed to create semaphore on image available")
			core.LogError(err.Error())
			return err
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			err := fmt.Errorf("failed to create semaphore on queue complete")
			core.LogError(err.Error())
			return err
		}
	}

	vr.timeline = NewFenceTimeline(int(vr.context.Swapchain.ImageCount) + renderer.RingDepth)
	vr.imagesInFlight = make([]uint64, vr.context.Swapchain.ImageCount)

	core.LogInfo("Vulkan renderer initialized successfully.")

	return nil
}

func (vr *VulkanRenderer) Shutdown() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Destroy in the opposite order of creation.
	if vr.wireframePipeline != nil {
		vr.wireframePipeline.Destroy(vr.context)
	}
	if vr.solidPipeline != nil {
		vr.solidPipeline.Destroy(vr.context)
	}
	if vr.vertexShader != nil {
		vr.vertexShader.Destroy(vr.context)
	}
	if vr.fragmentShader != nil {
		vr.fragmentShader.Destroy(vr.context)
	}
	if vr.table != nil {
		vr.table.Destroy(vr.context)
	}
	for _, arena := range vr.arenas {
		arena.Destroy(vr.context)
	}
	vr.arenas = nil

	if vr.vertexBuffer != nil {
		vr.vertexBuffer.Destroy(vr.context)
	}
	if vr.indexBuffer != nil {
		vr.indexBuffer.Destroy(vr.context)
	}

	if vr.timeline != nil {
		vr.timeline.Destroy(vr.context)
	}

	for i := 0; i < int(vr.context.Swapchain.MaxFramesInFlight); i++ {
		if vr.context.ImageAvailableSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(
				vr.context.Device.LogicalDevice,
				vr.context.ImageAvailableSemaphores[i],
				vr.context.Allocator)
			vr.context.ImageAvailableSemaphores[i] = vk.NullSemaphore
		}
		if vr.context.QueueCompleteSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(
				vr.context.Device.LogicalDevice,
				vr.context.QueueCompleteSemaphores[i],
				vr.context.Allocator)
			vr.context.QueueCompleteSemaphores[i] = vk.NullSemaphore
		}
	}
	vr.context.ImageAvailableSemaphores = nil
	vr.context.QueueCompleteSemaphores = nil

	// Command buffers
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		if vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.context.GraphicsCommandBuffers = nil

	// Framebuffers
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}

	vr.context.MainRenderpass.RenderpassDestroy(vr.context)
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	core.LogDebug("Destroying Vulkan surface...")
	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.debug {
		core.LogDebug("Destroying Vulkan debugger...")
		if vr.context.debugMessenger != vk.NullDebugReportCallback {
			vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
		}
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)

	return nil
}

func (vr *VulkanRenderer) Resized(width, height uint16) error {
	// Update the framebuffer size generation, a counter which indicates when
	// the framebuffer size has been updated.
	vr.cachedFramebufferWidth = uint32(width)
	vr.cachedFramebufferHeight = uint32(height)
	vr.context.FramebufferSizeGeneration++

	core.LogInfo("Vulkan renderer resized: w/h/gen: %d/%d/%d", width, height, vr.context.FramebufferSizeGeneration)
	return nil
}

func (vr *VulkanRenderer) UploadGeometry(vertices []renderer.Vertex, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return fmt.Errorf("geometry upload requires vertices and indices")
	}

	vertexBytes := unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(unsafe.Sizeof(vertices[0])))
	indexBytes := unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)

	vb, err := vr.uploadDeviceLocal(vertexBytes, vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
	if err != nil {
		return err
	}
	vr.vertexBuffer = vb

	ib, err := vr.uploadDeviceLocal(indexBytes, vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
	if err != nil {
		return err
	}
	vr.indexBuffer = ib

	core.LogInfo("Geometry uploaded: %d vertices, %d indices.", len(vertices), len(indices))
	return nil
}

// uploadDeviceLocal pushes data through a host-visible staging buffer into a
// new device-local buffer.
func (vr *VulkanRenderer) uploadDeviceLocal(data []byte, usage vk.BufferUsageFlags) (*VulkanBuffer, error) {
	size := vk.DeviceSize(len(data))

	staging, err := BufferCreate(
		vr.context,
		size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, err
	}
	defer staging.Destroy(vr.context)

	if err := staging.LoadData(vr.context, 0, data); err != nil {
		return nil, err
	}

	deviceLocal, err := BufferCreate(
		vr.context,
		size,
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return nil, err
	}

	if err := staging.CopyTo(vr.context, vr.context.Device.GraphicsCommandPool, vr.context.Device.GraphicsQueue, deviceLocal, size); err != nil {
		deviceLocal.Destroy(vr.context)
		return nil, err
	}

	return deviceLocal, nil
}

func (vr *VulkanRenderer) CreateFrameResources(layout renderer.HeapLayout) error {
	vr.layout = layout

	objectSize := vk.DeviceSize(unsafe.Sizeof(renderer.ObjectConstants{}))
	passSize := vk.DeviceSize(unsafe.Sizeof(renderer.PassConstants{}))

	vr.arenas = make([]*VulkanConstantArena, layout.RingDepth)
	for slot := uint32(0); slot < layout.RingDepth; slot++ {
		arena, err := NewConstantArena(vr.context, layout.ItemCount, objectSize, passSize)
		if err != nil {
			return err
		}
		vr.arenas[slot] = arena
	}

	table, err := NewConstantTable(vr.context, layout, vr.arenas)
	if err != nil {
		return err
	}
	vr.table = table

	// Shaders
	vertexShader, err := NewShaderModule(vr.context, vertexShaderPath, vk.ShaderStageVertexBit)
	if err != nil {
		return err
	}
	vr.vertexShader = vertexShader

	fragmentShader, err := NewShaderModule(vr.context, fragmentShaderPath, vk.ShaderStageFragmentBit)
	if err != nil {
		return err
	}
	vr.fragmentShader = fragmentShader

	// Pipelines: one solid, one wireframe, sharing everything but the
	// rasterizer fill mode. Set 0 carries pass constants, set 1 the object
	// constants.
	viewport := vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(vr.context.FramebufferWidth),
		Height:   float32(vr.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{
			Width:  vr.context.FramebufferWidth,
			Height: vr.context.FramebufferHeight,
		},
	}

	attributes := []vk.VertexInputAttributeDescription{
		{
			Location: 0,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   0,
		},
		{
			Location: 1,
			Binding:  0,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(renderer.Vertex{}.Color)),
		},
	}

	config := &VulkanPipelineConfig{
		Renderpass: vr.context.MainRenderpass,
		Stride:     uint32(unsafe.Sizeof(renderer.Vertex{})),
		Attributes: attributes,
		DescriptorSetLayouts: []vk.DescriptorSetLayout{
			vr.table.SetLayout,
			vr.table.SetLayout,
		},
		Stages: []vk.PipelineShaderStageCreateInfo{
			vr.vertexShader.ShaderStageCreateInfo,
			vr.fragmentShader.ShaderStageCreateInfo,
		},
		Viewport:    viewport,
		Scissor:     scissor,
		IsWireframe: false,
	}

	solid, err := NewGraphicsPipeline(vr.context, config)
	if err != nil {
		return err
	}
	vr.solidPipeline = solid

	config.IsWireframe = true
	wireframe, err := NewGraphicsPipeline(vr.context, config)
	if err != nil {
		return err
	}
	vr.wireframePipeline = wireframe

	core.LogInfo("Frame resources created: %d ring slots, %d item slots.", layout.RingDepth, layout.ItemCount)
	return nil
}

func (vr *VulkanRenderer) WriteObjectConstants(ringSlot, itemSlot uint32, data renderer.ObjectConstants) {
	vr.arenas[ringSlot].WriteObject(itemSlot, structBytes(unsafe.Pointer(&data), unsafe.Sizeof(data)))
}

func (vr *VulkanRenderer) WritePassConstants(ringSlot uint32, data renderer.PassConstants) {
	vr.arenas[ringSlot].WritePass(structBytes(unsafe.Pointer(&data), unsafe.Sizeof(data)))
}

func (vr *VulkanRenderer) FenceCompletedValue() uint64 {
	return vr.timeline.CompletedValue(vr.context)
}

func (vr *VulkanRenderer) FenceWait(value uint64) error {
	return vr.timeline.WaitFor(vr.context, value)
}

func (vr *VulkanRenderer) FrameBegin(ringSlot uint32, wireframe bool) error {
	device := vr.context.Device

	// Mid-recreate: flush and tell the caller to skip the frame.
	if vr.context.RecreatingSwapchain {
		result := vk.DeviceWaitIdle(device.LogicalDevice)
		if !VulkanResultIsSuccess(result) {
			err := fmt.Errorf("FrameBegin vkDeviceWaitIdle (1) failed: '%s'", VulkanResultString(result))
			core.LogError(err.Error())
			return err
		}
		core.LogInfo("Recreating swapchain, booting.")
		return core.ErrSwapchainBooting
	}

	// A resize happened: rebuild the swapchain, then skip the frame.
	if vr.context.FramebufferSizeGeneration != vr.context.FramebufferSizeLastGeneration {
		result := vk.DeviceWaitIdle(device.LogicalDevice)
		if !VulkanResultIsSuccess(result) {
			err := fmt.Errorf("FrameBegin vkDeviceWaitIdle (2) failed: '%s'", VulkanResultString(result))
			core.LogError(err.Error())
			return err
		}

		// If the swapchain recreation failed (because, for example, the window
		// was minimized), boot out before unsetting the flag.
		if !vr.recreateSwapchain() {
			err := fmt.Errorf("failed to recreate the swapchain")
			core.LogError(err.Error())
			return err
		}

		core.LogInfo("Resized, booting.")
		return core.ErrSwapchainBooting
	}

	// Acquire the next image from the swapchain. The semaphore signaled when
	// this completes is waited on by the queue submission.
	imageIndex, ok := vr.context.Swapchain.SwapchainAcquireNextImageIndex(
		vr.context,
		^uint64(0),
		vr.context.ImageAvailableSemaphores[ringSlot],
		vk.NullFence)
	if !ok {
		vr.context.FramebufferSizeGeneration++
		return core.ErrSwapchainBooting
	}
	vr.context.ImageIndex = imageIndex

	// Make sure the previous frame that rendered into this image is done.
	if pending := vr.imagesInFlight[imageIndex]; pending != 0 {
		if err := vr.timeline.WaitFor(vr.context, pending); err != nil {
			return err
		}
	}

	// Begin recording commands.
	commandBuffer := vr.context.GraphicsCommandBuffers[imageIndex]
	commandBuffer.Reset()
	if err := commandBuffer.Begin(false, false, false); err != nil {
		return err
	}
	vr.recordingBuffer = commandBuffer
	vr.currentRingSlot = ringSlot

	// Dynamic state
	viewport := vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(vr.context.FramebufferWidth),
		Height:   float32(vr.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{
			Width:  vr.context.FramebufferWidth,
			Height: vr.context.FramebufferHeight,
		},
	}

	vk.CmdSetViewport(commandBuffer.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(commandBuffer.Handle, 0, 1, []vk.Rect2D{scissor})

	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)

	// Begin the render pass.
	vr.context.MainRenderpass.RenderpassBegin(commandBuffer, vr.context.Swapchain.Framebuffers[imageIndex].Handle)

	// Wireframe is re-evaluated per frame, so pick the pipeline here.
	vr.boundPipeline = vr.solidPipeline
	if wireframe {
		vr.boundPipeline = vr.wireframePipeline
	}
	vr.boundPipeline.Bind(commandBuffer, vk.PipelineBindPointGraphics)

	// Shared geometry buffers.
	vk.CmdBindVertexBuffers(commandBuffer.Handle, 0, 1, []vk.Buffer{vr.vertexBuffer.Handle}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(commandBuffer.Handle, vr.indexBuffer.Handle, 0, vk.IndexTypeUint32)

	// This slot's pass constants.
	vk.CmdBindDescriptorSets(
		commandBuffer.Handle,
		vk.PipelineBindPointGraphics,
		vr.boundPipeline.PipelineLayout,
		0,
		1,
		[]vk.DescriptorSet{vr.table.Sets[vr.layout.PassIndex(ringSlot)]},
		0,
		nil)

	return nil
}

func (vr *VulkanRenderer) BindObjectConstants(index uint32) {
	vk.CmdBindDescriptorSets(
		vr.recordingBuffer.Handle,
		vk.PipelineBindPointGraphics,
		vr.boundPipeline.PipelineLayout,
		1,
		1,
		[]vk.DescriptorSet{vr.table.Sets[index]},
		0,
		nil)
}

func (vr *VulkanRenderer) DrawIndexed(sub renderer.SubMesh) {
	vk.CmdDrawIndexed(vr.recordingBuffer.Handle, sub.IndexCount, 1, sub.StartIndexLocation, sub.BaseVertexLocation, 0)
}

func (vr *VulkanRenderer) FrameEnd(fenceValue uint64) error {
	commandBuffer := vr.recordingBuffer

	vr.context.MainRenderpass.RenderpassEnd(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return err
	}

	fence, err := vr.timeline.Acquire(vr.context)
	if err != nil {
		return err
	}

	// VK_PIPELINE_STAGE_COLOR_ATTACHMENT_OUTPUT_BIT prevents colour attachment
	// writes from executing until the acquired image is actually available.
	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vr.context.QueueCompleteSemaphores[vr.currentRingSlot]},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{vr.context.ImageAvailableSemaphores[vr.currentRingSlot]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}

	if result := vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, fence.Handle); result != vk.Success {
		err := fmt.Errorf("vkQueueSubmit failed with result: %s", VulkanResultString(result))
		core.LogError(err.Error())
		return err
	}

	if err := vr.timeline.Submitted(fence, fenceValue); err != nil {
		return err
	}
	vr.imagesInFlight[vr.context.ImageIndex] = fenceValue
	commandBuffer.UpdateSubmitted()

	// Give the image back to the swapchain.
	if !vr.context.Swapchain.SwapchainPresent(
		vr.context,
		vr.context.Device.PresentQueue,
		vr.context.QueueCompleteSemaphores[vr.currentRingSlot],
		vr.context.ImageIndex) {
		vr.context.FramebufferSizeGeneration++
	}

	vr.recordingBuffer = nil
	vr.boundPipeline = nil

	return nil
}

func (vr *VulkanRenderer) createCommandBuffers() error {
	if len(vr.context.GraphicsCommandBuffers) == 0 {
		vr.context.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, vr.context.Swapchain.ImageCount)
	}
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		if vr.context.GraphicsCommandBuffers[i] != nil && vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
		cb, err := NewVulkanCommandBuffer(vr.context, vr.context.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		vr.context.GraphicsCommandBuffers[i] = cb
	}

	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *VulkanRenderer) regenerateFramebuffers(swapchain *VulkanSwapchain, renderpass *VulkanRenderpass) error {
	for i := 0; i < int(swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{
			swapchain.Views[i],
			swapchain.DepthAttachment.View,
		}
		fb, err := FramebufferCreate(vr.context, renderpass, vr.context.FramebufferWidth, vr.context.FramebufferHeight, uint32(len(attachments)), attachments)
		if err != nil {
			core.LogError("failed to regenerate framebuffer %d", i)
			return err
		}
		swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *VulkanRenderer) recreateSwapchain() bool {
	// If already being recreated, do not try again.
	if vr.context.RecreatingSwapchain {
		core.LogDebug("recreateSwapchain called when already recreating. Booting.")
		return false
	}

	// Detect if the window is too small to be drawn to.
	if vr.cachedFramebufferWidth == 0 || vr.cachedFramebufferHeight == 0 {
		core.LogDebug("recreateSwapchain called when window is < 1 in a dimension. Booting.")
		return false
	}

	vr.context.RecreatingSwapchain = true

	// Wait for any operations to complete.
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Requery support
	DeviceQuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface, &vr.context.Device.SwapchainSupport)
	DeviceDetectDepthFormat(vr.context.Device)

	// Old per-image state goes with the old swapchain.
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		vr.context.Swapchain.Framebuffers[i].Destroy(vr.context)
	}
	vr.context.GraphicsCommandBuffers = nil

	sc, err := vr.context.Swapchain.SwapchainRecreate(vr.context, vr.cachedFramebufferWidth, vr.cachedFramebufferHeight)
	if err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}
	vr.context.Swapchain = sc

	// Sync the framebuffer size with the cached sizes.
	vr.context.FramebufferWidth = vr.cachedFramebufferWidth
	vr.context.FramebufferHeight = vr.cachedFramebufferHeight
	vr.context.MainRenderpass.X = 0
	vr.context.MainRenderpass.Y = 0
	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)
	vr.cachedFramebufferWidth = 0
	vr.cachedFramebufferHeight = 0

	// Update framebuffer size generation.
	vr.context.FramebufferSizeLastGeneration = vr.context.FramebufferSizeGeneration

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(vr.context.Swapchain, vr.context.MainRenderpass); err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}

	if err := vr.createCommandBuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}

	vr.imagesInFlight = make([]uint64, vr.context.Swapchain.ImageCount)

	// Clear the recreating flag.
	vr.context.RecreatingSwapchain = false

	return true
}

func structBytes(p unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(p), int(size))
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
