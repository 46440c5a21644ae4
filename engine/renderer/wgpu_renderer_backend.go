package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/termcad/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// minVertexCapacity is the smallest vertex buffer allocated, in bytes.
const minVertexCapacity uint64 = 64 * 1024

// Thread pinning hooks, replaced in tests to count lock/unlock pairs.
var (
	lockOSThread   = runtime.LockOSThread
	unlockOSThread = runtime.UnlockOSThread
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter

	// Frame state: one command encoder per frame, holding every pass and the readback copy.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder

	threadLocked bool
}

type wgpuRendererBackend interface {
	// Device returns the logical GPU device.
	Device() *wgpu.Device
	// Queue returns the device queue.
	Queue() *wgpu.Queue
	// Adapter returns the physical adapter the device was requested from.
	Adapter() *wgpu.Adapter

	// AdapterName describes the adapter as "<name> (<backend>)".
	//
	// Returns:
	//   - string: the adapter description
	AdapterName() string

	// RegisterRenderPipeline creates the shader module, bind group layouts, pipeline layout and render
	// pipeline described by p and stores them on p.
	//
	// Parameters:
	//   - p: the Pipeline to create, with its shader set
	//
	// Returns:
	//   - error: an error if the shader does not compile or a GPU object cannot be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// CreateRenderTarget creates a 2D color texture and its view.
	//
	// Parameters:
	//   - stagingData: label, size, format and usage of the texture
	//
	// Returns:
	//   - *common.RenderTarget: the created target
	//   - error: an error if texture or view creation fails
	CreateRenderTarget(stagingData common.TextureStagingData) (*common.RenderTarget, error)

	// CreateReadbackBuffer creates a mappable buffer that textures can be copied into.
	//
	// Parameters:
	//   - label: debug label
	//   - size: size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer
	//   - error: an error if buffer creation fails
	CreateReadbackBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// InitSampler creates a sampler and stores it on the provider at the binding.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the sampler on
	//   - binding: the binding index
	//   - samplerStagingData: sampler configuration; zero fields default to clamp-to-edge and linear
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// InitBindGroup creates the bind group for one group of a registered pipeline. Buffers declared by the
	// shader are created at their MinBindingSize unless already present; textures and samplers must be set
	// on the provider beforehand.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store buffers and the bind group on
	//   - p: the registered pipeline whose layout is used
	//   - group: the @group index
	//
	// Returns:
	//   - error: an error if a resource is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int) error

	// UploadVertices writes vertex data into the provider's vertex buffer, growing it when it is too small,
	// and sets the provider's vertex count.
	//
	// Parameters:
	//   - provider: the BindGroupProvider holding the vertex buffer
	//   - data: packed vertex bytes
	//   - stride: bytes per vertex
	//
	// Returns:
	//   - error: an error if a larger buffer cannot be created
	UploadVertices(provider bind_group_provider.BindGroupProvider, data []byte, stride uint64) error

	// WriteBuffers queues buffer writes. Writes to bindings without a buffer are skipped.
	//
	// Parameters:
	//   - writes: the writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame creates the command encoder that records every pass of a frame.
	//
	// Returns:
	//   - error: an error if a frame is already open or encoder creation fails
	BeginFrame() error

	// BeginPass starts a render pass that clears target to clear and stores the result.
	//
	// Parameters:
	//   - target: the color attachment view
	//   - clear: the clear color
	BeginPass(target *wgpu.TextureView, clear wgpu.Color)

	// Draw records a non-indexed draw in the current pass.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - vertexCount: number of vertices to draw
	//   - vertices: provider of the vertex buffer, or nil when the shader generates its vertices
	//   - bindGroups: providers bound to groups 0..n-1
	Draw(p pipeline.Pipeline, vertexCount uint32, vertices bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndPass ends the current render pass.
	EndPass()

	// CopyTargetToBuffer records a copy of a render target into a readback buffer with padded rows.
	//
	// Parameters:
	//   - target: the texture to copy
	//   - dst: the readback buffer
	//   - bytesPerRow: the padded row pitch, a multiple of 256
	CopyTargetToBuffer(target *common.RenderTarget, dst *wgpu.Buffer, bytesPerRow uint32)

	// EndFrame finishes and submits the frame's commands.
	//
	// Returns:
	//   - error: an error if the command buffer cannot be finished
	EndFrame() error

	// ReadBuffer maps a readback buffer, waits for the GPU, and returns a copy of its first size bytes.
	//
	// Parameters:
	//   - buf: the readback buffer
	//   - size: number of bytes to read
	//
	// Returns:
	//   - []byte: the copied bytes
	//   - error: an error if mapping fails
	ReadBuffer(buf *wgpu.Buffer, size uint64) ([]byte, error)

	// Release frees the device, adapter and instance.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend requests a headless adapter and device. The calling goroutine is locked to its
// OS thread until Release; every later call must come from the same goroutine.
func newWGPURendererBackend(forceFallbackAdapter bool) (wgpuRendererBackend, error) {
	lockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:           &sync.Mutex{},
		instance:     wgpu.CreateInstance(nil),
		threadLocked: true,
	}
	if w.instance == nil {
		unlockOSThread()
		return nil, errors.New("failed to create wgpu instance")
	}

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || a == nil {
		w.instance.Release()
		unlockOSThread()
		return nil, fmt.Errorf("No suitable GPU adapter found: %v", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "termcad device",
	})
	if err != nil {
		a.Release()
		w.instance.Release()
		unlockOSThread()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) AdapterName() string {
	info := b.adapter.GetInfo()
	return fmt.Sprintf("%s (%v)", info.Name, info.BackendType)
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	s := p.Shader()
	if s == nil {
		return errors.New("a shader must be set to create a render pipeline")
	}

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return err
	}
	defer module.Release()

	descriptors := s.BindGroupLayoutDescriptors()
	maxGroup := -1
	for g := range descriptors {
		maxGroup = max(maxGroup, g)
	}
	layouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g := 0; g <= maxGroup; g++ {
		desc := descriptors[g]
		desc.Label = fmt.Sprintf("%s group %d", p.PipelineKey(), g)
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			releaseLayouts(layouts)
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		layouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		releaseLayouts(layouts)
		return err
	}
	defer pipelineLayout.Release()

	target := wgpu.ColorTargetState{
		Format:    p.TargetFormat(),
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
			Buffers:    s.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		releaseLayouts(layouts)
		return err
	}

	p.SetRenderPipeline(created, layouts)
	return nil
}

func (b *wgpuRendererBackendImpl) CreateRenderTarget(stagingData common.TextureStagingData) (*common.RenderTarget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	format := common.Coalesce(stagingData.Format, wgpu.TextureFormatRGBA8Unorm)
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: stagingData.Label,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         stagingData.Usage,
	})
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &common.RenderTarget{
		Texture: tex,
		View:    view,
		Width:   stagingData.Width,
		Height:  stagingData.Height,
		Format:  format,
	}, nil
}

func (b *wgpuRendererBackendImpl) CreateReadbackBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
}

func (b *wgpuRendererBackendImpl) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(samplerStagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerStagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerStagingData.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   samplerStagingData.LodMinClamp,
		LodMaxClamp:   common.Coalesce(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerStagingData.MaxAnisotropy, 1),
	})
	if err != nil {
		return err
	}
	provider.SetSampler(binding, samp)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	layout := p.BindGroupLayout(group)
	if layout == nil {
		return fmt.Errorf("pipeline %s has no layout for group %d", p.PipelineKey(), group)
	}
	descriptor := p.Shader().BindGroupLayoutDescriptor(group)

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("texture binding %d has no texture view", binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			samp := provider.Sampler(binding)
			if samp == nil {
				return fmt.Errorf("sampler binding %d has no sampler", binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: samp}
		default:
			usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
			if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
				usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
			}
			buf := provider.Buffer(binding)
			if buf == nil {
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s binding %d", provider.Label(), binding),
					Size:  entry.Buffer.MinBindingSize,
					Usage: usage,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) UploadVertices(provider bind_group_provider.BindGroupProvider, data []byte, stride uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := uint64(len(data))
	if size > provider.VertexCapacity() {
		capacity := max(minVertexCapacity, provider.VertexCapacity()*2, size)
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  capacity,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		provider.SetVertexBuffer(buf, capacity)
	}
	if size > 0 {
		b.queue.WriteBuffer(provider.VertexBuffer(), 0, data)
	}
	provider.SetVertexCount(uint32(size / stride))
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder != nil {
		return errors.New("previous frame not yet submitted")
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.frameEncoder = encoder
	return nil
}

func (b *wgpuRendererBackendImpl) BeginPass(target *wgpu.TextureView, clear wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass = b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
}

func (b *wgpuRendererBackendImpl) Draw(
	p pipeline.Pipeline,
	vertexCount uint32,
	vertices bind_group_provider.BindGroupProvider,
	bindGroups []bind_group_provider.BindGroupProvider,
) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if vertexCount == 0 {
		return
	}
	b.framePass.SetPipeline(p.Pipeline())
	for i, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}
	if vertices != nil {
		b.framePass.SetVertexBuffer(0, vertices.VertexBuffer(), 0, wgpu.WholeSize)
	}
	b.framePass.Draw(vertexCount, 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) CopyTargetToBuffer(target *common.RenderTarget, dst *wgpu.Buffer, bytesPerRow uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frameEncoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  target.Texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: dst,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  bytesPerRow,
				RowsPerImage: target.Height,
			},
		},
		&wgpu.Extent3D{
			Width:              target.Width,
			Height:             target.Height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	encoder := b.frameEncoder
	b.frameEncoder = nil
	defer encoder.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()
	b.queue.Submit(commandBuffer)
	return nil
}

func (b *wgpuRendererBackendImpl) ReadBuffer(buf *wgpu.Buffer, size uint64) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var status wgpu.BufferMapAsyncStatus
	done := false
	err := buf.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
		done = true
	})
	if err != nil {
		return nil, err
	}
	b.device.Poll(true, nil)
	if !done {
		return nil, errors.New("buffer map did not complete")
	}
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("buffer map failed: %s", status.String())
	}

	out := make([]byte, size)
	copy(out, buf.GetMappedRange(0, uint(size)))
	buf.Unmap()
	return out, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	if b.threadLocked {
		b.threadLocked = false
		unlockOSThread()
	}
}

// releaseLayouts releases the non-nil layouts created so far.
func releaseLayouts(layouts []*wgpu.BindGroupLayout) {
	for _, l := range layouts {
		if l != nil {
			l.Release()
		}
	}
}
