package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackendType selects the GPU backend implementation. BackendTypeWGPU is the default and only backend.
//
// Parameters:
//   - backendType: the backend to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend type option to a renderer
func WithBackendType(backendType RendererBackendType) RendererBuilderOption {
	return func(r *renderer) {
		r.backendType = backendType
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Useful on CI machines without a GPU.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithSupersample renders every frame at factor times the canvas size in each dimension.
// Frames come out at the larger size; callers downscale them to the canvas. Factors below 1 are treated as 1.
//
// Parameters:
//   - factor: the per-axis supersampling factor
//
// Returns:
//   - RendererBuilderOption: a function that applies the supersample option to a renderer
func WithSupersample(factor uint32) RendererBuilderOption {
	return func(r *renderer) {
		r.supersample = max(factor, 1)
	}
}
