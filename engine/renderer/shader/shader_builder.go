package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithVisibility sets the shader stages every parsed binding is visible to.
// Defaults to both the vertex and the fragment stage.
//
// Parameters:
//   - stage: the stage flags applied to each bind group layout entry
//
// Returns:
//   - ShaderBuilderOption: a function that sets the binding visibility
func WithVisibility(stage wgpu.ShaderStage) ShaderBuilderOption {
	return func(s *shader) {
		s.visibility = stage
	}
}
