package post

import "github.com/cogentcore/webgpu/wgpu"

// PostProcessorBuilderOption is a functional option applied to a post processor during construction via NewPostProcessor.
type PostProcessorBuilderOption func(*postProcessor)

// WithOutputFormat sets the texel format of the processed output texture. Defaults to RGBA8Unorm.
//
// Parameters:
//   - format: the output texture format
//
// Returns:
//   - PostProcessorBuilderOption: a function that applies the format option to a post processor
func WithOutputFormat(format wgpu.TextureFormat) PostProcessorBuilderOption {
	return func(p *postProcessor) {
		p.outputFormat = format
	}
}

// WithLabel sets the label prefix used for the processor's GPU objects.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - PostProcessorBuilderOption: a function that applies the label option to a post processor
func WithLabel(label string) PostProcessorBuilderOption {
	return func(p *postProcessor) {
		p.label = label
	}
}
