package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoVertexEntry is returned when the source has no @vertex function.
	ErrNoVertexEntry = errors.New("no @vertex entry point")

	// ErrNoFragmentEntry is returned when the source has no @fragment function.
	ErrNoFragmentEntry = errors.New("no @fragment entry point")
)

// shader is the implementation of the Shader interface.
// It holds the parsed metadata the renderer needs to build a render pipeline and its bind groups.
type shader struct {
	key    string
	source string
	module *wgpu.ShaderModuleDescriptor

	visibility     wgpu.ShaderStage
	vertexEntry    string
	fragmentEntry  string
	vertexLayouts  []wgpu.VertexBufferLayout
	bindGroups     map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarName map[int]map[int]string
}

// Shader is a WGSL module holding both the vertex and the fragment stage of one render pass.
// Vertex buffer layouts and bind group layouts are parsed from the source when the Shader is created.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Module returns the shader module descriptor built from the source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point name
	FragmentEntryPoint() string

	// VertexLayouts returns one vertex buffer layout per vertex input struct, in source order.
	// A shader that generates its vertices from @builtin(vertex_index) has none.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the parsed vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves every parsed bind group layout descriptor keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if nothing is declared there
	BindingVarName(group, binding int) string

	// BindingFromVarName retrieves the binding index of a named variable in a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindingFromVarName(group int, varName string) (int, bool)
}

var _ Shader = &shader{}

// NewShader parses a WGSL source holding a @vertex and a @fragment function.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the WGSL source code
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if an entry point is missing or a vertex input uses an unsupported type
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:        key,
		source:     source,
		visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	for _, opt := range options {
		opt(s)
	}

	cleaned := stripComments(source)
	s.vertexEntry = parseEntryPoint(cleaned, vertexEntryRegex)
	if s.vertexEntry == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrNoVertexEntry)
	}
	s.fragmentEntry = parseEntryPoint(cleaned, fragmentEntryRegex)
	if s.fragmentEntry == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrNoFragmentEntry)
	}

	structs := parseStructBlocks(cleaned)
	layouts, err := parseVertexLayouts(structs)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.vertexLayouts = layouts
	s.bindGroups, s.bindingVarName = parseBindGroupLayouts(cleaned, structs, s.visibility)

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroups[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroups
}

func (s *shader) BindingVarName(group, binding int) string {
	return s.bindingVarName[group][binding]
}

func (s *shader) BindingFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarName[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}
