package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/termcad/common"
)

var (
	// ErrGPUInit reports that no adapter, device or render target could be created.
	ErrGPUInit = errors.New("GPU initialization failed")

	// ErrShader reports that a shader module or pipeline failed to build.
	ErrShader = errors.New("Shader compilation failed")

	// ErrBuffer reports that a GPU buffer could not be created.
	ErrBuffer = errors.New("Buffer creation failed")

	// ErrCapture reports that a rendered frame could not be read back.
	ErrCapture = errors.New("Frame capture failed")
)

// renderError classifies err as a render failure under the sentinel kind.
func renderError(sentinel, err error) error {
	return common.Wrap(common.KindRender, fmt.Errorf("%w: %v", sentinel, err))
}
