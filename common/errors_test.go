package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(base))
	assert.Equal(t, 1, ExitCode(Wrap(KindInvalidScene, base)))
	assert.Equal(t, 2, ExitCode(Wrap(KindRender, base)))
	assert.Equal(t, 3, ExitCode(Wrap(KindIO, base)))
	assert.Equal(t, 4, ExitCode(Wrap(KindDependencyMissing, base)))

	wrapped := fmt.Errorf("rendering frame 3: %w", Wrap(KindRender, base))
	assert.Equal(t, 2, ExitCode(wrapped))
	assert.ErrorIs(t, wrapped, base)
}

func TestErrorMessage(t *testing.T) {
	err := Errorf(KindInvalidScene, "Element %d: %w", 2, errors.New("Text cannot be empty"))
	assert.Equal(t, "Invalid scene: Element 2: Text cannot be empty", err.Error())
	assert.Nil(t, Wrap(KindIO, nil))
	assert.Equal(t, KindInvalidScene, KindOf(err))
}
