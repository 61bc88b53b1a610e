package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/require"
)

func TestHandleKeyEventEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyF1, glfw.Press)
	require.True(t, im.IsActive(ActionToggleWireframe))
	require.True(t, im.JustPressed(ActionToggleWireframe))

	// repeat keeps the key held without a new edge
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyF1, glfw.Repeat)
	require.True(t, im.IsActive(ActionToggleWireframe))
	require.False(t, im.JustPressed(ActionToggleWireframe))

	im.HandleKeyEvent(glfw.KeyF1, glfw.Release)
	require.False(t, im.IsActive(ActionToggleWireframe))
	require.True(t, im.JustReleased(ActionToggleWireframe))
	im.PostUpdate()
	require.False(t, im.JustReleased(ActionToggleWireframe))
}

func TestAxisAndRebinding(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	require.Equal(t, float32(1), im.Axis(ActionMoveForward, ActionMoveBackward))
	im.HandleKeyEvent(glfw.KeyS, glfw.Press)
	require.Zero(t, im.Axis(ActionMoveForward, ActionMoveBackward))

	im.UnbindKey(glfw.KeyW)
	require.False(t, im.IsActive(ActionMoveForward), "unbinding a held key releases its action")
	require.True(t, im.JustReleased(ActionMoveForward))
	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	require.False(t, im.IsActive(ActionMoveForward), "unbound key no longer changes state")

	im.BindKey(glfw.KeyQ, ActionMoveDown)
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	require.Equal(t, float32(-1), im.Axis(ActionMoveUp, ActionMoveDown))
	require.False(t, im.IsActive(ActionCount))
}

func TestSharedActionStaysHeldUntilLastKeyReleased(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	require.True(t, im.JustPressed(ActionMoveForward))
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	require.True(t, im.IsActive(ActionMoveForward), "Up is still held")
	require.False(t, im.JustReleased(ActionMoveForward))
	require.False(t, im.JustPressed(ActionMoveForward))

	// a stray second release must not drop the other key
	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	require.True(t, im.IsActive(ActionMoveForward))

	im.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	require.False(t, im.IsActive(ActionMoveForward))
	require.True(t, im.JustReleased(ActionMoveForward))
}
