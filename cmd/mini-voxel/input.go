package main

import (
	"log"

	"mini-voxel/internal/config"
	"mini-voxel/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, app *App) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		app.Camera.HandleMouseMovement(xpos, ypos)
	})

	app.Input.SetKeyCallback(window)

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.Renderer.UpdateViewport(fbWidth, fbHeight)
	})
}

// handleActions applies this frame's toggles and returns the movement axes.
func handleActions(window *glfw.Window, im *input.InputManager) (forward, strafe, up float32) {
	if im.JustPressed(input.ActionQuit) {
		window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		log.Printf("wireframe: %v", config.ToggleWireframe())
	}
	if im.JustPressed(input.ActionToggleFaceFilter) {
		log.Printf("face filter: %v", config.ToggleFaceFilter())
	}
	forward = im.Axis(input.ActionMoveForward, input.ActionMoveBackward)
	strafe = im.Axis(input.ActionMoveRight, input.ActionMoveLeft)
	up = im.Axis(input.ActionMoveUp, input.ActionMoveDown)
	return forward, strafe, up
}
