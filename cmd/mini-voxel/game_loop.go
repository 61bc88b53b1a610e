package main

import (
	"fmt"
	"time"

	"mini-voxel/internal/metrics"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GameLoop drives input, rendering and the title-bar statistics.
type GameLoop struct {
	window  *glfw.Window
	app     *App
	metrics *metrics.Metrics

	frames        int
	lastFPSCheck  time.Time
	lastFrameTime time.Time
}

func NewGameLoop(window *glfw.Window, app *App, m *metrics.Metrics) *GameLoop {
	now := time.Now()
	return &GameLoop{
		window:        window,
		app:           app,
		metrics:       m,
		lastFPSCheck:  now,
		lastFrameTime: now,
	}
}

// Run loops until the window is asked to close.
func (g *GameLoop) Run() {
	for !g.window.ShouldClose() {
		g.frame()
	}
}

func (g *GameLoop) frame() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(g.lastFrameTime).Seconds()
	g.lastFrameTime = now

	forward, strafe, up := handleActions(g.window, g.app.Input)
	g.app.Input.PostUpdate()
	g.app.Camera.Move(forward, strafe, up, dt)

	renderStart := time.Now()
	g.app.Renderer.Render(dt)
	renderDur := time.Since(renderStart)

	stats := g.app.Chunks.Stats()
	g.metrics.ObserveFrame(stats.Chunks, stats.Visible, stats.Commands, renderDur)

	func() {
		defer profiling.Track("glfw.SwapBuffers")()
		g.window.SwapBuffers()
	}()
	func() {
		defer profiling.Track("glfw.PollEvents")()
		glfw.PollEvents()
	}()

	g.frames++
	if time.Since(g.lastFPSCheck) >= time.Second {
		g.window.SetTitle(fmt.Sprintf("mini-voxel | FPS: %d | chunks: %d | visible: %d | draws: %d | %s",
			g.frames, stats.Chunks, stats.Visible, stats.Commands, profiling.TopN(3)))
		g.frames = 0
		g.lastFPSCheck = time.Now()
	}
}
