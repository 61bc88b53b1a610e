package config

import "sync"

// RenderSettings holds the runtime render toggles
type RenderSettings struct {
	mu         sync.RWMutex
	wireframe  bool
	faceFilter bool
}

var globalRenderSettings = &RenderSettings{
	wireframe:  false,
	faceFilter: true,
}

// GetWireframe returns whether chunks are drawn as lines
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// SetWireframe sets the wireframe toggle
func SetWireframe(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = enabled
}

// ToggleWireframe flips the wireframe toggle and returns the new value
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// GetFaceFilter returns whether per-direction camera-side culling is active
func GetFaceFilter() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.faceFilter
}

// SetFaceFilter sets the camera-side culling toggle
func SetFaceFilter(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.faceFilter = enabled
}

// ToggleFaceFilter flips the camera-side culling toggle and returns the new value
func ToggleFaceFilter() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.faceFilter = !globalRenderSettings.faceFilter
	return globalRenderSettings.faceFilter
}
