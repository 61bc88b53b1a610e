package chunks

import "path/filepath"

const (
	MainVertShader = "main.vert"
	MainFragShader = "main.frag"

	// binding points shared with main.vert
	quadBinding    = 0
	textureUnit    = 0
	defaultShaders = "assets/shaders/chunks"
)

func shaderPaths(dir string) (string, string) {
	if dir == "" {
		dir = defaultShaders
	}
	return filepath.Join(dir, MainVertShader), filepath.Join(dir, MainFragShader)
}
