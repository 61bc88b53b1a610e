package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "MINI_VOXEL_CONFIG"

// Config is the on-disk configuration.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Render   RenderConfig   `yaml:"render"`
	Geometry GeometryConfig `yaml:"geometry"`
	Meshing  MeshingConfig  `yaml:"meshing"`
	Textures TextureConfig  `yaml:"textures"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type WorldConfig struct {
	Seed    int64 `yaml:"seed"`
	ChunksX int   `yaml:"chunks_x"`
	ChunksY int   `yaml:"chunks_y"`
	ChunksZ int   `yaml:"chunks_z"`
}

type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FOV        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	VSync      bool    `yaml:"vsync"`
	Wireframe  bool    `yaml:"wireframe"`
	FaceFilter bool    `yaml:"face_filter"`
	ShadersDir string  `yaml:"shaders_dir"`
}

type GeometryConfig struct {
	BufferBytes uint32 `yaml:"buffer_bytes"`
	MaxCommands int    `yaml:"max_commands"`
}

type MeshingConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type TextureConfig struct {
	LayerSize int      `yaml:"layer_size"`
	Files     []string `yaml:"files"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		World: WorldConfig{Seed: 1337, ChunksX: 16, ChunksY: 2, ChunksZ: 16},
		Render: RenderConfig{
			Width:      1280,
			Height:     720,
			FOV:        70,
			Near:       0.1,
			Far:        2000,
			VSync:      true,
			FaceFilter: true,
			ShadersDir: "assets/shaders/chunks",
		},
		Geometry: GeometryConfig{BufferBytes: 256 << 20, MaxCommands: 1 << 16},
		Meshing:  MeshingConfig{Workers: 0, QueueSize: 256},
		Textures: TextureConfig{
			LayerSize: 16,
			Files: []string{
				"assets/textures/dirt.png",
				"assets/textures/cobblestone.png",
				"assets/textures/stone.png",
				"assets/textures/grass.png",
			},
		},
	}
}

// Load reads a YAML file over Defaults. With an empty path the EnvPath
// variable is used; when neither names a file the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.World.ChunksX <= 0 || c.World.ChunksY <= 0 || c.World.ChunksZ <= 0 {
		errs = append(errs, errors.New("world: chunk extents must be positive"))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, errors.New("render: window size must be positive"))
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		errs = append(errs, errors.New("render: need 0 < near < far"))
	}
	if c.Geometry.BufferBytes < 8 {
		errs = append(errs, errors.New("geometry: buffer_bytes too small"))
	}
	if c.Geometry.MaxCommands <= 0 {
		errs = append(errs, errors.New("geometry: max_commands must be positive"))
	}
	if c.Meshing.Workers < 0 || c.Meshing.QueueSize < 0 {
		errs = append(errs, errors.New("meshing: workers and queue_size must not be negative"))
	}
	if c.Textures.LayerSize <= 0 {
		errs = append(errs, errors.New("textures: layer_size must be positive"))
	}
	return errors.Join(errs...)
}

// Apply pushes the file's render toggles into the runtime settings.
func (c Config) Apply() {
	SetWireframe(c.Render.Wireframe)
	SetFaceFilter(c.Render.FaceFilter)
}
