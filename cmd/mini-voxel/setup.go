package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics/camera"
	"mini-voxel/internal/graphics/geometry"
	"mini-voxel/internal/graphics/renderables/chunks"
	"mini-voxel/internal/graphics/renderables/crosshair"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

func setupWindow(rc config.RenderConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(rc.Width, rc.Height, "mini-voxel", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		return nil, err
	}
	if !glfw.ExtensionSupported("GL_ARB_shader_draw_parameters") {
		return nil, errors.New("GL_ARB_shader_draw_parameters is required")
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if rc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// App holds all the initialized components
type App struct {
	Renderer *renderer.Renderer
	Chunks   *chunks.Chunks
	Camera   *camera.Camera
	World    *world.World
	Input    *input.InputManager
}

func setupApp(cfg config.Config, m *metrics.Metrics) (*App, error) {
	cam := camera.NewCamera(cfg.Render.Width, cfg.Render.Height)
	cam.FOV = cfg.Render.FOV
	cam.NearPlane = cfg.Render.Near
	cam.FarPlane = cfg.Render.Far

	chunksRenderer := chunks.NewChunks(chunks.Options{
		ShadersDir:   cfg.Render.ShadersDir,
		TextureFiles: cfg.Textures.Files,
		LayerSize:    cfg.Textures.LayerSize,
		BufferBytes:  cfg.Geometry.BufferBytes,
		MaxCommands:  cfg.Geometry.MaxCommands,
		Metrics:      m,
	})

	r, err := renderer.NewRenderer(cam, chunksRenderer, crosshair.NewCrosshair())
	if err != nil {
		return nil, err
	}

	gen := world.NewGenerator(cfg.World.Seed, cfg.World.ChunksY)
	w := world.New(gen)

	if err := buildWorld(cfg, w, chunksRenderer); err != nil {
		r.Dispose()
		return nil, err
	}

	// Start above the middle of the generated area
	wx := float32(cfg.World.ChunksX*world.ChunkSize) / 2
	wz := float32(cfg.World.ChunksZ*world.ChunkSize) / 2
	cam.Position = mgl32.Vec3{wx, float32(gen.HeightAt(int(wx), int(wz)) + 12), wz}

	return &App{
		Renderer: r,
		Chunks:   chunksRenderer,
		Camera:   cam,
		World:    w,
		Input:    input.NewInputManager(),
	}, nil
}

// buildWorld generates and meshes every chunk in parallel, then uploads the
// meshes on the GL thread in position order so the buffer layout is stable.
func buildWorld(cfg config.Config, w *world.World, cr *chunks.Chunks) error {
	start := time.Now()
	positions := world.GridPositions(cfg.World.ChunksX, cfg.World.ChunksY, cfg.World.ChunksZ)

	workers := cfg.Meshing.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	closer.Bind(cancel)

	if err := w.Generate(ctx, positions, workers); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	pool := meshing.NewWorkerPool(workers, cfg.Meshing.QueueSize)
	defer pool.Shutdown()
	results, err := pool.MeshAll(ctx, w, positions)
	if err != nil {
		return fmt.Errorf("mesh: %w", err)
	}

	quads, uploaded := 0, 0
	for _, res := range results {
		if err := cr.Upload(res.Grid, res.Mesh); err != nil {
			if errors.Is(err, geometry.ErrAllocationExhausted) {
				// keep what fits; the rest of the world stays undrawn
				log.Printf("chunk %+v not uploaded: %v", res.Position, err)
				continue
			}
			return err
		}
		quads += res.Mesh.QuadCount()
		uploaded++
	}

	alloc := cr.Allocator()
	log.Printf("world: %d chunks, %d uploaded, %d quads, %d/%d geometry bytes, %d workers in %v",
		len(positions), uploaded, quads, alloc.Used(), alloc.Capacity(), pool.Workers(), time.Since(start).Round(time.Millisecond))
	return nil
}
