package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/metrics"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default $"+config.EnvPath+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Printf("mini-voxel: %v", err)
		// runs the bound cleanup hooks before exiting
		closer.Exit(1)
	}
	closer.Close()
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Apply()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		srv := metrics.StartServer(cfg.Metrics.Addr, m)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Printf("metrics: shutdown: %v", err)
			}
		})
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Render)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer window.Destroy()

	app, err := setupApp(cfg, m)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	defer app.Renderer.Dispose()

	setupInputHandlers(window, app)

	loop := NewGameLoop(window, app, m)
	loop.Run()
	log.Printf("window closed, exiting")
	return nil
}
