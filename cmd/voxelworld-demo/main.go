// Command voxelworld-demo is a thin glfw+gl harness that drives the world
// facade: it opens a window, builds a world.Facade over a fresh seed, and
// calls Update/VisibleChunks once per frame so the whole C1-C13 pipeline
// runs end to end. Grounded on cmd/triangle/main.go's minimal glfw+gl
// bring-up and cmd/mini-mc/setup.go's window/context setup, intentionally
// not reusing cmd/mini-mc's full game loop: that loop is wired to the
// teacher's player/entity/inventory/UI layer, which sits outside the
// world subsystem this module implements.
package main

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/config"
	"github.com/dantero-ps/voxelworld/internal/decorate"
	"github.com/dantero-ps/voxelworld/internal/logging"
	"github.com/dantero-ps/voxelworld/internal/meshing"
	"github.com/dantero-ps/voxelworld/internal/rhi"
	"github.com/dantero-ps/voxelworld/internal/world"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	worldSeed    = 1337
)

func init() {
	runtime.LockOSThread()
}

// newTileResolver assigns a stable tile index to every distinct texture
// name the catalog references, in first-seen order. It stands in for a
// texture-atlas lookup, which this module does not include.
func newTileResolver(catalog *block.Catalog) meshing.TileResolver {
	index := make(map[string]float32)
	next := func(name string) float32 {
		if name == "" {
			return 0
		}
		if i, ok := index[name]; ok {
			return i
		}
		i := float32(len(index))
		index[name] = i
		return i
	}
	return func(id block.ID, face block.Face) float32 {
		def := catalog.Get(id)
		switch face {
		case block.FaceTop:
			return next(def.TextureTop)
		case block.FaceBottom:
			return next(def.TextureBot)
		default:
			return next(def.TextureSide)
		}
	}
}

func main() {
	defer logging.Sync()

	if err := glfw.Init(); err != nil {
		logging.L().Fatalf("glfw.Init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "voxelworld-demo", nil, nil)
	if err != nil {
		logging.L().Fatalf("glfw.CreateWindow: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		logging.L().Fatalf("gl.Init: %v", err)
	}

	config.SetSeed(worldSeed)
	tiles := newTileResolver(block.DefaultCatalog())
	gen := world.NewGeneratorFromConfig(decorate.DefaultOres)

	initialBuffer := rhi.NewBuffer(1<<20, rhi.DefaultVertexLayout)
	cfg := world.ConfigFromGlobal(runtime.NumCPU(), 256, 4, 4096, 1<<20)
	facade := world.NewFacade(cfg, tiles, initialBuffer, gen)
	defer facade.Shutdown()

	proj := mgl32.Perspective(mgl32.DegToRad(70), float32(windowWidth)/float32(windowHeight), 0.1, 2000)
	cameraPos := mgl32.Vec3{0, 80, 0}
	cameraFront := mgl32.Vec3{0, 0, -1}
	velocity := mgl32.Vec3{0, 0, 0}

	for !window.ShouldClose() {
		view := mgl32.LookAtV(cameraPos, cameraPos.Add(cameraFront), mgl32.Vec3{0, 1, 0})
		viewProj := proj.Mul4(view)

		facade.Update(cameraPos, velocity, viewProj)
		visible := facade.VisibleChunks(viewProj, cameraPos)

		gl.ClearColor(0.5, 0.7, 0.95, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		_ = visible // draw submission is left to a future shader/material pass

		window.SwapBuffers()
		glfw.PollEvents()
	}
}
