// Package app runs the terrain viewer: window, input, camera and scene.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/assets"
	"github.com/Faultbox/heightfield/internal/config"
	"github.com/Faultbox/heightfield/internal/engine/camera"
	"github.com/Faultbox/heightfield/internal/engine/debug"
	"github.com/Faultbox/heightfield/internal/engine/input"
	"github.com/Faultbox/heightfield/internal/engine/lighting"
	"github.com/Faultbox/heightfield/internal/engine/renderer"
	"github.com/Faultbox/heightfield/internal/engine/scene"
	"github.com/Faultbox/heightfield/internal/engine/terrain"
	"github.com/Faultbox/heightfield/internal/engine/window"
	"github.com/Faultbox/heightfield/internal/logger"
)

// Title is the window title.
const Title = "Heightfield"

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not fling the camera.
const maxFrameTime = 0.25

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	running bool
	window  *window.Window
	render  *renderer.Renderer
	input   *input.Input
	assets  *assets.Manager
	scene   *scene.Scene
	camera  controller

	screenshots    *debug.ScreenshotCapture
	wantScreenshot bool
	mouseCaptured  bool
}

// New creates the window and GL context, loads textures and the terrain, and
// places the camera. A heightmap that fails to load leaves an empty scene;
// running out of GPU memory is fatal.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("heightmap", cfg.Terrain.Heightmap),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.GetSize()
	a.render, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.assets = newAssetManager(cfg.Assets.Roots, a.log)

	sceneCfg, err := a.sceneConfig()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.scene, err = scene.New(sceneCfg, a.loadTextureSet())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if err := a.loadTerrain(); err != nil {
		a.Close()
		return nil, err
	}

	a.camera = a.newController()
	a.screenshots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix)
	a.setMouseCapture(true)

	a.log.Info("viewer initialized")
	return a, nil
}

// loadTerrain decodes the heightmap and builds the terrain. Only GPU memory
// exhaustion is returned; other failures leave the terrain empty.
func (a *App) loadTerrain() error {
	img, err := a.loadImage(a.cfg.Terrain.Heightmap)
	if err != nil {
		a.log.Error("heightmap unavailable, terrain will not be drawn", zap.Error(err))
		return nil
	}

	err = a.scene.LoadTerrain(img)
	switch {
	case err == nil:
		return nil
	case scene.IsOutOfMemory(err):
		return fmt.Errorf("terrain: %w", err)
	default:
		a.log.Error("terrain will not be drawn", zap.Error(err))
		return nil
	}
}

func (a *App) newController() controller {
	cc := a.cfg.Camera
	t := a.scene.Terrain()

	if cc.Mode == "orbit" {
		orbit := camera.NewOrbitCamera()
		orbit.Fov = cc.Zoom
		if min, max, ok := t.Bounds(); ok {
			orbit.FitToBounds(min, max)
		}
		return &orbitController{OrbitCamera: orbit}
	}

	fly := newFlyCamera(cc)
	c := &flyController{FlyCamera: fly, eyeHeight: cc.EyeHeight}
	if cc.FollowTerrain {
		c.follow = t.HeightAt
	}
	return c
}

// Run starts the main loop and returns when the window is closed or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		a.camera.update(a.input, float32(dt))
		a.frame()
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			a.window.SetTitle(fmt.Sprintf("%s - %.0f fps", Title, fps))
			a.log.Debug("fps", zap.Float64("fps", fps), zap.Duration("frame", time.Duration(dt*float64(time.Second))))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in window units; the viewport needs pixels.
			a.render.Resize(a.window.GetSize())
		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_F12:
				a.wantScreenshot = true
			case sdl.SCANCODE_TAB:
				a.setMouseCapture(!a.mouseCaptured)
			}
		case input.EventMouseDown:
			if !a.mouseCaptured && event.Button == sdl.BUTTON_LEFT {
				a.pick(event.MouseX, event.MouseY)
			}
		}
	}
}

// frame draws one frame and captures it when a screenshot was requested.
func (a *App) frame() {
	a.render.Begin()

	g := a.cfg.Graphics
	projection := camera.Projection(a.camera.FieldOfView(), a.render.Aspect(), g.Near, g.Far)
	a.scene.Render(a.camera, projection)

	a.render.End()

	if a.wantScreenshot {
		a.wantScreenshot = false
		w, h := a.render.Size()
		path, err := a.screenshots.CaptureFromPixels(debug.ReadBackBuffer(w, h), w, h)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("path", path))
		}
	}
}

func (a *App) setMouseCapture(on bool) {
	a.mouseCaptured = on
	a.window.CaptureMouse(on)
}

// Close releases GPU resources before the context goes away.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.render != nil {
		a.render.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
}

// sceneConfig maps viewer settings onto the scene, reading shader overrides.
func (a *App) sceneConfig() (scene.Config, error) {
	sc, err := sceneConfig(a.cfg)
	if err != nil {
		return sc, err
	}

	if p := a.cfg.Shaders.TerrainVertex; p != "" {
		data, err := a.assets.Load(p)
		if err != nil {
			return sc, fmt.Errorf("terrain vertex shader: %w", err)
		}
		sc.VertexSource = string(data)
	}
	if p := a.cfg.Shaders.TerrainFragment; p != "" {
		data, err := a.assets.Load(p)
		if err != nil {
			return sc, fmt.Errorf("terrain fragment shader: %w", err)
		}
		sc.FragmentSource = string(data)
	}
	return sc, nil
}

func sceneConfig(cfg *config.Config) (scene.Config, error) {
	normals, ok := terrain.ParseNormalMode(cfg.Terrain.Normals)
	if !ok {
		return scene.Config{}, fmt.Errorf("terrain: unknown normals mode %q", cfg.Terrain.Normals)
	}

	return scene.Config{
		Terrain: scene.TerrainConfig{
			HeightScale: cfg.Terrain.HeightScale,
			XZScale:     cfg.Terrain.XZScale,
			Origin:      mgl32.Vec3(cfg.Terrain.Origin),
			Options: terrain.Options{
				Normals:  normals,
				Tangents: cfg.Terrain.Tangents,
			},
		},
		Light: lightFromConfig(cfg.Light),
	}, nil
}

func lightFromConfig(lc config.LightConfig) lighting.Directional {
	if lc.UseSun {
		return lighting.Sun(lc.Longitude, lc.Latitude)
	}
	return lighting.NewDirectional(mgl32.Vec3(lc.Position))
}

func newFlyCamera(cc config.CameraConfig) *camera.FlyCamera {
	c := camera.NewFlyCamera(mgl32.Vec3(cc.Position), cc.Yaw, cc.Pitch)
	if cc.Speed > 0 {
		c.MovementSpeed = cc.Speed
	}
	if cc.Sensitivity > 0 {
		c.MouseSensitivity = cc.Sensitivity
	}
	if cc.Zoom > 0 {
		c.Zoom = cc.Zoom
	}
	return c
}
