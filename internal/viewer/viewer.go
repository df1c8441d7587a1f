// Package viewer runs the debug box demo: a window, an orbit camera and an
// overlay that outlines an animated object.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-debugbox/internal/config"
	"github.com/Faultbox/midgard-debugbox/internal/engine/camera"
	"github.com/Faultbox/midgard-debugbox/internal/engine/debug"
	"github.com/Faultbox/midgard-debugbox/internal/engine/gfx/glgfx"
	"github.com/Faultbox/midgard-debugbox/internal/engine/input"
	"github.com/Faultbox/midgard-debugbox/internal/engine/shader"
	"github.com/Faultbox/midgard-debugbox/internal/engine/window"
	"github.com/Faultbox/midgard-debugbox/internal/logger"
)

// modelBox is the overlay entry outlining the demo object.
const modelBox = "model"

// extentLogEpsilon is the size change below which extents are not logged.
const extentLogEpsilon = 0.05

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window  *window.Window
	gfx     *glgfx.Backend
	camera  *camera.OrbitCamera
	input   *input.Input
	program uint32
	overlay *debug.Overlay
	shots   *debug.Screenshots
	watcher *config.Watcher

	toggleKey sdl.Scancode
	shotKey   sdl.Scancode

	lastSize mgl32.Vec3
}

// New creates the window, GL resources and overlay. configPath, when set,
// is watched for live changes.
func New(cfg *config.Config, configPath string) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	policy, err := debug.ParseExtentPolicy(cfg.DebugBox.ExtentPolicy)
	if err != nil {
		return nil, err
	}
	if v.toggleKey, err = input.ParseKey(cfg.DebugBox.ToggleKey); err != nil {
		return nil, fmt.Errorf("debug_box.toggle_key: %w", err)
	}
	if v.shotKey, err = input.ParseKey(cfg.DebugBox.ScreenshotKey); err != nil {
		return nil, fmt.Errorf("debug_box.screenshot_key: %w", err)
	}

	// Window first: everything below needs its OpenGL context
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if v.gfx, err = glgfx.New(logger.Named("gl")); err != nil {
		v.Close()
		return nil, err
	}
	glgfx.EnableDepthTest()

	if v.program, err = shader.CompileLineProgram(); err != nil {
		v.Close()
		return nil, err
	}

	v.camera = camera.NewOrbitCamera()
	v.camera.Distance = cfg.Camera.Distance
	v.camera.FovY = mgl32.DegToRad(cfg.Camera.FOVDegrees)
	v.camera.Near = cfg.Camera.Near
	v.camera.Far = cfg.Camera.Far
	v.camera.SetAspect(v.window.Size())

	sh := debug.ResolveLineShader(v.gfx, v.program, logger.Named("shader"))
	v.overlay = debug.NewOverlay(v.gfx, v.camera, sh, logger.Named("debugbox"),
		debug.WithLineWidth(cfg.DebugBox.LineWidth),
		debug.WithViewPosition(mgl32.Vec3(cfg.DebugBox.ViewPosition)),
		debug.WithExtentPolicy(policy),
	)
	if _, err := v.overlay.Add(modelBox); err != nil {
		v.Close()
		return nil, err
	}
	v.overlay.SetVisible(cfg.DebugBox.Enabled)

	v.input = input.New()
	v.shots = debug.NewScreenshots(cfg.DebugBox.ScreenshotDir, "debugbox")

	if configPath != "" {
		if v.watcher, err = config.Watch(configPath); err != nil {
			v.log.Warn("config hot reload disabled", zap.String("path", configPath), zap.Error(err))
		}
	}

	v.log.Info("viewer initialized", zap.Stringer("extent_policy", policy))
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.pollConfig()

		t := float32(time.Since(start).Seconds())
		v.update(t)
		v.render()
		if v.input.IsKeyPressed(v.shotKey) {
			v.screenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			v.window.SetTitle(fmt.Sprintf("%s - %d FPS", v.cfg.Window.Title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			glgfx.Viewport(event.Width, event.Height)
			v.camera.SetAspect(event.Width, event.Height)
		case input.EventMouseDrag:
			v.camera.HandleDrag(event.DX, event.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.DY)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F:
				v.frameModel()
			case v.toggleKey:
				v.toggleOverlay()
			}
		}
	}
}

// toggleOverlay flips the flag that config and --hide-box also drive.
func (v *Viewer) toggleOverlay() {
	v.overlay.Toggle()
	v.log.Info("debug overlay toggled", zap.Bool("visible", v.overlay.Visible()))
}

// frameModel points the camera at the model. Framing always uses exact
// bounds; legacy extents can keep their sentinel values.
func (v *Viewer) frameModel() {
	box, ok := v.overlay.Get(modelBox)
	if !ok {
		return
	}
	b := debug.TransformedBounds(box.Transform(), debug.CubeCorners[:], debug.ExtentExact)
	v.camera.FitToBounds(b.Min, b.Max)
}

// pollConfig applies reloaded settings without blocking the frame.
func (v *Viewer) pollConfig() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-v.watcher.Changes:
		if !ok {
			v.watcher = nil
			return
		}
		v.applyLive(cfg)
	case err, ok := <-v.watcher.Errors:
		if ok {
			v.log.Warn("config reload failed", zap.Error(err))
		}
	default:
	}
}

func (v *Viewer) applyLive(cfg *config.Config) {
	v.overlay.SetLineWidth(cfg.DebugBox.LineWidth)
	v.overlay.SetVisible(cfg.DebugBox.Enabled)
	v.cfg.Model = cfg.Model
	v.log.Info("config reloaded",
		zap.Bool("box_enabled", cfg.DebugBox.Enabled),
		zap.Float32("line_width", cfg.DebugBox.LineWidth),
	)
}

func (v *Viewer) update(t float32) {
	v.overlay.Update(modelBox, modelTransform(v.cfg.Model, t))

	box, _ := v.overlay.Get(modelBox)
	size := mgl32.Vec3{box.Width(), box.Height(), box.Length()}
	if extentsChanged(size, v.lastSize, extentLogEpsilon) {
		v.log.Debug("extents changed",
			zap.Float32("width", size.X()),
			zap.Float32("height", size.Y()),
			zap.Float32("length", size.Z()),
			zap.Stringer("bounds", box.Bounds()),
		)
		v.lastSize = size
	}
}

func (v *Viewer) render() {
	glgfx.Clear(0.1, 0.1, 0.15, 1.0)
	v.overlay.DrawAll()
}

func (v *Viewer) screenshot() {
	w, h := v.window.Size()
	path, err := v.shots.SaveRGBA(glgfx.ReadPixels(w, h), w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		_ = v.watcher.Close()
	}
	if v.overlay != nil {
		v.overlay.Close()
	}
	shader.Delete(v.program)
	if v.window != nil {
		v.window.Close()
	}
}
