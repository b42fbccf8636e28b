package window

import (
	"fmt"
	"runtime"

	"GopherSky/internal/behaviour"
	"GopherSky/internal/engine"
	"GopherSky/internal/logger"
	"GopherSky/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Gopher owns the window and drives the app: input, one App.Update, one render, per frame
type Gopher struct {
	Width  int32
	Height int32
	Title  string

	App          *engine.App
	Camera       *renderer.Camera
	CameraObject *behaviour.GameObject

	EnableCameraInput bool // Control whether camera processes keyboard/mouse input

	rendererAPI renderer.Render
	window      *glfw.Window
	onFrame     func(deltaTime float64) // Runs before App.Update each frame
}

func NewGopher(app *engine.App) *Gopher {
	logger.Log.Info("Gopher initializing...")
	return &Gopher{
		Width:             1024,
		Height:            768,
		Title:             "GopherSky",
		App:               app,
		rendererAPI:       renderer.NewOpenGLRenderer(app),
		EnableCameraInput: true,
	}
}

// SetOnFrame installs a per-frame callback, e.g. to animate the sun
func (gopher *Gopher) SetOnFrame(callback func(deltaTime float64)) {
	gopher.onFrame = callback
}

// Run opens the window and blocks until it is closed
func (gopher *Gopher) Run(x, y int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return fmt.Errorf("window: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return fmt.Errorf("window: %w", err)
	}
	gopher.window = win
	win.MakeContextCurrent()
	win.SetPos(x, y)
	SetDarkTitleBar(win)

	if err := gopher.rendererAPI.Init(gopher.Width, gopher.Height); err != nil {
		return err
	}
	defer gopher.rendererAPI.Cleanup()

	gopher.setupCamera()
	win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	win.SetCursorPosCallback(gopher.mouseCallback)

	gopher.renderLoop()
	return nil
}

// setupCamera registers a scene object for the fly camera and makes it the active camera
func (gopher *Gopher) setupCamera() {
	gopher.Camera = renderer.NewDefaultCamera(gopher.Width, gopher.Height)
	if gopher.CameraObject == nil {
		obj := behaviour.NewGameObject("Main Camera")
		obj.AddComponent(behaviour.NewCameraComponent())
		gopher.App.Scene.RegisterGameObject(obj)
		gopher.CameraObject = obj
	} else if comp, ok := behaviour.ComponentOf[*behaviour.CameraComponent](gopher.CameraObject); ok {
		gopher.Camera = renderer.NewCameraFromComponent(comp, gopher.Width, gopher.Height)
		gopher.Camera.Position = gopher.CameraObject.Transform.Position
	}
	gopher.App.Scene.SetActiveCamera(gopher.CameraObject)
	gopher.Camera.Apply(gopher.CameraObject)
}

func (gopher *Gopher) renderLoop() {
	lastTime := glfw.GetTime()

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		w, h := gopher.window.GetFramebufferSize()
		if resized(gopher.Width, gopher.Height, w, h) {
			gopher.Width, gopher.Height = int32(w), int32(h)
			gopher.rendererAPI.UpdateViewport(gopher.Width, gopher.Height)
			gopher.Camera.SetAspectRatio(float32(w) / float32(h))
		}

		if gopher.window.GetKey(glfw.KeyEscape) == glfw.Press {
			gopher.window.SetShouldClose(true)
		}
		if gopher.EnableCameraInput {
			gopher.Camera.ProcessKeyboard(gopher.window, float32(deltaTime))
		}
		gopher.Camera.Apply(gopher.CameraObject)

		if gopher.onFrame != nil {
			gopher.onFrame(deltaTime)
		}
		gopher.App.Update()
		gopher.rendererAPI.Render(gopher.App, gopher.Camera)

		gopher.window.SwapBuffers()
		glfw.PollEvents()
	}
	logger.Log.Info("Window closed", zap.Uint64("frames", gopher.App.Frame()))
}

// resized reports a usable new framebuffer size. Minimised windows report zero.
func resized(width, height int32, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	return int32(w) != width || int32(h) != height
}

func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (gopher *Gopher) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

func (gopher *Gopher) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

// Mouse look while the right button is held
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if gopher.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		gopher.Camera.ProcessMousePosition(float32(xpos), float32(ypos))
	} else {
		gopher.Camera.ResetMouse()
	}
}
