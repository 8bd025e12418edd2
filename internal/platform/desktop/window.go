//go:build glfw

// Package desktop runs the game in a GLFW window on the OpenGL backend.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
	"github.com/vovakirdan/tile-breakout/internal/gfx/opengl"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// Window owns a GLFW window with a current OpenGL 3.3 core context.
type Window struct {
	win     *glfw.Window
	backend *opengl.Backend
	logger  *log.Logger
}

// Open creates the window and initializes GL on it. Call Close when done.
func Open(width, height int, title string, logger *log.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}
	win.MakeContextCurrent()

	backend, err := opengl.Init()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	fw, fh := win.GetFramebufferSize()
	backend.Viewport(fw, fh)

	return &Window{win: win, backend: backend, logger: logger}, nil
}

// Backend returns the GL backend bound to this window's context.
func (w *Window) Backend() *opengl.Backend { return w.backend }

// Run forwards key and framebuffer events to game and steps it once per
// frame until the window is closed or a frame fails. Escape closes the window.
func (w *Window) Run(game *breakout.Game) error {
	w.win.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
		// Repeat events keep the key down.
		if action == glfw.Repeat || key == glfw.KeyUnknown {
			return
		}
		if err := game.SetKey(int(key), action == glfw.Press); err != nil {
			w.logger.Warn("key ignored", "key", int(key), "error", err)
		}
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		game.Resize(width, height)
	})

	last := glfw.GetTime()
	for !w.win.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - last)
		last = now
		glfw.PollEvents()

		if err := game.Step(dt); err != nil {
			return err
		}
		w.win.SwapBuffers()
	}
	return nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
