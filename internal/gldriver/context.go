// Package gldriver runs the projection shader modules against a real
// OpenGL 4.1 core context: it opens a hidden SDL2 window, reports the
// driver strings shaderlib needs, compiles injected programs and uploads
// uniform sets.
package gldriver

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds context configuration.
type Config struct {
	Title  string
	Width  int
	Height int
}

// Context wraps a hidden SDL2 window and its OpenGL context.
type Context struct {
	window    *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger
}

// NewContext creates a hidden window with an OpenGL 4.1 core context and
// loads the GL function pointers.
func NewContext(cfg Config) (*Context, error) {
	c := &Context{log: logger.Named("gldriver")}

	c.log.Debug("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = 64, 64
	}

	var err error
	c.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	c.glContext, err = c.window.GLCreateContext()
	if err != nil {
		c.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		c.Close()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}

	c.log.Info("GL context created",
		zap.String("vendor", c.Vendor()),
		zap.String("renderer", c.Renderer()),
		zap.String("version", c.Version()),
		zap.String("glsl", c.ShadingLanguageVersion()),
	)
	return c, nil
}

// Close destroys the context and window and shuts SDL2 down.
func (c *Context) Close() {
	c.log.Debug("closing GL context")

	if c.glContext != nil {
		sdl.GLDeleteContext(c.glContext)
		c.glContext = nil
	}
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	sdl.Quit()
}

// Vendor returns GL_VENDOR.
func (c *Context) Vendor() string { return glString(gl.VENDOR) }

// Renderer returns GL_RENDERER.
func (c *Context) Renderer() string { return glString(gl.RENDERER) }

// Version returns GL_VERSION.
func (c *Context) Version() string { return glString(gl.VERSION) }

// ShadingLanguageVersion returns GL_SHADING_LANGUAGE_VERSION.
func (c *Context) ShadingLanguageVersion() string { return glString(gl.SHADING_LANGUAGE_VERSION) }

func glString(name uint32) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}
