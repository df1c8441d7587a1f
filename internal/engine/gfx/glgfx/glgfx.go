// Package glgfx implements gfx.Backend on top of OpenGL 4.1 core.
package glgfx

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-debugbox/internal/engine/gfx"
)

// Backend forwards gfx calls to the current OpenGL context.
type Backend struct{}

var _ gfx.Backend = (*Backend)(nil)

// New loads the OpenGL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(log *zap.Logger) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if log != nil {
		log.Info("OpenGL initialized",
			zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
			zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		)
	}
	return &Backend{}, nil
}

func (*Backend) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*Backend) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*Backend) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (*Backend) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (*Backend) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (*Backend) BindBuffer(target gfx.Target, id uint32) {
	gl.BindBuffer(glTarget(target), id)
}

func (*Backend) BufferFloats(target gfx.Target, data []float32, usage gfx.Usage) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, glUsage(usage))
		return
	}
	gl.BufferData(glTarget(target), len(data)*4, unsafe.Pointer(&data[0]), glUsage(usage))
}

func (*Backend) BufferIndices(target gfx.Target, data []uint32, usage gfx.Usage) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, glUsage(usage))
		return
	}
	gl.BufferData(glTarget(target), len(data)*4, unsafe.Pointer(&data[0]), glUsage(usage))
}

func (*Backend) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (*Backend) VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, normalized, stride, offset)
}

func (*Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Backend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (*Backend) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (*Backend) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*Backend) LineWidth(width float32) {
	gl.LineWidth(width)
}

func (*Backend) DrawArrays(mode gfx.Mode, first, count int32) {
	gl.DrawArrays(glMode(mode), first, count)
}

func (*Backend) DrawElements(mode gfx.Mode, count int32, offset uintptr) {
	gl.DrawElementsWithOffset(glMode(mode), count, gl.UNSIGNED_INT, offset)
}

func (*Backend) Integer(state gfx.State) int32 {
	var v int32
	gl.GetIntegerv(glState(state), &v)
	return v
}

func (*Backend) Float(state gfx.State) float32 {
	var v float32
	gl.GetFloatv(glState(state), &v)
	return v
}

func glTarget(t gfx.Target) uint32 {
	switch t {
	case gfx.ElementArrayBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

func glUsage(u gfx.Usage) uint32 {
	switch u {
	case gfx.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gfx.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func glMode(m gfx.Mode) uint32 {
	switch m {
	case gfx.LineStrip:
		return gl.LINE_STRIP
	case gfx.Triangles:
		return gl.TRIANGLES
	default:
		return gl.LINES
	}
}

func glState(s gfx.State) uint32 {
	switch s {
	case gfx.LineWidth:
		return gl.LINE_WIDTH
	case gfx.VertexArrayBinding:
		return gl.VERTEX_ARRAY_BINDING
	case gfx.ArrayBufferBinding:
		return gl.ARRAY_BUFFER_BINDING
	default:
		return gl.CURRENT_PROGRAM
	}
}

// ReadPixels reads the RGBA contents of the default framebuffer, bottom row first.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

// Viewport sets the viewport to the full drawable.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears color and depth with the given color.
func Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// EnableDepthTest turns on depth testing with GL_LESS.
func EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}
