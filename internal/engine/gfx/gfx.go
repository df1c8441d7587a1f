// Package gfx defines the narrow graphics backend used by debug overlays.
//
// The interface mirrors the handful of OpenGL calls the overlays issue so
// that they can run against a real context (package glgfx) or a recording
// fake (package gfxtest).
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Target is a buffer binding point.
type Target int

const (
	ArrayBuffer Target = iota
	ElementArrayBuffer
)

func (t Target) String() string {
	switch t {
	case ArrayBuffer:
		return "ArrayBuffer"
	case ElementArrayBuffer:
		return "ElementArrayBuffer"
	default:
		return "Target(?)"
	}
}

// Usage is a buffer data usage hint.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
)

// Mode is a primitive topology.
type Mode int

const (
	Lines Mode = iota
	LineStrip
	Triangles
)

func (m Mode) String() string {
	switch m {
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	case Triangles:
		return "Triangles"
	default:
		return "Mode(?)"
	}
}

// State names a queryable piece of pipeline state.
type State int

const (
	CurrentProgram State = iota
	LineWidth
	VertexArrayBinding
	ArrayBufferBinding
)

// FloatSize is the byte size of a float32 vertex component.
const FloatSize = 4

// Backend issues graphics commands against the current context.
// All methods must be called from the thread that owns the context.
type Backend interface {
	GenVertexArray() uint32
	GenBuffer() uint32
	DeleteVertexArray(id uint32)
	DeleteBuffer(id uint32)

	BindVertexArray(id uint32)
	BindBuffer(target Target, id uint32)
	BufferFloats(target Target, data []float32, usage Usage)
	BufferIndices(target Target, data []uint32, usage Usage)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes a float attribute. stride and offset are in bytes.
	VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset uintptr)

	UseProgram(program uint32)
	// UniformLocation returns -1 when the uniform does not exist or is inactive.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m mgl32.Mat4)

	LineWidth(width float32)
	DrawArrays(mode Mode, first, count int32)
	// DrawElements draws count uint32 indices from the bound element buffer.
	DrawElements(mode Mode, count int32, offset uintptr)

	Integer(state State) int32
	Float(state State) float32
}
