// Package gfxtest provides a recording gfx.Backend for tests.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-debugbox/internal/engine/gfx"
)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder is a fake backend that records calls and tracks the subset of
// pipeline state a real context would hold. It is not safe for concurrent
// use, same as a GL context.
type Recorder struct {
	// NoContext makes every Gen* call return 0, as a driver does without a
	// current context.
	NoContext bool

	calls []Call
	nextID uint32

	vertexArray  uint32
	buffers      map[gfx.Target]uint32
	elementOfVAO map[uint32]uint32
	program      uint32
	lineWidth    float32

	liveArrays  map[uint32]bool
	liveBuffers map[uint32]bool
	floats      map[uint32][]float32
	indices     map[uint32][]uint32
	attribs     map[uint32]Attrib

	programs map[uint32]map[string]int32
	uniforms map[int32]any
}

// Attrib is a recorded vertex attribute layout.
type Attrib struct {
	Enabled    bool
	Size       int32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32
}

var _ gfx.Backend = (*Recorder)(nil)

// New returns an empty recorder with line width 1, like a fresh context.
func New() *Recorder {
	return &Recorder{
		buffers:      make(map[gfx.Target]uint32),
		elementOfVAO: make(map[uint32]uint32),
		lineWidth:    1,
		liveArrays:   make(map[uint32]bool),
		liveBuffers:  make(map[uint32]bool),
		floats:       make(map[uint32][]float32),
		indices:      make(map[uint32][]uint32),
		attribs:      make(map[uint32]Attrib),
		programs:     make(map[uint32]map[string]int32),
		uniforms:     make(map[int32]any),
	}
}

// DefineProgram registers a linked program exposing the given active
// uniforms. Locations are assigned in argument order, starting at
// program*100 so that distinct programs never share locations.
func (r *Recorder) DefineProgram(program uint32, uniforms ...string) {
	locs := make(map[string]int32, len(uniforms))
	for i, name := range uniforms {
		locs[name] = int32(program)*100 + int32(i)
	}
	r.programs[program] = locs
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	return slices.Clone(r.calls)
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(name string) (Call, bool) {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// Reset forgets recorded calls but keeps the pipeline state.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

// Bound returns the buffer bound to target.
func (r *Recorder) Bound(target gfx.Target) uint32 {
	if target == gfx.ElementArrayBuffer {
		return r.elementOfVAO[r.vertexArray]
	}
	return r.buffers[target]
}

// BoundVertexArray returns the current vertex array binding.
func (r *Recorder) BoundVertexArray() uint32 { return r.vertexArray }

// ElementBufferOf returns the element buffer captured by a vertex array.
func (r *Recorder) ElementBufferOf(vao uint32) uint32 { return r.elementOfVAO[vao] }

// Program returns the active program.
func (r *Recorder) Program() uint32 { return r.program }

// LineWidthValue returns the current line width.
func (r *Recorder) LineWidthValue() float32 { return r.lineWidth }

// Live returns the number of vertex arrays and buffers not yet deleted.
func (r *Recorder) Live() int {
	return len(r.liveArrays) + len(r.liveBuffers)
}

// Floats returns the float data last uploaded into buffer id.
func (r *Recorder) Floats(id uint32) []float32 { return r.floats[id] }

// Indices returns the index data last uploaded into buffer id.
func (r *Recorder) Indices(id uint32) []uint32 { return r.indices[id] }

// AttribOf returns the layout recorded for attribute index on vao.
func (r *Recorder) AttribOf(vao, index uint32) Attrib {
	return r.attribs[vao<<8|index]
}

// Uniform returns the last value uploaded to location.
func (r *Recorder) Uniform(location int32) (any, bool) {
	v, ok := r.uniforms[location]
	return v, ok
}

func (r *Recorder) gen() uint32 {
	if r.NoContext {
		return 0
	}
	r.nextID++
	return r.nextID
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.gen()
	r.record("GenVertexArray", id)
	if id != 0 {
		r.liveArrays[id] = true
	}
	return id
}

func (r *Recorder) GenBuffer() uint32 {
	id := r.gen()
	r.record("GenBuffer", id)
	if id != 0 {
		r.liveBuffers[id] = true
	}
	return id
}

func (r *Recorder) DeleteVertexArray(id uint32) {
	r.record("DeleteVertexArray", id)
	delete(r.liveArrays, id)
	delete(r.elementOfVAO, id)
	if r.vertexArray == id {
		r.vertexArray = 0
	}
}

func (r *Recorder) DeleteBuffer(id uint32) {
	r.record("DeleteBuffer", id)
	delete(r.liveBuffers, id)
	delete(r.floats, id)
	delete(r.indices, id)
	for target, bound := range r.buffers {
		if bound == id {
			r.buffers[target] = 0
		}
	}
}

func (r *Recorder) BindVertexArray(id uint32) {
	r.record("BindVertexArray", id)
	r.vertexArray = id
}

func (r *Recorder) BindBuffer(target gfx.Target, id uint32) {
	r.record("BindBuffer", target, id)
	if target == gfx.ElementArrayBuffer {
		// Element buffer binding is vertex array state.
		r.elementOfVAO[r.vertexArray] = id
		return
	}
	r.buffers[target] = id
}

func (r *Recorder) BufferFloats(target gfx.Target, data []float32, usage gfx.Usage) {
	r.record("BufferFloats", target, len(data), usage)
	if id := r.Bound(target); id != 0 {
		r.floats[id] = slices.Clone(data)
	}
}

func (r *Recorder) BufferIndices(target gfx.Target, data []uint32, usage gfx.Usage) {
	r.record("BufferIndices", target, len(data), usage)
	if id := r.Bound(target); id != 0 {
		r.indices[id] = slices.Clone(data)
	}
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
	key := r.vertexArray<<8 | index
	a := r.attribs[key]
	a.Enabled = true
	r.attribs[key] = a
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, normalized, stride, offset)
	key := r.vertexArray<<8 | index
	a := r.attribs[key]
	a.Size, a.Normalized, a.Stride, a.Offset = size, normalized, stride, offset
	a.Buffer = r.buffers[gfx.ArrayBuffer]
	r.attribs[key] = a
}

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram", program)
	r.program = program
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation", program, name)
	if loc, ok := r.programs[program][name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) setUniform(location int32, v any) {
	if location < 0 {
		return
	}
	r.uniforms[location] = v
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.record("Uniform1i", location, v)
	r.setUniform(location, v)
}

func (r *Recorder) Uniform3f(location int32, x, y, z float32) {
	r.record("Uniform3f", location, x, y, z)
	r.setUniform(location, mgl32.Vec3{x, y, z})
}

func (r *Recorder) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	r.record("UniformMatrix4fv", location, m)
	r.setUniform(location, m)
}

func (r *Recorder) LineWidth(width float32) {
	r.record("LineWidth", width)
	r.lineWidth = width
}

func (r *Recorder) DrawArrays(mode gfx.Mode, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gfx.Mode, count int32, offset uintptr) {
	r.record("DrawElements", mode, count, offset)
}

func (r *Recorder) Integer(state gfx.State) int32 {
	r.record("Integer", state)
	return r.integer(state)
}

func (r *Recorder) integer(state gfx.State) int32 {
	switch state {
	case gfx.CurrentProgram:
		return int32(r.program)
	case gfx.VertexArrayBinding:
		return int32(r.vertexArray)
	case gfx.ArrayBufferBinding:
		return int32(r.buffers[gfx.ArrayBuffer])
	case gfx.LineWidth:
		return int32(r.lineWidth)
	}
	return 0
}

func (r *Recorder) Float(state gfx.State) float32 {
	r.record("Float", state)
	if state == gfx.LineWidth {
		return r.lineWidth
	}
	return float32(r.integer(state))
}
