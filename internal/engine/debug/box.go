package debug

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-debugbox/internal/engine/gfx"
)

// ErrNoContext is returned when the backend cannot allocate GPU objects,
// which happens when no rendering context is current.
var ErrNoContext = errors.New("no current rendering context")

// DefaultLineWidth is the wireframe line width used unless WithLineWidth is given.
const DefaultLineWidth float32 = 4

// DefaultViewPosition is the eye position uploaded to the viewPos uniform.
var DefaultViewPosition = mgl32.Vec3{0, 0, 20}

// ViewProjector supplies the camera matrices a Box renders with.
type ViewProjector interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// Box is a wireframe unit cube drawn around an object, together with the
// axis-aligned extents of that cube under the object's transform.
//
// Box owns its vertex array and buffers until Close. Like every GPU
// resource it must only be used from the thread owning the context.
type Box struct {
	gfx    gfx.Backend
	camera ViewProjector
	log    *zap.Logger

	vao uint32
	vbo uint32
	ebo uint32

	transform mgl32.Mat4
	bounds    Bounds
	width     float32
	height    float32
	length    float32

	visible   bool
	closed    bool
	lineWidth float32
	viewPos   mgl32.Vec3
	shader    *LineShader
	policy    ExtentPolicy
}

// Option configures a Box.
type Option func(*Box)

// WithLineWidth sets the wireframe line width.
func WithLineWidth(w float32) Option {
	return func(b *Box) { b.lineWidth = w }
}

// WithViewPosition sets the value uploaded to the viewPos uniform.
func WithViewPosition(p mgl32.Vec3) Option {
	return func(b *Box) { b.viewPos = p }
}

// WithShader sets the shader used when Draw is called with a nil handle.
func WithShader(sh *LineShader) Option {
	return func(b *Box) { b.shader = sh }
}

// WithExtentPolicy selects how extents are computed.
func WithExtentPolicy(p ExtentPolicy) Option {
	return func(b *Box) { b.policy = p }
}

// WithVisible sets the initial visibility. Boxes start visible.
func WithVisible(v bool) Option {
	return func(b *Box) { b.visible = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Box) { b.log = l }
}

// NewBox uploads the cube geometry and returns a visible box with an
// identity transform.
func NewBox(g gfx.Backend, cam ViewProjector, opts ...Option) (*Box, error) {
	b := &Box{
		gfx:       g,
		camera:    cam,
		log:       zap.NewNop(),
		transform: mgl32.Ident4(),
		visible:   true,
		lineWidth: DefaultLineWidth,
		viewPos:   DefaultViewPosition,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.init(); err != nil {
		b.release()
		return nil, fmt.Errorf("debug box: %w", err)
	}
	b.processPoints()

	b.log.Debug("debug box created",
		zap.Uint32("vao", b.vao),
		zap.Uint32("vbo", b.vbo),
		zap.Uint32("ebo", b.ebo),
		zap.Stringer("policy", b.policy),
	)
	return b, nil
}

func (b *Box) init() error {
	b.vao = b.gfx.GenVertexArray()
	b.vbo = b.gfx.GenBuffer()
	b.ebo = b.gfx.GenBuffer()
	if b.vao == 0 || b.vbo == 0 || b.ebo == 0 {
		return ErrNoContext
	}

	// Bind the VAO first so it captures the attribute layout and element buffer
	b.gfx.BindVertexArray(b.vao)

	b.gfx.BindBuffer(gfx.ArrayBuffer, b.vbo)
	b.gfx.BufferFloats(gfx.ArrayBuffer, cubeVertexData(), gfx.StaticDraw)

	// Position attribute (location = 0)
	b.gfx.EnableVertexAttribArray(0)
	b.gfx.VertexAttribPointer(0, 3, false, cornerStride, 0)

	b.gfx.BindBuffer(gfx.ElementArrayBuffer, b.ebo)
	b.gfx.BufferIndices(gfx.ElementArrayBuffer, cubeIndexData(), gfx.StaticDraw)

	// Unbind. The element buffer must stay bound: it is vertex array state.
	b.gfx.BindBuffer(gfx.ArrayBuffer, 0)
	b.gfx.BindVertexArray(0)
	return nil
}

// Update stores the object's transform and recomputes the extents.
func (b *Box) Update(transform mgl32.Mat4) {
	b.transform = transform
	b.processPoints()
}

// processPoints maps the cube corners through the current transform.
func (b *Box) processPoints() {
	b.bounds = TransformedBounds(b.transform, CubeCorners[:], b.policy)
	size := b.bounds.Size()
	b.width, b.height, b.length = size.X(), size.Y(), size.Z()
}

// Draw renders the wireframe with the given model transform. sh overrides
// the shader set with WithShader. Draw issues no commands while the box is
// hidden, closed, or has no shader. Program, line width and vertex array
// binding are restored on return.
func (b *Box) Draw(transform mgl32.Mat4, sh *LineShader) {
	if !b.visible || b.closed {
		return
	}
	if sh == nil {
		sh = b.shader
	}
	if sh == nil {
		return
	}

	restore := saveState(b.gfx)
	defer restore()

	b.gfx.UseProgram(sh.Program)

	modelview := b.camera.ViewMatrix().Mul4(transform)
	b.gfx.Uniform1i(sh.Light, 1)
	b.gfx.UniformMatrix4fv(sh.Projection, b.camera.ProjectionMatrix())
	b.gfx.UniformMatrix4fv(sh.Modelview, modelview)
	b.gfx.Uniform3f(sh.ViewPos, b.viewPos.X(), b.viewPos.Y(), b.viewPos.Z())

	b.gfx.BindVertexArray(b.vao)
	b.gfx.LineWidth(b.lineWidth)
	b.gfx.DrawElements(gfx.Lines, int32(CubeEdgeIndexCount), 0)
}

// Width returns the x extent of the last update.
func (b *Box) Width() float32 { return b.width }

// Height returns the y extent of the last update.
func (b *Box) Height() float32 { return b.height }

// Length returns the z extent of the last update.
func (b *Box) Length() float32 { return b.length }

// Bounds returns the min/max extrema of the last update.
func (b *Box) Bounds() Bounds { return b.bounds }

// Transform returns the transform passed to the last Update.
func (b *Box) Transform() mgl32.Mat4 { return b.transform }

// Toggle flips visibility.
func (b *Box) Toggle() { b.visible = !b.visible }

// SetVisible sets visibility.
func (b *Box) SetVisible(v bool) { b.visible = v }

// Visible reports whether Draw renders.
func (b *Box) Visible() bool { return b.visible }

// SetLineWidth changes the wireframe line width.
func (b *Box) SetLineWidth(w float32) { b.lineWidth = w }

// LineWidth returns the wireframe line width.
func (b *Box) LineWidth() float32 { return b.lineWidth }

// Close releases the GPU objects. It is safe to call more than once.
func (b *Box) Close() {
	if b.closed {
		return
	}
	b.release()
	b.closed = true
	b.log.Debug("debug box released")
}

func (b *Box) release() {
	if b.vao != 0 {
		b.gfx.DeleteVertexArray(b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		b.gfx.DeleteBuffer(b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		b.gfx.DeleteBuffer(b.ebo)
		b.ebo = 0
	}
}
