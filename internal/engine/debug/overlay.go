package debug

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-debugbox/internal/engine/gfx"
)

// Overlay owns a set of named boxes that share a backend, camera and shader.
// Each box keeps the transform of its last Update and is drawn with it.
type Overlay struct {
	gfx    gfx.Backend
	camera ViewProjector
	shader *LineShader
	log    *zap.Logger
	opts   []Option

	boxes   map[string]*Box
	visible bool
}

// NewOverlay creates an empty overlay. opts are applied to every box it creates.
func NewOverlay(g gfx.Backend, cam ViewProjector, sh *LineShader, log *zap.Logger, opts ...Option) *Overlay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Overlay{
		gfx:     g,
		camera:  cam,
		shader:  sh,
		log:     log,
		opts:    opts,
		boxes:   make(map[string]*Box),
		visible: true,
	}
}

// Add creates a box under name.
func (o *Overlay) Add(name string, opts ...Option) (*Box, error) {
	if _, ok := o.boxes[name]; ok {
		return nil, fmt.Errorf("debug box %q already exists", name)
	}
	all := append([]Option{
		WithShader(o.shader),
		WithLogger(o.log.With(zap.String("box", name))),
	}, o.opts...)
	all = append(all, opts...)

	b, err := NewBox(o.gfx, o.camera, all...)
	if err != nil {
		return nil, fmt.Errorf("adding %q: %w", name, err)
	}
	o.boxes[name] = b
	return b, nil
}

// Get returns the box registered under name.
func (o *Overlay) Get(name string) (*Box, bool) {
	b, ok := o.boxes[name]
	return b, ok
}

// Update forwards a transform to the named box.
func (o *Overlay) Update(name string, transform mgl32.Mat4) bool {
	b, ok := o.boxes[name]
	if ok {
		b.Update(transform)
	}
	return ok
}

// Toggle flips visibility of the whole overlay.
func (o *Overlay) Toggle() {
	o.visible = !o.visible
}

// SetVisible shows or hides the whole overlay.
func (o *Overlay) SetVisible(v bool) {
	o.visible = v
}

// Visible reports whether DrawAll renders anything.
func (o *Overlay) Visible() bool { return o.visible }

// SetLineWidth applies w to every box.
func (o *Overlay) SetLineWidth(w float32) {
	for _, b := range o.boxes {
		b.SetLineWidth(w)
	}
}

// Names returns box names in sorted order.
func (o *Overlay) Names() []string {
	names := make([]string, 0, len(o.boxes))
	for name := range o.boxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DrawAll draws every visible box with its last transform, in name order.
func (o *Overlay) DrawAll() {
	if !o.visible {
		return
	}
	for _, name := range o.Names() {
		b := o.boxes[name]
		b.Draw(b.Transform(), nil)
	}
}

// Remove closes and forgets the named box.
func (o *Overlay) Remove(name string) {
	if b, ok := o.boxes[name]; ok {
		b.Close()
		delete(o.boxes, name)
	}
}

// Close releases every box.
func (o *Overlay) Close() {
	for name, b := range o.boxes {
		b.Close()
		delete(o.boxes, name)
	}
}
