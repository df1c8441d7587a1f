package debug

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-debugbox/internal/engine/gfx"
)

// Uniform names the line shader is expected to expose.
const (
	UniformProjection = "projection"
	UniformModelview  = "modelview"
	UniformLight      = "light"
	UniformViewPos    = "viewPos"
)

// LineShader is a linked program plus the uniform locations Box.Draw
// uploads to. Locations are resolved once; a missing uniform stays -1 and
// uploads to it are ignored by the driver.
type LineShader struct {
	Program    uint32
	Projection int32
	Modelview  int32
	Light      int32
	ViewPos    int32
}

// ResolveLineShader looks up the line shader uniforms on program.
func ResolveLineShader(g gfx.Backend, program uint32, log *zap.Logger) *LineShader {
	if log == nil {
		log = zap.NewNop()
	}
	lookup := func(name string) int32 {
		loc := g.UniformLocation(program, name)
		if loc < 0 {
			log.Debug("uniform not active",
				zap.Uint32("program", program),
				zap.String("uniform", name),
			)
		}
		return loc
	}
	return &LineShader{
		Program:    program,
		Projection: lookup(UniformProjection),
		Modelview:  lookup(UniformModelview),
		Light:      lookup(UniformLight),
		ViewPos:    lookup(UniformViewPos),
	}
}
