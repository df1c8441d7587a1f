package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-debugbox/internal/config"
	"github.com/Faultbox/midgard-debugbox/internal/engine/debug"
)

func TestModelTransformAtRest(t *testing.T) {
	m := config.ModelConfig{Scale: [3]float32{2, 3, 4}, Position: [3]float32{1, 0, -1}}
	got := modelTransform(m, 10)

	want := mgl32.Translate3D(1, 0, -1).Mul4(mgl32.Scale3D(2, 3, 4))
	assert.True(t, want.ApproxEqual(got), "got %v", got)
}

func TestModelTransformExtents(t *testing.T) {
	m := config.Default().Model

	// At t=0 there is no spin and the pulse is at its midpoint.
	b := debug.TransformedBounds(modelTransform(m, 0), debug.CubeCorners[:], debug.ExtentExact)
	assert.True(t, b.Size().ApproxEqualThreshold(mgl32.Vec3{2, 3, 4}, 1e-5), "size %v", b.Size())

	// A quarter period in, the pulse peaks.
	quarter := m.PulsePeriodS / 4
	m.SpinDegPerS = 0
	b = debug.TransformedBounds(modelTransform(m, quarter), debug.CubeCorners[:], debug.ExtentExact)
	k := 1 + m.PulseAmount
	assert.True(t, b.Size().ApproxEqualThreshold(mgl32.Vec3{2 * k, 3 * k, 4 * k}, 1e-4), "size %v", b.Size())
}

func TestExtentsChanged(t *testing.T) {
	a := mgl32.Vec3{1, 2, 3}
	assert.False(t, extentsChanged(a, mgl32.Vec3{1.01, 2, 3}, 0.05))
	assert.True(t, extentsChanged(a, mgl32.Vec3{1, 2, 3.1}, 0.05))
}
