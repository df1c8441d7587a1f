package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX = 0
	c.RotationY = 0
	c.Distance = 10

	pos := c.Position()
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.InDelta(t, 0, pos.Y(), 1e-5)
	assert.InDelta(t, 10, pos.Z(), 1e-5)

	// The view matrix maps the center onto the -Z axis at Distance.
	center := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -10, center.Z(), 1e-4)
}

func TestOrbitCameraClamps(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.RotationX)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.RotationX)

	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitCameraProjection(t *testing.T) {
	c := NewOrbitCamera()
	c.SetAspect(800, 600)
	assert.InDelta(t, 4.0/3.0, c.Aspect, 1e-6)

	c.SetAspect(800, 0)
	assert.InDelta(t, 4.0/3.0, c.Aspect, 1e-6, "zero height is ignored")

	assert.Equal(t, mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far), c.ProjectionMatrix())
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{3, 4, 1})

	assert.Equal(t, mgl32.Vec3{1, 2, 0}, c.Center)
	assert.Greater(t, c.Distance, float32(3))
}
