package viewer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-debugbox/internal/config"
)

// modelTransform returns the demo object's transform t seconds in:
// translate * spin about Y * pulsing scale.
func modelTransform(m config.ModelConfig, t float32) mgl32.Mat4 {
	angle := mgl32.DegToRad(m.SpinDegPerS * t)

	pulse := float32(1)
	if m.PulsePeriodS > 0 {
		pulse += m.PulseAmount * math32.Sin(2*math32.Pi*t/m.PulsePeriodS)
	}

	scale := mgl32.Scale3D(m.Scale[0]*pulse, m.Scale[1]*pulse, m.Scale[2]*pulse)
	spin := mgl32.HomogRotate3DY(angle)
	move := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	return move.Mul4(spin).Mul4(scale)
}

// extentsChanged reports whether two sizes differ by more than eps on any axis.
func extentsChanged(a, b mgl32.Vec3, eps float32) bool {
	for i := 0; i < 3; i++ {
		if math32.Abs(a[i]-b[i]) > eps {
			return true
		}
	}
	return false
}
