package debug

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// extentSentinel seeds the legacy min/max before any point is seen.
const extentSentinel = 1000000

// Extent is a running min/max along one axis.
type Extent struct {
	Min, Max float32
}

// NewExtent returns an empty accumulator. The first Add sets both bounds.
func NewExtent() Extent {
	return Extent{Min: math32.Inf(1), Max: math32.Inf(-1)}
}

// Add folds v into the extent. Both bounds are checked independently.
func (e *Extent) Add(v float32) {
	if v > e.Max {
		e.Max = v
	}
	if v < e.Min {
		e.Min = v
	}
}

// Span returns Max - Min.
func (e Extent) Span() float32 {
	return e.Max - e.Min
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Size returns the span on each axis (width, height, length).
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f]-[%.3f %.3f %.3f]",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
}

// ExtentPolicy selects how transformed corners are reduced to bounds.
type ExtentPolicy int

const (
	// ExtentExact reduces each axis with its own Extent.
	ExtentExact ExtentPolicy = iota
	// ExtentLegacy reproduces the old renderer: bounds are seeded with
	// ±1,000,000, the min of an axis is only considered when the value did
	// not raise the max, and the z min is gated on the y coordinate. Use it
	// only to compare against output recorded from that renderer.
	ExtentLegacy
)

func (p ExtentPolicy) String() string {
	switch p {
	case ExtentExact:
		return "exact"
	case ExtentLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("ExtentPolicy(%d)", int(p))
	}
}

// ParseExtentPolicy maps a config value to a policy.
func ParseExtentPolicy(s string) (ExtentPolicy, error) {
	switch s {
	case "", "exact":
		return ExtentExact, nil
	case "legacy":
		return ExtentLegacy, nil
	default:
		return ExtentExact, fmt.Errorf("unknown extent policy %q", s)
	}
}

// TransformedBounds maps points through m (w = 1) and reduces them
// according to policy.
func TransformedBounds(m mgl32.Mat4, points []mgl32.Vec3, policy ExtentPolicy) Bounds {
	if policy == ExtentLegacy {
		return legacyBounds(m, points)
	}

	axes := [3]Extent{NewExtent(), NewExtent(), NewExtent()}
	for _, p := range points {
		t := m.Mul4x1(p.Vec4(1))
		for i := range axes {
			axes[i].Add(t[i])
		}
	}
	return Bounds{
		Min: mgl32.Vec3{axes[0].Min, axes[1].Min, axes[2].Min},
		Max: mgl32.Vec3{axes[0].Max, axes[1].Max, axes[2].Max},
	}
}

func legacyBounds(m mgl32.Mat4, points []mgl32.Vec3) Bounds {
	minX, minY, minZ := float32(extentSentinel), float32(extentSentinel), float32(extentSentinel)
	maxX, maxY, maxZ := float32(-extentSentinel), float32(-extentSentinel), float32(-extentSentinel)

	for _, p := range points {
		t := m.Mul4x1(p.Vec4(1))
		if t.X() > maxX {
			maxX = t.X()
		} else if t.X() < minX {
			minX = t.X()
		}
		if t.Y() > maxY {
			maxY = t.Y()
		} else if t.Y() < minY {
			minY = t.Y()
		}
		if t.Z() > maxZ {
			maxZ = t.Z()
		} else if t.Y() < minZ {
			minZ = t.Z()
		}
	}
	return Bounds{
		Min: mgl32.Vec3{minX, minY, minZ},
		Max: mgl32.Vec3{maxX, maxY, maxZ},
	}
}
