package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec3 is a world-space position or direction. Y is up; enemies move in the
// XZ plane and are pinned to the terrain on Y.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns the unit vector, or the zero vector when v is too short
// to normalize safely.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l <= 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Horizontal projects the vector onto the ground plane. The cp plane vector
// carries X in X and Z in Y.
func (v Vec3) Horizontal() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// FromHorizontal lifts a ground-plane vector back into world space at height y.
func FromHorizontal(p cp.Vector, y float64) Vec3 {
	return Vec3{X: p.X, Y: y, Z: p.Y}
}

// Finite reports whether every component is a finite number.
func (v Vec3) Finite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// HorizontalDistSq returns the squared ground-plane distance between a and b.
func HorizontalDistSq(a, b Vec3) float64 {
	d := a.Horizontal().Sub(b.Horizontal())
	return d.LengthSq()
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
