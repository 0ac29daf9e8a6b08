package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// Vec64To32 converts a 64-bit vector to a 32-bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}

// Horizontal returns the vector with its vertical component zeroed.
func Horizontal(vec mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{vec.X(), 0, vec.Z()}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl64.Vec3) float64 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// Vec3HzDist returns the horizontal length of a vector.
func Vec3HzDist(vec3 mgl64.Vec3) float64 {
	return math.Sqrt(Vec3HzDistSqr(vec3))
}

// HorizontalLook returns the horizontal unit vector an entity with the given yaw is facing, using the
// Minecraft sin table so that results match the legacy client bit for bit.
func HorizontalLook(yaw float64) mgl64.Vec3 {
	rad := float32(yaw * math.Pi / 180)
	return mgl64.Vec3{-float64(MCSin(rad)), 0, float64(MCCos(rad))}.Normalize()
}

// ClampFloat64 clamps the given value to the given range.
func ClampFloat64(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}
