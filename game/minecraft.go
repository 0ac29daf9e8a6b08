package game

import (
	"github.com/chewxy/math32"
)

// sinTable holds the 65536 precomputed sine values used by the client for look vectors.
var sinTable [65536]float32

func init() {
	for i := range sinTable {
		sinTable[i] = math32.Sin(float32(i) * math32.Pi * 2 / 65536)
	}
}

// MCSin returns the sine of an angle in radians, looked up in the client sine table.
func MCSin(rad float32) float32 {
	return sinTable[int64(rad*10430.378)&65535]
}

// MCCos returns the cosine of an angle in radians, looked up in the client sine table.
func MCCos(rad float32) float32 {
	return sinTable[int64(rad*10430.378+16384.0)&65535]
}
