// Package convert narrows integers without wrapping around.
package convert

import "math"

// ToInt32 narrows v to int32, saturating at the type's bounds.
func ToInt32(v int) int32 {
	return int32(max(math.MinInt32, min(v, math.MaxInt32)))
}

// ToUint converts v to uint. Negative values become 0.
func ToUint(v int) uint {
	return uint(max(v, 0))
}
