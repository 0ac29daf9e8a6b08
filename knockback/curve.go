package knockback

import "math"

// RangeReductionCurve weakens knockback as the distance between the origin and the victim grows. Beyond
// the start distance, each unit of distance subtracts the factor from the magnitude, up to the maximum.
type RangeReductionCurve struct {
	StartHorizontal, StartVertical   float64
	FactorHorizontal, FactorVertical float64
	MaxHorizontal, MaxVertical       float64
}

// NoRangeReduction returns the identity curve.
func NoRangeReduction() RangeReductionCurve {
	return RangeReductionCurve{MaxHorizontal: math.Inf(1), MaxVertical: math.Inf(1)}
}

// Reduce returns the horizontal and vertical magnitudes passed after applying the curve for the distance.
// Neither magnitude is ever reduced below zero.
func (c RangeReductionCurve) Reduce(horizontal, vertical, distance float64) (float64, float64) {
	return reduceAxis(horizontal, distance, c.StartHorizontal, c.FactorHorizontal, c.MaxHorizontal),
		reduceAxis(vertical, distance, c.StartVertical, c.FactorVertical, c.MaxVertical)
}

func reduceAxis(magnitude, distance, start, factor, limit float64) float64 {
	if distance <= start || factor == 0 {
		return magnitude
	}
	reduction := math.Min((distance-start)*factor, limit)
	return math.Max(0, magnitude-reduction)
}

func (c RangeReductionCurve) validate(field string) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"start_horizontal", c.StartHorizontal},
		{"start_vertical", c.StartVertical},
		{"factor_horizontal", c.FactorHorizontal},
		{"factor_vertical", c.FactorVertical},
		{"max_horizontal", c.MaxHorizontal},
		{"max_vertical", c.MaxVertical},
	} {
		if err := nonNegative(field+"."+v.name, v.value); err != nil {
			return err
		}
	}
	return nil
}
