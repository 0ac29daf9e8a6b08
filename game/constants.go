package game

const (
	// TicksPerSecond is the fixed simulation rate of the host. Velocities stored in blocks per second are
	// converted to blocks per tick by dividing by this value.
	TicksPerSecond = 20

	DefaultHorizontalKnockback  = 0.4
	DefaultVerticalKnockback    = 0.4
	DefaultVerticalKnockbackCap = 0.4
	DefaultSprintHorizontal     = 0.5
	DefaultSprintVertical       = 0.1

	// LegacyFrictionDivisor is the divisor applied to the victim's previous velocity by the legacy formula.
	LegacyFrictionDivisor = 2.0

	// BonusHorizontalPerLevel and BonusVertical are added for each level of a knockback enchantment.
	BonusHorizontalPerLevel = 0.5
	BonusVertical           = 0.1

	// GlancingReduction is the factor applied to sweep and area strikes.
	GlancingReduction = 0.5
	// BlockingReduction is the factor applied when the victim is blocking the strike.
	BlockingReduction = 0.5

	// FallingVelocityThreshold is the vertical velocity, in the velocity unit of the host, at or below
	// which an airborne entity is considered to be falling.
	FallingVelocityThreshold = -0.08
	// MinDirectionDistance is the horizontal distance under which the direction between two points is
	// considered undefined.
	MinDirectionDistance = 1e-4
)
