package growth

import "github.com/stageradar/stageradar/internal/model"

// TierVelocity bounds how fast an audience of a given size can still
// grow: small audiences compound quickly (high multiplier, high
// ceiling), saturated ones barely move.
type TierVelocity struct {
	Multiplier float64
	Ceiling    float64 // maximum monthly growth rate for the tier
	Volatility float64
}

// tierVelocities is an immutable lookup table indexed by tier.
var tierVelocities = map[model.Tier]TierVelocity{
	model.TierUnderground: {Multiplier: 2.5, Ceiling: 1.50, Volatility: 0.40},
	model.TierEmerging:    {Multiplier: 2.0, Ceiling: 1.00, Volatility: 0.35},
	model.TierDeveloping:  {Multiplier: 1.5, Ceiling: 0.60, Volatility: 0.28},
	model.TierEstablished: {Multiplier: 1.0, Ceiling: 0.35, Volatility: 0.20},
	model.TierStar:        {Multiplier: 0.6, Ceiling: 0.15, Volatility: 0.12},
	model.TierSuperstar:   {Multiplier: 0.3, Ceiling: 0.05, Volatility: 0.08},
	model.TierMegaStar:    {Multiplier: 0.2, Ceiling: 0.04, Volatility: 0.06},
}

// lookupTier resolves a tier's velocity profile. Unknown tiers get the
// established profile: neutral multiplier, moderate ceiling.
func lookupTier(tiers map[model.Tier]TierVelocity, tier model.Tier) TierVelocity {
	if v, ok := tiers[tier]; ok {
		return v
	}
	return tiers[model.TierEstablished]
}

// TierForListeners infers a career tier from monthly listeners alone,
// used when the caller supplies no tier and fee estimation has not run.
func TierForListeners(listeners int64) model.Tier {
	switch {
	case listeners >= 20_000_000:
		return model.TierMegaStar
	case listeners >= 5_000_000:
		return model.TierSuperstar
	case listeners >= 1_000_000:
		return model.TierStar
	case listeners >= 250_000:
		return model.TierEstablished
	case listeners >= 50_000:
		return model.TierDeveloping
	case listeners >= 10_000:
		return model.TierEmerging
	default:
		return model.TierUnderground
	}
}
