package sim

import (
	"math"
	"math/rand"
)

// logEps guards the logarithms against non-positive inputs.
const logEps = 1e-9

// StepWithNoise advances prev by one geometric step in log space with a
// mean-reversion pull toward the anchor, using the supplied z draw. The
// gap term is positive below the anchor (pulls up) and negative above it.
func StepWithNoise(prev int64, mu, sigma, z float64, p Params) int64 {
	gap := math.Log(math.Max(logEps, p.Anchor)) - math.Log(math.Max(logEps, float64(prev)))
	drift := (mu - 0.5*sigma*sigma) + p.RevertK*gap
	next := int64(math.Round(float64(prev) * math.Exp(drift+sigma*z)))
	if next < p.MinPrice {
		next = p.MinPrice
	}
	return next
}

// Step draws z ~ Normal(0,1) from rng and advances prev one day.
func Step(rng *rand.Rand, prev int64, mu, sigma float64, p Params) int64 {
	return StepWithNoise(prev, mu, sigma, rng.NormFloat64(), p)
}
