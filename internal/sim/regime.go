package sim

import "math/rand"

// Regime labels for notes and metrics.
const (
	RegimeNormal = "normal"
	RegimeBear   = "bear"
)

// RegimeSelector decides each day's drift/volatility pair and owns the
// bear-regime countdown transition.
type RegimeSelector struct {
	p   Params
	rng *rand.Rand
}

func NewRegimeSelector(p Params, rng *rand.Rand) *RegimeSelector {
	return &RegimeSelector{p: p, rng: rng}
}

// Select returns the day's (mu, sigma), the bear countdown after today,
// and an optional note. A countdown > 0 continues the bear regime and is
// consumed by one day; otherwise a new bear regime starts with probability
// BearProb, lasting a uniform number of further days in
// [BearDaysMin, BearDaysMax].
func (s *RegimeSelector) Select(bearLeft int) (mu, sigma float64, left int, note string) {
	if bearLeft > 0 {
		return s.p.BearDrift, s.p.BearVol, bearLeft - 1, "🐻 bear regime (continuing)"
	}
	if s.rng.Float64() < s.p.BearProb {
		days := s.p.BearDaysMin + s.rng.Intn(s.p.BearDaysMax-s.p.BearDaysMin+1)
		return s.p.BearDrift, s.p.BearVol, days, "🐻 bear regime (new)"
	}
	return s.p.Drift, s.p.Vol, 0, ""
}
