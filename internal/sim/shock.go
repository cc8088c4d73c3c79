package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// ShockEngine owns the days-until-shock countdown and the discrete price
// jumps applied when it elapses.
type ShockEngine struct {
	p   Params
	rng *rand.Rand
}

func NewShockEngine(p Params, rng *rand.Rand) *ShockEngine {
	return &ShockEngine{p: p, rng: rng}
}

// DrawInterval picks one of the configured day-count ranges uniformly at
// random, then a uniform integer inside it (inclusive). The two-stage draw
// is a mixture distribution; collapsing it into one merged range would
// change the weights.
func (e *ShockEngine) DrawInterval() int {
	r := e.p.ShockRanges[e.rng.Intn(len(e.p.ShockRanges))]
	return r[0] + e.rng.Intn(r[1]-r[0]+1)
}

// MaybeApply fires a shock when the countdown has elapsed: a uniform
// magnitude in [PctMin, PctMax], upward with probability UpProb, and a
// fresh countdown drawn via DrawInterval. Otherwise it decrements the
// countdown and leaves the price alone. The note carries the signed
// percentage to one decimal place, empty when no shock fired.
func (e *ShockEngine) MaybeApply(price int64, countdown int) (int64, int, string) {
	if countdown > 0 {
		return price, countdown - 1, ""
	}

	pct := e.p.ShockPctMin + e.rng.Float64()*(e.p.ShockPctMax-e.p.ShockPctMin)
	sign := -1.0
	if e.rng.Float64() < e.p.ShockUpProb {
		sign = +1.0
	}

	next := int64(math.Round(float64(price) * (1 + sign*pct)))
	if next < e.p.MinPrice {
		next = e.p.MinPrice
	}
	note := fmt.Sprintf("⚡ shock %+.1f%%", sign*pct*100)
	return next, e.DrawInterval(), note
}
