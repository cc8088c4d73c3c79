package sim

import (
	"fmt"
	"math/rand"
	"time"

	"ChipTick/internal/domain/models"
	"ChipTick/pkg/util"
)

// Driver composes the engine for one invocation per calendar day:
// regime → base step → shock → weekly decay → append. All components
// share one live random stream, advanced in exactly that order.
type Driver struct {
	p      Params
	rng    *rand.Rand
	regime *RegimeSelector
	shocks *ShockEngine
}

// NewDriver creates a Driver. A nil rng gets a time-seeded live stream;
// tests inject a fixed seed for reproducible runs.
func NewDriver(p Params, rng *rand.Rand) *Driver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Driver{
		p:      p,
		rng:    rng,
		regime: NewRegimeSelector(p, rng),
		shocks: NewShockEngine(p, rng),
	}
}

// EnsureState lazily draws the shock countdown when it has never been set.
func (d *Driver) EnsureState(st *models.SimState) {
	if _, ok := st.ShockCountdown(); !ok {
		st.SetShockCountdown(d.shocks.DrawInterval())
	}
}

// Advance runs one simulated day against the history and state, appending
// at most one point for today. When today's point already exists the
// invocation is a no-op: the stored price is reused and neither the random
// stream nor the state is touched.
func (d *Driver) Advance(today time.Time, hist *models.History, st *models.SimState) (*models.TickResult, error) {
	last, ok := hist.Last()
	if !ok {
		return nil, fmt.Errorf("advance: history is empty")
	}

	date := util.DayKey(today)
	if last.Date == date {
		return &models.TickResult{Date: date, Price: last.Price}, nil
	}
	if last.Date > date {
		return nil, fmt.Errorf("advance: history is ahead of today (%s > %s)", last.Date, date)
	}

	d.EnsureState(st)
	notes := make([]string, 0, 3)

	regime := RegimeNormal
	mu, sigma, bearLeft, note := d.regime.Select(st.BearLeft)
	st.BearLeft = bearLeft
	if note != "" {
		regime = RegimeBear
		notes = append(notes, note)
	}

	price := Step(d.rng, last.Price, mu, sigma, d.p)

	countdown, _ := st.ShockCountdown()
	price, countdown, shockNote := d.shocks.MaybeApply(price, countdown)
	st.SetShockCountdown(countdown)
	if shockNote != "" {
		notes = append(notes, shockNote)
	}

	// Shock before decay when both land on the same day.
	price, decayNote := WeeklyDecay(today, price, d.p)
	if decayNote != "" {
		notes = append(notes, decayNote)
	}

	hist.History = append(hist.History, models.PricePoint{Date: date, Price: price})
	return &models.TickResult{Date: date, Price: price, Regime: regime, Notes: notes, Appended: true}, nil
}
