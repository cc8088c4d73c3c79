package sim

import (
	"fmt"
	"time"

	"ChipTick/pkg/config"
)

// Params are the immutable model parameters, read once at process start.
type Params struct {
	StartPrice float64
	Drift      float64
	Vol        float64
	MinPrice   int64
	Anchor     float64
	RevertK    float64

	ShockRanges [][2]int
	ShockPctMin float64
	ShockPctMax float64
	ShockUpProb float64

	BearProb    float64
	BearDaysMin int
	BearDaysMax int
	BearDrift   float64
	BearVol     float64

	RebaseWeekday time.Weekday
	RebasePct     float64

	BackfillDays int
	BackfillSeed int64
}

// NewParams maps the model sections of the configuration into Params.
func NewParams(cfg *config.Config) (Params, error) {
	wd, err := config.ParseWeekday(cfg.Decay.Weekday)
	if err != nil {
		return Params{}, fmt.Errorf("sim params: %w", err)
	}
	return Params{
		StartPrice: cfg.Model.StartPrice,
		Drift:      cfg.Model.Drift,
		Vol:        cfg.Model.Vol,
		MinPrice:   cfg.Model.MinPrice,
		Anchor:     cfg.Model.Anchor,
		RevertK:    cfg.Model.RevertK,

		ShockRanges: cfg.Shocks.IntervalRanges,
		ShockPctMin: cfg.Shocks.PctMin,
		ShockPctMax: cfg.Shocks.PctMax,
		ShockUpProb: cfg.Shocks.UpProb,

		BearProb:    cfg.Bear.Prob,
		BearDaysMin: cfg.Bear.DaysMin,
		BearDaysMax: cfg.Bear.DaysMax,
		BearDrift:   cfg.Bear.Drift,
		BearVol:     cfg.Bear.Vol,

		RebaseWeekday: wd,
		RebasePct:     cfg.Decay.Pct,

		BackfillDays: cfg.Backfill.Days,
		BackfillSeed: cfg.Backfill.Seed,
	}, nil
}
