package sim

import (
	"math"
	"math/rand"
	"time"

	"ChipTick/internal/domain/models"
	"ChipTick/pkg/util"
)

// Backfiller bootstraps an initial history when none exists. It owns its
// own seeded generator, so bootstrapping never disturbs the live random
// stream and repeated bootstraps are byte-identical.
type Backfiller struct {
	p Params
}

func NewBackfiller(p Params) *Backfiller {
	return &Backfiller{p: p}
}

// Generate produces BackfillDays consecutive daily points ending today.
// The first point is the configured start price; the rest follow the base
// stochastic step without mean reversion or regimes.
func (b *Backfiller) Generate(today time.Time) []models.PricePoint {
	rng := rand.New(rand.NewSource(b.p.BackfillSeed))

	day := util.DaysAgo(today, b.p.BackfillDays-1)
	price := int64(math.Round(b.p.StartPrice))

	points := make([]models.PricePoint, 0, b.p.BackfillDays)
	for i := 0; i < b.p.BackfillDays; i++ {
		if i > 0 {
			z := rng.NormFloat64()
			step := math.Exp((b.p.Drift - 0.5*b.p.Vol*b.p.Vol) + b.p.Vol*z)
			price = int64(math.Round(float64(price) * step))
			if price < b.p.MinPrice {
				price = b.p.MinPrice
			}
		}
		points = append(points, models.PricePoint{Date: util.DayKey(day), Price: price})
		day = day.AddDate(0, 0, 1)
	}
	return points
}
