package sim

import (
	"testing"
	"time"

	"ChipTick/pkg/util"
)

func TestBackfillDeterminism(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 10, 13, 18, 0, 0, 0, time.UTC)

	a := NewBackfiller(p).Generate(today)
	b := NewBackfiller(p).Generate(today)

	if len(a) != p.BackfillDays || len(b) != p.BackfillDays {
		t.Fatalf("expected %d points, got %d and %d", p.BackfillDays, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between bootstraps: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBackfillShape(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 10, 13, 18, 0, 0, 0, time.UTC)

	points := NewBackfiller(p).Generate(today)

	if points[0].Price != int64(p.StartPrice) {
		t.Fatalf("first point must be the start price, got %d", points[0].Price)
	}
	if points[len(points)-1].Date != util.DayKey(today) {
		t.Fatalf("series must end today, got %s", points[len(points)-1].Date)
	}

	day := util.DaysAgo(today, p.BackfillDays-1)
	for i, pt := range points {
		if pt.Date != util.DayKey(day) {
			t.Fatalf("point %d: expected date %s, got %s", i, util.DayKey(day), pt.Date)
		}
		if pt.Price < p.MinPrice {
			t.Fatalf("point %d: price %d below floor", i, pt.Price)
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestBackfillLeavesLiveStreamUntouched(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 10, 13, 18, 0, 0, 0, time.UTC)

	// Two drivers over identical seeds must keep producing identical draws
	// whether or not a backfill runs in between.
	d1 := NewDriver(p, newTestRand(99))
	d2 := NewDriver(p, newTestRand(99))

	NewBackfiller(p).Generate(today)

	a := d1.shocks.DrawInterval()
	b := d2.shocks.DrawInterval()
	if a != b {
		t.Fatalf("backfill disturbed the live stream: %d vs %d", a, b)
	}
}
