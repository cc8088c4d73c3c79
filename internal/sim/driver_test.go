package sim

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"ChipTick/internal/domain/models"
	"ChipTick/pkg/util"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func seededHistory(today time.Time, days int, price int64) *models.History {
	h := &models.History{Symbol: "TSLA", Name: "Tesla Stock", Unit: "chips"}
	day := util.DaysAgo(today, days)
	for i := 0; i < days; i++ {
		h.History = append(h.History, models.PricePoint{Date: util.DayKey(day), Price: price})
		day = day.AddDate(0, 0, 1)
	}
	return h
}

func TestDriverAppendsOnePointForToday(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 10, 14, 9, 0, 0, 0, time.UTC) // Monday
	hist := seededHistory(today, 5, 1000)
	st := &models.SimState{}

	d := NewDriver(p, newTestRand(1))
	res, err := d.Advance(today, hist, st)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !res.Appended {
		t.Fatalf("expected a point to be appended")
	}
	last, _ := hist.Last()
	if last.Date != util.DayKey(today) || last.Price != res.Price {
		t.Fatalf("appended point %+v does not match result %+v", last, res)
	}
	if _, ok := st.ShockCountdown(); !ok {
		t.Fatalf("shock countdown must be initialized after advance")
	}
}

func TestDriverIdempotentRerun(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 10, 14, 9, 0, 0, 0, time.UTC)
	hist := seededHistory(today, 5, 1000)
	st := &models.SimState{BearLeft: 2}
	st.SetShockCountdown(4)

	d := NewDriver(p, newTestRand(1))
	first, err := d.Advance(today, hist, st)
	if err != nil {
		t.Fatalf("first advance: %v", err)
	}
	lenAfterFirst := len(hist.History)
	countdownAfterFirst, _ := st.ShockCountdown()
	bearAfterFirst := st.BearLeft

	second, err := d.Advance(today, hist, st)
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if second.Appended {
		t.Fatalf("re-run must not append")
	}
	if second.Price != first.Price {
		t.Fatalf("re-run price %d differs from %d", second.Price, first.Price)
	}
	if len(hist.History) != lenAfterFirst {
		t.Fatalf("history grew on re-run")
	}
	if cd, _ := st.ShockCountdown(); cd != countdownAfterFirst || st.BearLeft != bearAfterFirst {
		t.Fatalf("re-run mutated state: countdown %d->%d bear %d->%d",
			countdownAfterFirst, cd, bearAfterFirst, st.BearLeft)
	}
}

func TestDriverFloorInvariantLongRun(t *testing.T) {
	p := baseParams()
	p.MinPrice = 5
	p.BearProb = 0.5 // hostile setup to push toward the floor
	p.ShockUpProb = 0

	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := seededHistory(today, 2, 10)
	st := &models.SimState{}
	d := NewDriver(p, newTestRand(3))

	for i := 0; i < 730; i++ {
		res, err := d.Advance(today, hist, st)
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if res.Price < p.MinPrice {
			t.Fatalf("day %d: price %d below floor", i, res.Price)
		}
		today = today.AddDate(0, 0, 1)
	}
}

func TestDriverCountdownMonotonicity(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := seededHistory(today, 2, 1000)
	st := &models.SimState{}
	d := NewDriver(p, newTestRand(11))

	prev := -1
	for i := 0; i < 365; i++ {
		res, err := d.Advance(today, hist, st)
		if err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		cd, ok := st.ShockCountdown()
		if !ok || cd < 0 {
			t.Fatalf("day %d: countdown unset or negative", i)
		}

		shocked := false
		for _, n := range res.Notes {
			if strings.Contains(n, "shock") {
				shocked = true
			}
		}
		if prev >= 0 {
			if shocked && prev != 0 {
				t.Fatalf("day %d: shock fired with countdown %d pending", i, prev)
			}
			if !shocked && cd != prev-1 {
				t.Fatalf("day %d: countdown %d -> %d without a shock", i, prev, cd)
			}
		}
		prev = cd
		today = today.AddDate(0, 0, 1)
	}
}

func TestDriverBearBound(t *testing.T) {
	p := baseParams()
	p.BearProb = 0.5
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := seededHistory(today, 2, 1000)
	st := &models.SimState{}
	d := NewDriver(p, newTestRand(17))

	for i := 0; i < 365; i++ {
		if _, err := d.Advance(today, hist, st); err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
		if st.BearLeft < 0 || st.BearLeft > p.BearDaysMax {
			t.Fatalf("day %d: bear countdown %d outside [0,%d]", i, st.BearLeft, p.BearDaysMax)
		}
		today = today.AddDate(0, 0, 1)
	}
}

func TestDriverShockThenDecaySameDay(t *testing.T) {
	p := baseParams()
	p.Drift = 0
	p.Vol = 0 // deterministic base step
	p.BearProb = 0
	p.RevertK = 0
	p.ShockPctMin = 0.20
	p.ShockPctMax = 0.20
	p.ShockUpProb = 0

	sunday := time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC)
	hist := seededHistory(sunday, 2, 1000)
	st := &models.SimState{}
	st.SetShockCountdown(0) // shock due today

	d := NewDriver(p, newTestRand(1))
	res, err := d.Advance(sunday, hist, st)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	// 1000 -> shock -20% -> 800 -> weekly rebase -1% -> 792
	if res.Price != 792 {
		t.Fatalf("expected 792 after shock then decay, got %d", res.Price)
	}
	if len(res.Notes) != 2 || !strings.Contains(res.Notes[0], "shock") || !strings.Contains(res.Notes[1], "rebase") {
		t.Fatalf("expected shock note before rebase note, got %v", res.Notes)
	}
}

func TestDriverEmptyHistoryErrors(t *testing.T) {
	p := baseParams()
	d := NewDriver(p, newTestRand(1))
	_, err := d.Advance(time.Now(), &models.History{}, &models.SimState{})
	if err == nil {
		t.Fatalf("expected error on empty history")
	}
}

func TestDriverHistoryAheadOfTodayErrors(t *testing.T) {
	p := baseParams()
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := &models.History{History: []models.PricePoint{{Date: "2030-01-01", Price: 1000}}}
	d := NewDriver(p, newTestRand(1))

	if _, err := d.Advance(today, hist, &models.SimState{}); err == nil {
		t.Fatalf("expected error when history is ahead of today")
	}
}
