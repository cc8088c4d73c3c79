package sim

import (
	"math/rand"
	"testing"
)

func TestShockCountdownDecrements(t *testing.T) {
	p := baseParams()
	e := NewShockEngine(p, rand.New(rand.NewSource(1)))

	price, after, note := e.MaybeApply(1000, 3)
	if price != 1000 {
		t.Fatalf("no shock expected, price changed to %d", price)
	}
	if after != 2 {
		t.Fatalf("expected countdown 2, got %d", after)
	}
	if note != "" {
		t.Fatalf("expected no note, got %q", note)
	}
}

func TestShockFiresDownTwentyPercent(t *testing.T) {
	p := baseParams()
	p.ShockPctMin = 0.20
	p.ShockPctMax = 0.20
	p.ShockUpProb = 0 // always down
	e := NewShockEngine(p, rand.New(rand.NewSource(1)))

	price, after, note := e.MaybeApply(1000, 0)
	if price != 800 {
		t.Fatalf("expected 800, got %d", price)
	}
	if note != "⚡ shock -20.0%" {
		t.Fatalf("unexpected note %q", note)
	}
	okRange := (after >= 2 && after <= 3) || (after >= 4 && after <= 5)
	if !okRange {
		t.Fatalf("redrawn countdown %d outside configured ranges", after)
	}
}

func TestShockUpwardSign(t *testing.T) {
	p := baseParams()
	p.ShockPctMin = 0.10
	p.ShockPctMax = 0.10
	p.ShockUpProb = 1 // always up
	e := NewShockEngine(p, rand.New(rand.NewSource(1)))

	price, _, note := e.MaybeApply(1000, 0)
	if price != 1100 {
		t.Fatalf("expected 1100, got %d", price)
	}
	if note != "⚡ shock +10.0%" {
		t.Fatalf("unexpected note %q", note)
	}
}

func TestShockClampsToFloor(t *testing.T) {
	p := baseParams()
	p.MinPrice = 100
	p.ShockPctMin = 0.95
	p.ShockPctMax = 0.95
	p.ShockUpProb = 0
	e := NewShockEngine(p, rand.New(rand.NewSource(1)))

	price, _, _ := e.MaybeApply(101, 0)
	if price != p.MinPrice {
		t.Fatalf("expected floor %d, got %d", p.MinPrice, price)
	}
}

func TestDrawIntervalIsMixtureNotMergedRange(t *testing.T) {
	p := baseParams()
	p.ShockRanges = [][2]int{{2, 3}, {10, 20}}
	e := NewShockEngine(p, rand.New(rand.NewSource(5)))

	const n = 2000
	short := 0
	for i := 0; i < n; i++ {
		v := e.DrawInterval()
		inShort := v >= 2 && v <= 3
		inLong := v >= 10 && v <= 20
		if !inShort && !inLong {
			t.Fatalf("draw %d outside both ranges", v)
		}
		if inShort {
			short++
		}
	}

	// Each range is chosen with probability 1/2, so roughly half the draws
	// land in {2,3}. A single merged uniform over [2,20] would put only
	// ~2/19 of draws there, so a low count exposes a collapsed draw.
	if short < n/3 {
		t.Fatalf("short range drawn %d/%d times; mixture weighting lost", short, n)
	}
}
