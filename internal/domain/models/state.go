package models

// SimState is the private simulation state persisted between invocations,
// separate from the public history document.
type SimState struct {
	// NextShockIn is the number of days before the next shock fires;
	// 0 fires on the current invocation, nil means "not yet drawn".
	NextShockIn *int `json:"next_shock_in"`
	// BearLeft is the number of days remaining in an active bear regime;
	// 0 means the normal regime.
	BearLeft int `json:"bear_left"`
}

// ShockCountdown returns the countdown and whether it has been drawn.
func (s *SimState) ShockCountdown() (int, bool) {
	if s.NextShockIn == nil {
		return 0, false
	}
	return *s.NextShockIn, true
}

// SetShockCountdown sets the countdown to n days.
func (s *SimState) SetShockCountdown(n int) {
	s.NextShockIn = &n
}

// Merge fills unset fields from a legacy state record. Values already
// present in s win, matching the migration rule for embedded meta.
func (s *SimState) Merge(legacy *SimState) {
	if legacy == nil {
		return
	}
	if s.NextShockIn == nil && legacy.NextShockIn != nil {
		s.SetShockCountdown(*legacy.NextShockIn)
	}
	if s.BearLeft == 0 && legacy.BearLeft > 0 {
		s.BearLeft = legacy.BearLeft
	}
}
