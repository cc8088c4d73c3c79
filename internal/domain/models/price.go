package models

// PricePoint is one day's closing price. Immutable once appended.
type PricePoint struct {
	Date  string `json:"date"` // ISO-8601 calendar date
	Price int64  `json:"price"`
}

// History is the public price document. At most one point per date,
// ordered ascending by date.
type History struct {
	Symbol  string       `json:"symbol"`
	Name    string       `json:"name"`
	Unit    string       `json:"unit"`
	History []PricePoint `json:"history"`
}

// Last returns the most recent point, if any.
func (h *History) Last() (PricePoint, bool) {
	if len(h.History) == 0 {
		return PricePoint{}, false
	}
	return h.History[len(h.History)-1], true
}

// HasDay reports whether a point for the given date key already exists.
func (h *History) HasDay(date string) bool {
	last, ok := h.Last()
	return ok && last.Date == date
}

// Tail returns up to n most recent points (the full series for n <= 0).
func (h *History) Tail(n int) []PricePoint {
	if n <= 0 || n >= len(h.History) {
		return h.History
	}
	return h.History[len(h.History)-n:]
}
