package models

// TickResult is one invocation's output: the final published price and
// the day's human-readable event notes, in the order they occurred.
type TickResult struct {
	Date       string   `json:"date"`
	Price      int64    `json:"price"`
	Regime     string   `json:"regime,omitempty"`
	Notes      []string `json:"notes,omitempty"`
	Backfilled bool     `json:"backfilled,omitempty"`
	Appended   bool     `json:"appended,omitempty"`
}
