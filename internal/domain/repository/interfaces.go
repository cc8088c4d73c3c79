package repository

import (
	"context"

	"ChipTick/internal/domain/models"
)

// HistoryStore persists the public price history document.
type HistoryStore interface {
	// Load reads the history. A legacy document may still embed the
	// private simulation state under "meta"; when present it is stripped
	// and returned separately for migration.
	Load() (*models.History, *models.SimState, error)
	// Save writes the history all-or-nothing, never including meta.
	Save(h *models.History) error
}

// StateStore persists the private simulation state.
type StateStore interface {
	Load() (*models.SimState, error)
	Save(s *models.SimState) error
}

// ItemPublisher pushes the day's result to the external store item.
type ItemPublisher interface {
	Publish(ctx context.Context, res *models.TickResult) error
}

// Archiver forwards appended price points to an optional downstream sink.
type Archiver interface {
	Archive(ctx context.Context, symbol string, p models.PricePoint) error
	Close() error
}

// Metrics records operational counters for the simulator.
type Metrics interface {
	RecordLastPrice(symbol string, price float64)
	RecordShock(direction string)
	RecordRegimeDay(regime string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
