package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ChipTick/internal/domain/models"
	drepo "ChipTick/internal/domain/repository"
)

// FileHistoryStore persists the public history document as JSON on disk.
type FileHistoryStore struct {
	path   string
	symbol string
	name   string
	unit   string
}

// historyDoc is the on-disk schema. Older documents embedded the private
// simulation state under "meta"; it is read for migration and never
// written back.
type historyDoc struct {
	Symbol  string              `json:"symbol"`
	Name    string              `json:"name"`
	Unit    string              `json:"unit"`
	History []models.PricePoint `json:"history"`
	Meta    *models.SimState    `json:"meta,omitempty"`
}

// NewFileHistoryStore creates a history store rooted at path. The
// symbol/name/unit identify the document when it is first created.
func NewFileHistoryStore(path, symbol, name, unit string) drepo.HistoryStore {
	return &FileHistoryStore{path: path, symbol: symbol, name: name, unit: unit}
}

// Load reads the history document, creating an empty one when the file
// does not exist. A legacy embedded meta object is returned separately.
func (s *FileHistoryStore) Load() (*models.History, *models.SimState, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &models.History{Symbol: s.symbol, Name: s.name, Unit: s.unit}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read history %s: %w", s.path, err)
	}

	var doc historyDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse history %s: %w", s.path, err)
	}

	h := &models.History{
		Symbol:  doc.Symbol,
		Name:    doc.Name,
		Unit:    doc.Unit,
		History: doc.History,
	}
	if h.Symbol == "" {
		h.Symbol = s.symbol
	}
	if h.Name == "" {
		h.Name = s.name
	}
	if h.Unit == "" {
		h.Unit = s.unit
	}
	return h, doc.Meta, nil
}

// Save writes the document atomically, stripping any legacy meta.
func (s *FileHistoryStore) Save(h *models.History) error {
	doc := historyDoc{
		Symbol:  h.Symbol,
		Name:    h.Name,
		Unit:    h.Unit,
		History: h.History,
	}
	return writeJSONAtomic(s.path, &doc)
}

// writeJSONAtomic marshals v and replaces path in one rename so a crash
// mid-write cannot leave a truncated document behind.
func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
