// Package file persists the deliberation history as one JSON file:
// the whole list is loaded at open and rewritten after every upsert,
// so a save/load cycle reproduces the record set exactly.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

type HistoryStore struct {
	mu      sync.Mutex
	path    string
	records map[domain.DeliberationID]*domain.Deliberation
}

// NewHistoryStore opens (or creates) the store at path and loads any
// existing records.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if path == "" {
		return nil, fmt.Errorf("history file path is required")
	}

	s := &HistoryStore{
		path:    path,
		records: make(map[domain.DeliberationID]*domain.Deliberation),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HistoryStore) Upsert(d *domain.Deliberation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[d.ID] = d.Clone()
	return s.save()
}

func (s *HistoryStore) Get(id domain.DeliberationID) (*domain.Deliberation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *HistoryStore) List() ([]*domain.Deliberation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Deliberation, 0, len(s.records))
	for _, d := range s.records {
		out = append(out, d.Clone())
	}
	sortByRecency(out)
	return out, nil
}

// load reads the whole file into memory. A missing file is an empty
// history, not an error.
func (s *HistoryStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading history file: %w", err)
	}

	var list []*domain.Deliberation
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("parsing history file: %w", err)
	}

	for _, d := range list {
		s.records[d.ID] = d
	}
	return nil
}

// save rewrites the file with the full record list, newest first.
func (s *HistoryStore) save() error {
	list := make([]*domain.Deliberation, 0, len(s.records))
	for _, d := range s.records {
		list = append(list, d)
	}
	sortByRecency(list)

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

func sortByRecency(records []*domain.Deliberation) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}
