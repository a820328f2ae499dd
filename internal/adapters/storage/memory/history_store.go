package memory

import (
	"sort"
	"sync"

	"github.com/PabloGalante/quorum-agent/internal/domain"
)

// HistoryStore is a simple in-memory implementation of
// domain.HistoryStore. It is NOT persistent and is only suitable for
// development / local mode.
type HistoryStore struct {
	mu      sync.RWMutex
	records map[domain.DeliberationID]*domain.Deliberation
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		records: make(map[domain.DeliberationID]*domain.Deliberation),
	}
}

func (s *HistoryStore) Upsert(d *domain.Deliberation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clone both ways so a stored record can never be mutated through
	// a pointer the caller still holds.
	s.records[d.ID] = d.Clone()
	return nil
}

func (s *HistoryStore) Get(id domain.DeliberationID) (*domain.Deliberation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *HistoryStore) List() ([]*domain.Deliberation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Deliberation, 0, len(s.records))
	for _, d := range s.records {
		out = append(out, d.Clone())
	}

	sortByRecency(out)
	return out, nil
}

// sortByRecency orders newest first, id as a deterministic tie-break.
func sortByRecency(records []*domain.Deliberation) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}
