package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/slidelens/slidelens/internal/types"
)

// MemoryStore is the default store, reports live as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]types.Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: map[string]types.Report{}}
}

func (s *MemoryStore) Save(ctx context.Context, report *types.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = *report
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return &report, nil
}

// List returns the newest reports first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]types.ReportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]types.ReportSummary, 0, len(s.reports))
	for _, report := range s.reports {
		summaries = append(summaries, report.ToSummary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	if limit = normalizeLimit(limit); len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
