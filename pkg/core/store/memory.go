package store

import (
	"context"
	"sort"
	"sync"

	"hagwon_strategy/pkg/models"
)

// MemoryStore keeps records in process. Used by tests and the default
// single-user setup.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.ProfileRecord
	reports  map[string]models.SavedReport
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.ProfileRecord),
		reports:  make(map[string]models.SavedReport),
	}
}

func (m *MemoryStore) PutProfile(ctx context.Context, rec *models.ProfileRecord) (string, error) {
	if err := prepareProfile(rec); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[rec.ID] = cloneProfile(*rec)
	return rec.ID, nil
}

func (m *MemoryStore) GetProfile(ctx context.Context, id string) (*models.ProfileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneProfile(rec)
	return &out, nil
}

func (m *MemoryStore) SaveReport(ctx context.Context, rep *models.SavedReport) (string, error) {
	if err := prepareReport(rep); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[rep.ID] = cloneReport(*rep)
	return rep.ID, nil
}

func (m *MemoryStore) ListReports(ctx context.Context) ([]models.SavedReport, error) {
	m.mu.RLock()
	out := make([]models.SavedReport, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, cloneReport(r))
	}
	m.mu.RUnlock()
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) GetReport(ctx context.Context, id string) (*models.SavedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rep, ok := m.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneReport(rep)
	return &out, nil
}

func (m *MemoryStore) DeleteReport(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return ErrNotFound
	}
	delete(m.reports, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func cloneProfile(r models.ProfileRecord) models.ProfileRecord {
	r.Competitors = append([]models.Competitor(nil), r.Competitors...)
	return r
}

func cloneReport(r models.SavedReport) models.SavedReport {
	r.Report = append([]byte(nil), r.Report...)
	return r
}

func sortNewestFirst(reports []models.SavedReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].ID > reports[j].ID
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
}
