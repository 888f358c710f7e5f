package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/errors"
)

type Store struct {
	mu       sync.RWMutex
	projects map[string]entities.ProjectProjection
	results  map[string]entities.Result
}

func NewStore() *Store {
	return &Store{
		projects: make(map[string]entities.ProjectProjection),
		results:  make(map[string]entities.Result),
	}
}

func (s *Store) SaveProject(_ context.Context, projection entities.ProjectProjection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.projects[projection.ProjectID]; ok {
		projection.CreatedAt = existing.CreatedAt
	}
	s.projects[projection.ProjectID] = projection
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID string) (entities.ProjectProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projection, ok := s.projects[strings.TrimSpace(projectID)]
	if !ok {
		return entities.ProjectProjection{}, domainerrors.ErrProjectNotFound
	}
	return projection, nil
}

func (s *Store) ListProjectsByHackathon(_ context.Context, hackathonID string) ([]entities.ProjectProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hackathonID = strings.TrimSpace(hackathonID)
	items := make([]entities.ProjectProjection, 0)
	for _, projection := range s.projects {
		if projection.HackathonID == hackathonID {
			items = append(items, projection)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ProjectID < items[j].ProjectID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// UpsertResult replaces the (hackathon, project) row in place, keeping the
// original created_at so recomputes only move updated_at.
func (s *Store) UpsertResult(_ context.Context, result entities.Result) (entities.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resultKey(result.HackathonID, result.ProjectID)
	if existing, ok := s.results[key]; ok {
		result.CreatedAt = existing.CreatedAt
	}
	s.results[key] = result
	return result, nil
}

func (s *Store) GetResult(_ context.Context, hackathonID string, projectID string) (entities.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[resultKey(hackathonID, projectID)]
	if !ok {
		return entities.Result{}, domainerrors.ErrResultNotFound
	}
	return result, nil
}

func (s *Store) GetResultByProject(_ context.Context, projectID string) (entities.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projectID = strings.TrimSpace(projectID)
	for _, result := range s.results {
		if result.ProjectID == projectID {
			return result, nil
		}
	}
	return entities.Result{}, domainerrors.ErrResultNotFound
}

func (s *Store) ListResultsByHackathon(_ context.Context, hackathonID string) ([]entities.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hackathonID = strings.TrimSpace(hackathonID)
	items := make([]entities.Result, 0)
	for _, result := range s.results {
		if result.HackathonID == hackathonID {
			items = append(items, result)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].FinalRank == items[j].FinalRank {
			return items[i].ProjectID < items[j].ProjectID
		}
		return items[i].FinalRank < items[j].FinalRank
	})
	return items, nil
}

func resultKey(hackathonID string, projectID string) string {
	return strings.TrimSpace(hackathonID) + "|" + strings.TrimSpace(projectID)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
