package storage

import (
	"fmt"

	"github.com/personalmemory/memory-mcp/internal/models"
)

// goalStatuses is the set of valid goal states.
var goalStatuses = map[string]bool{
	"active":    true,
	"completed": true,
	"paused":    true,
	"cancelled": true,
}

// AddGoal appends a goal. Category defaults to "general" and priority to
// "medium"; new goals start active.
func (s *Store) AddGoal(goal, category, deadline, priority string) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" {
		category = "general"
	}
	if priority == "" {
		priority = "medium"
	}
	entry := models.Goal{
		ID:        len(s.doc.Goals) + 1,
		Goal:      goal,
		Category:  category,
		Deadline:  deadline,
		Priority:  priority,
		Status:    "active",
		CreatedAt: s.timestamp(),
	}
	s.doc.Goals = append(s.doc.Goals, entry)

	if err := s.save(); err != nil {
		return models.Goal{}, err
	}
	return entry, nil
}

// Goals returns goals filtered by status and category. Empty filters match
// everything; both filters are ANDed.
func (s *Store) Goals(status, category string) []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := []models.Goal{}
	for _, g := range s.doc.Goals {
		if status != "" && g.Status != status {
			continue
		}
		if category != "" && g.Category != category {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}

// UpdateGoalStatus sets the status of a goal by id. An unknown id or status
// is a validation error and leaves the goal list unchanged.
func (s *Store) UpdateGoalStatus(goalID int, status string) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !goalStatuses[status] {
		return models.Goal{}, fmt.Errorf("invalid status %q (use active, completed, paused, or cancelled)", status)
	}

	for i := range s.doc.Goals {
		if s.doc.Goals[i].ID != goalID {
			continue
		}
		s.doc.Goals[i].Status = status
		s.doc.Goals[i].UpdatedAt = s.timestamp()

		if err := s.save(); err != nil {
			return models.Goal{}, err
		}
		return s.doc.Goals[i], nil
	}
	return models.Goal{}, fmt.Errorf("goal %d not found", goalID)
}
