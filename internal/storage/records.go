package storage

import (
	"sort"
	"strings"

	"github.com/personalmemory/memory-mcp/internal/models"
)

// StorePreference stores a preference under category.preference.
func (s *Store) StorePreference(category, preference string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Preferences[category] == nil {
		s.doc.Preferences[category] = map[string]any{}
	}
	s.doc.Preferences[category][preference] = value
	return s.save()
}

// Preferences returns a detached copy of one category's preferences.
// found=false means the category does not exist; the returned map is empty,
// never nil.
func (s *Store) Preferences(category string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.doc.Preferences[category]
	return copyPreferences(prefs), ok
}

// AllPreferences returns a detached copy of every preference category.
func (s *Store) AllPreferences() map[string]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]map[string]any, len(s.doc.Preferences))
	for category, prefs := range s.doc.Preferences {
		out[category] = copyPreferences(prefs)
	}
	return out
}

func copyPreferences(prefs map[string]any) map[string]any {
	out := make(map[string]any, len(prefs))
	for k, v := range prefs {
		out[k] = copyValue(v)
	}
	return out
}

// AddMemory appends a memory entry. IDs are derived from the current count;
// memories are never deleted, so ids stay unique.
func (s *Store) AddMemory(content string, tags []string, context string) (models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tags == nil {
		tags = []string{}
	}
	entry := models.Memory{
		ID:        len(s.doc.Memories) + 1,
		Content:   content,
		Tags:      tags,
		Context:   context,
		Timestamp: s.timestamp(),
	}
	s.doc.Memories = append(s.doc.Memories, entry)

	if err := s.save(); err != nil {
		return models.Memory{}, err
	}
	return entry, nil
}

// SearchMemories filters memories by case-insensitive substring match on
// content or case-insensitive tag membership. With no filters every memory
// matches. Results are sorted newest first and truncated to limit (default
// 10). The second return value is the total number of stored memories.
func (s *Store) SearchMemories(query string, tags []string, limit int) ([]models.Memory, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	var results []models.Memory
	for _, m := range s.doc.Memories {
		if memoryMatches(m, query, tags) {
			results = append(results, m)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp > results[j].Timestamp
	})
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []models.Memory{}
	}
	return results, len(s.doc.Memories)
}

func memoryMatches(m models.Memory, query string, tags []string) bool {
	if query == "" && len(tags) == 0 {
		return true
	}
	if query != "" && strings.Contains(strings.ToLower(m.Content), strings.ToLower(query)) {
		return true
	}
	for _, want := range tags {
		for _, have := range m.Tags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// StoreRelationship stores (or replaces) the relationship record for a name.
func (s *Store) StoreRelationship(name, relationshipType string, details map[string]any) (models.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if details == nil {
		details = map[string]any{}
	}
	now := s.timestamp()
	rel := models.Relationship{
		Type:        relationshipType,
		Details:     details,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if existing, ok := s.doc.Relationships[name]; ok {
		rel.CreatedAt = existing.CreatedAt
	}
	s.doc.Relationships[name] = rel

	if err := s.save(); err != nil {
		return models.Relationship{}, err
	}
	return rel, nil
}

// Relationship returns the record stored for a name, with detached details.
func (s *Store) Relationship(name string) (models.Relationship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rel, ok := s.doc.Relationships[name]
	if ok {
		rel.Details = copyValue(rel.Details).(map[string]any)
	}
	return rel, ok
}

// Relationships returns a detached copy of every relationship record.
func (s *Store) Relationships() map[string]models.Relationship {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.Relationship, len(s.doc.Relationships))
	for name, rel := range s.doc.Relationships {
		rel.Details = copyValue(rel.Details).(map[string]any)
		out[name] = rel
	}
	return out
}
