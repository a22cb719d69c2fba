package storage

import (
	"fmt"

	"github.com/personalmemory/memory-mcp/internal/models"
)

// appendPending records a value awaiting an explicit category decision.
// Caller holds the lock.
func (s *Store) appendPending(key string, value any) {
	item := models.PendingItem{
		Key:                key,
		Value:              value,
		Timestamp:          s.timestamp(),
		SuggestedCategory:  suggestCategory(key),
		ExistingCategories: orderedCategories(s.doc.PersonalInfo),
	}
	s.doc.PendingCategorization = append(s.doc.PendingCategorization, item)
}

// PendingItems returns the pending-categorization queue in insertion order.
func (s *Store) PendingItems() []models.PendingItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.PendingItem, len(s.doc.PendingCategorization))
	for i, item := range s.doc.PendingCategorization {
		item.Value = copyValue(item.Value)
		item.ExistingCategories = append([]string(nil), item.ExistingCategories...)
		items[i] = item
	}
	return items
}

// CategorizePending moves a pending item's value into {category}.{key} and
// removes it from the queue. Returns the number of items still pending.
func (s *Store) CategorizePending(key, category string) (remaining int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.doc.PendingCategorization
	idx := -1
	for i, item := range queue {
		if item.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return len(queue), fmt.Errorf("no pending item with key %q", key)
	}

	setPath(s.doc.PersonalInfo, []string{category, key}, queue[idx].Value)
	s.doc.PendingCategorization = append(queue[:idx], queue[idx+1:]...)

	if err := s.save(); err != nil {
		return len(s.doc.PendingCategorization), err
	}
	return len(s.doc.PendingCategorization), nil
}

// ClearPending discards every pending item without storing its value. This
// loses data; callers surface a warning before invoking it.
func (s *Store) ClearPending() (cleared int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared = len(s.doc.PendingCategorization)
	if cleared == 0 {
		return 0, nil
	}
	s.doc.PendingCategorization = nil

	if err := s.save(); err != nil {
		return cleared, err
	}
	return cleared, nil
}
