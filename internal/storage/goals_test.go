package storage

import (
	"reflect"
	"testing"
)

func TestAddAndFilterGoals(t *testing.T) {
	s := openStore(t)

	s.AddGoal("finish manuscript", "book", "2026-01-01", "high")
	s.AddGoal("run a marathon", "health", "", "")
	s.AddGoal("publish article", "book", "", "low")

	all := s.Goals("", "")
	if len(all) != 3 {
		t.Fatalf("Goals() = %d, want 3", len(all))
	}
	if all[1].Category != "health" || all[1].Priority != "medium" {
		t.Errorf("Defaults not applied: %+v", all[1])
	}

	books := s.Goals("", "book")
	if len(books) != 2 {
		t.Errorf("Goals(category=book) = %d, want 2", len(books))
	}

	s.UpdateGoalStatus(1, "completed")
	activeBooks := s.Goals("active", "book")
	if len(activeBooks) != 1 || activeBooks[0].ID != 3 {
		t.Errorf("Goals(active, book) = %v, want only goal 3", activeBooks)
	}
}

func TestUpdateGoalStatus(t *testing.T) {
	s := openStore(t)

	s.AddGoal("finish manuscript", "book", "", "high")

	goal, err := s.UpdateGoalStatus(1, "paused")
	if err != nil {
		t.Fatalf("UpdateGoalStatus: %v", err)
	}
	if goal.Status != "paused" {
		t.Errorf("Status = %q, want paused", goal.Status)
	}
	if goal.UpdatedAt == "" {
		t.Error("UpdatedAt should be stamped")
	}
}

func TestUpdateGoalStatusUnknownID(t *testing.T) {
	s := openStore(t)

	s.AddGoal("finish manuscript", "book", "", "high")
	before := s.Goals("", "")

	if _, err := s.UpdateGoalStatus(99, "completed"); err == nil {
		t.Error("Expected error for unknown goal id")
	}

	after := s.Goals("", "")
	if !reflect.DeepEqual(before, after) {
		t.Error("Goal list must be unchanged after a failed update")
	}
}

func TestUpdateGoalStatusInvalidStatus(t *testing.T) {
	s := openStore(t)

	s.AddGoal("finish manuscript", "book", "", "high")
	if _, err := s.UpdateGoalStatus(1, "abandoned"); err == nil {
		t.Error("Expected error for invalid status")
	}
	if got := s.Goals("", "")[0].Status; got != "active" {
		t.Errorf("Status = %q, want active after failed update", got)
	}
}
