package storage

import "testing"

func TestQueueUnmatchedKeys(t *testing.T) {
	s := openStore(t, WithQueueUnmatched(true))

	queued, err := s.StorePersonalInfo("mysterious_thing", "???")
	if err != nil {
		t.Fatal(err)
	}
	if !queued {
		t.Error("Uncategorizable key should be queued")
	}
	queued, err = s.StorePersonalInfo("another_oddity", 42)
	if err != nil {
		t.Fatal(err)
	}
	if !queued {
		t.Error("Uncategorizable key should be queued")
	}

	items := s.PendingItems()
	if len(items) != 2 {
		t.Fatalf("PendingItems = %d, want 2", len(items))
	}
	if items[0].Key != "mysterious_thing" || items[1].Key != "another_oddity" {
		t.Errorf("Queue order wrong: %s, %s", items[0].Key, items[1].Key)
	}
	if items[0].SuggestedCategory != "" {
		t.Errorf("SuggestedCategory = %q, want empty", items[0].SuggestedCategory)
	}

	// Queued values are not in the tree
	if _, found := s.GetPersonalInfo("misc.mysterious_thing"); found {
		t.Error("Queued value must not land in misc")
	}
}

func TestQueuedKeysBypassForMatchedKeys(t *testing.T) {
	s := openStore(t, WithQueueUnmatched(true))

	// Keys with an inferable category never queue
	queued, err := s.StorePersonalInfo("phone_number", "06-12345678")
	if err != nil {
		t.Fatal(err)
	}
	if queued {
		t.Error("Categorizable key should not be queued")
	}
	if len(s.PendingItems()) != 0 {
		t.Error("Pending queue should be empty")
	}
}

func TestCategorizePendingItem(t *testing.T) {
	s := openStore(t, WithQueueUnmatched(true))

	s.StorePersonalInfo("mysterious_thing", "???")
	s.StorePersonalInfo("another_oddity", 42)

	remaining, err := s.CategorizePending("mysterious_thing", "values_insights")
	if err != nil {
		t.Fatalf("CategorizePending: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}

	value, found := s.GetPersonalInfo("values_insights.mysterious_thing")
	if !found || value != "???" {
		t.Errorf("Categorized item = (%v, %v), want (???, true)", value, found)
	}
	if len(s.PendingItems()) != 1 {
		t.Error("Queue should hold one remaining item")
	}
}

func TestCategorizePendingUnknownKey(t *testing.T) {
	s := openStore(t, WithQueueUnmatched(true))

	if _, err := s.CategorizePending("nope", "basic"); err == nil {
		t.Error("Expected error for unknown pending key")
	}
}

func TestClearPending(t *testing.T) {
	s := openStore(t, WithQueueUnmatched(true))

	s.StorePersonalInfo("mysterious_thing", "???")
	s.StorePersonalInfo("another_oddity", 42)

	cleared, err := s.ClearPending()
	if err != nil {
		t.Fatalf("ClearPending: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}
	if len(s.PendingItems()) != 0 {
		t.Error("Queue should be empty after clear")
	}

	// Cleared values are gone for good
	if _, found := s.GetPersonalInfo("mysterious_thing"); found {
		t.Error("Cleared value must not be retrievable")
	}
}
