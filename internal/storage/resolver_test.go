package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s := openStore(t)

	keys := []string{"basic.name", "book.title", "innovations.formula_ai.concept", "favorite_color"}
	for _, key := range keys {
		if _, err := s.StorePersonalInfo(key, "value of "+key); err != nil {
			t.Fatalf("StorePersonalInfo(%s): %v", key, err)
		}
		value, found := s.GetPersonalInfo(key)
		if !found {
			t.Errorf("GetPersonalInfo(%s): not found after store", key)
			continue
		}
		if value != "value of "+key {
			t.Errorf("GetPersonalInfo(%s) = %v, want %q", key, value, "value of "+key)
		}
	}
}

func TestLegacyEquivalence(t *testing.T) {
	s := openStore(t)

	// Stored at the dotted path, readable via the legacy prefixed name
	s.StorePersonalInfo("book.author", "Anna de Vries")
	value, found := s.GetPersonalInfo("book_author")
	if !found || value != "Anna de Vries" {
		t.Errorf("GetPersonalInfo(book_author) = (%v, %v), want (Anna de Vries, true)", value, found)
	}

	// Stored via the prefixed name, readable at the dotted path
	s.StorePersonalInfo("book_isbn", "978-90-000")
	value, found = s.GetPersonalInfo("book.isbn")
	if !found || value != "978-90-000" {
		t.Errorf("GetPersonalInfo(book.isbn) = (%v, %v), want (978-90-000, true)", value, found)
	}

	// Bare migrated leaf names resolve through the category scan
	value, found = s.GetPersonalInfo("author")
	if !found || value != "Anna de Vries" {
		t.Errorf("GetPersonalInfo(author) = (%v, %v), want (Anna de Vries, true)", value, found)
	}
}

func TestLegacyFlatKeyTable(t *testing.T) {
	s := openStore(t)

	s.StorePersonalInfo("job_title", "Research Lead")
	value, found := s.GetPersonalInfo("career.job_title")
	if !found || value != "Research Lead" {
		t.Errorf("job_title should land under career: (%v, %v)", value, found)
	}

	s.StorePersonalInfo("formula_ai_mechanics", "sprints")
	value, found = s.GetPersonalInfo("innovations.formula_ai.mechanics")
	if !found || value != "sprints" {
		t.Errorf("formula_ai_ prefix should land under innovations.formula_ai: (%v, %v)", value, found)
	}

	s.StorePersonalInfo("ai_experiment_canvas_structure", "9 blocks")
	value, found = s.GetPersonalInfo("innovations.ai_experiment_canvas.structure")
	if !found || value != "9 blocks" {
		t.Errorf("ai_experiment_canvas_ prefix should land under innovations.ai_experiment_canvas: (%v, %v)", value, found)
	}
}

func TestCategorySuggestion(t *testing.T) {
	tests := []struct {
		key      string
		category string
	}{
		{"phone_number", "basic"},
		{"secondary_email", "basic"},
		{"new_project", "innovations"},
		{"core_principle", "values_insights"},
		{"speaking_engagements", "communication"},
		{"dream_company", "career"},
		{"isbn_secondary", "book"},
		{"completely_unrelated", ""},
	}
	for _, tt := range tests {
		if got := suggestCategory(tt.key); got != tt.category {
			t.Errorf("suggestCategory(%s) = %q, want %q", tt.key, got, tt.category)
		}
	}
}

func TestSuggestionPlacement(t *testing.T) {
	s := openStore(t)

	s.StorePersonalInfo("phone_number", "06-12345678")
	if _, found := s.GetPersonalInfo("basic.phone_number"); !found {
		t.Error("phone_number should be placed under basic")
	}

	s.StorePersonalInfo("new_project", "memory server")
	if _, found := s.GetPersonalInfo("innovations.new_project"); !found {
		t.Error("new_project should be placed under innovations")
	}

	s.StorePersonalInfo("core_principle", "simplicity")
	if _, found := s.GetPersonalInfo("values_insights.core_principle"); !found {
		t.Error("core_principle should be placed under values_insights")
	}

	// No rule matches: lands in misc, still retrievable by its bare name
	s.StorePersonalInfo("favorite_color", "green")
	if _, found := s.GetPersonalInfo("misc.favorite_color"); !found {
		t.Error("favorite_color should be placed under misc")
	}
	if _, found := s.GetPersonalInfo("favorite_color"); !found {
		t.Error("favorite_color should resolve through the legacy scan")
	}
}

func TestDotPathOverwritesLeafWithMap(t *testing.T) {
	s := openStore(t)

	s.StorePersonalInfo("basic.name", "Anna")
	// Writing below an existing leaf replaces it with a map: last writer wins
	s.StorePersonalInfo("basic.name.first", "Anna")
	value, found := s.GetPersonalInfo("basic.name.first")
	if !found || value != "Anna" {
		t.Errorf("GetPersonalInfo(basic.name.first) = (%v, %v), want (Anna, true)", value, found)
	}
}

func TestPartialPathIsNotFound(t *testing.T) {
	s := openStore(t)

	s.StorePersonalInfo("book.title", "AI in Practice")
	if _, found := s.GetPersonalInfo("book.title.subtitle"); found {
		t.Error("Path running past a leaf should not be found")
	}
	if _, found := s.GetPersonalInfo("book.missing"); found {
		t.Error("Missing leaf should not be found")
	}
}

func TestReorganizeMisc(t *testing.T) {
	s := openStore(t)

	// Seed misc directly with three categorizable leaves and two that are not
	for key, value := range map[string]any{
		"misc.email_backup":  "backup@example.com",
		"misc.ai_tool":       "canvas kit",
		"misc.core_value":    "curiosity",
		"misc.random_item":   "???",
		"misc.unknown_thing": "???",
	} {
		if _, err := s.StorePersonalInfo(key, value); err != nil {
			t.Fatal(err)
		}
	}

	moved, remaining, err := s.ReorganizeMisc()
	if err != nil {
		t.Fatalf("ReorganizeMisc: %v", err)
	}
	if moved != 3 {
		t.Errorf("moved = %d, want 3", moved)
	}
	if remaining != 2 {
		t.Errorf("remaining = %d, want 2", remaining)
	}

	if _, found := s.GetPersonalInfo("basic.email_backup"); !found {
		t.Error("email_backup should have moved to basic")
	}
	if _, found := s.GetPersonalInfo("innovations.ai_tool"); !found {
		t.Error("ai_tool should have moved to innovations")
	}
	if _, found := s.GetPersonalInfo("values_insights.core_value"); !found {
		t.Error("core_value should have moved to values_insights")
	}
	if _, found := s.GetPersonalInfo("misc.random_item"); !found {
		t.Error("random_item should remain in misc")
	}
}

func TestMoveItem(t *testing.T) {
	s := openStore(t)

	s.StorePersonalInfo("misc.test_item", "movable")
	value, err := s.MoveItem("misc.test_item", "basic.moved_item")
	if err != nil {
		t.Fatalf("MoveItem: %v", err)
	}
	if value != "movable" {
		t.Errorf("MoveItem returned %v, want movable", value)
	}

	if _, found := s.GetPersonalInfo("misc.test_item"); found {
		t.Error("Source should be gone after move")
	}
	got, found := s.GetPersonalInfo("basic.moved_item")
	if !found || got != "movable" {
		t.Errorf("Destination = (%v, %v), want (movable, true)", got, found)
	}
}

func TestTreeSnapshotIsDetached(t *testing.T) {
	s := openStore(t)

	s.StorePersonalInfo("basic.name", "Anna")

	tree := s.PersonalInfoTree()
	basic := tree["basic"].(map[string]any)
	basic["name"] = "tampered"
	basic["extra"] = "x"

	if value, _ := s.GetPersonalInfo("basic.name"); value != "Anna" {
		t.Errorf("Mutating a snapshot changed the store: basic.name = %v", value)
	}
	if _, found := s.GetPersonalInfo("basic.extra"); found {
		t.Error("Mutating a snapshot added a key to the store")
	}

	// Interior nodes returned by key lookup are detached too
	node, found := s.GetPersonalInfo("basic")
	if !found {
		t.Fatal("basic category should exist")
	}
	node.(map[string]any)["name"] = "tampered"
	if value, _ := s.GetPersonalInfo("basic.name"); value != "Anna" {
		t.Errorf("Mutating a looked-up node changed the store: basic.name = %v", value)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := openStore(t)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := json.Marshal(s.PersonalInfoTree()); err != nil {
				t.Errorf("Marshal during concurrent writes: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		if _, err := s.StorePersonalInfo(fmt.Sprintf("basic.key_%d", i), i); err != nil {
			t.Errorf("StorePersonalInfo: %v", err)
			break
		}
	}
	close(done)
	wg.Wait()
}

func TestMoveItemMissingSource(t *testing.T) {
	s := openStore(t)

	if _, err := s.MoveItem("misc.nope", "basic.whatever"); err == nil {
		t.Error("Expected error for missing source path")
	}
}
