package storage

import (
	"fmt"
	"sort"
	"strings"
)

// The key resolution engine maps arbitrary string keys (flat, legacy-prefixed,
// or dot-paths) onto locations in the personal_info category tree. A node in
// the tree is either a leaf value or a map, never both.

// Fixed top-level categories of the personal_info tree. Order matters: legacy
// fallback lookups and the misc sweep iterate categories in this order so
// resolution stays deterministic.
var categoryOrder = []string{
	"basic",
	"career",
	"book",
	"work_roles",
	"innovations",
	"communication",
	"values_insights",
	"misc",
}

// legacyKeyPaths maps well-known flat key names onto their hierarchical
// locations. Exact matches only.
var legacyKeyPaths = map[string]string{
	// Basic info
	"name":              "basic.name",
	"woonplaats":        "basic.woonplaats",
	"linkedin_profile":  "basic.linkedin_profile",
	"email_infosupport": "basic.email_infosupport",
	"email_aigency":     "basic.email_aigency",

	// Career info
	"job_title":          "career.job_title",
	"full_job_roles":     "career.full_job_roles",
	"career_background":  "career.career_background",
	"expertise":          "career.expertise",
	"expertise_areas":    "career.expertise_areas",
	"research_interests": "career.research_interests",
}

// prefixPaths maps well-known key prefixes onto the subtree the remainder of
// the key belongs in. First match wins.
var prefixPaths = []struct {
	prefix string
	base   string
}{
	{"book_", "book"},
	{"formula_ai_", "innovations.formula_ai"},
	{"ai_experiment_canvas_", "innovations.ai_experiment_canvas"},
}

// suggestionRules pairs a predicate over the lower-cased key with the
// category it indicates, evaluated in priority order so the first matching
// rule wins.
var suggestionRules = []struct {
	category string
	match    func(string) bool
}{
	{"basic", containsAny("email", "phone", "address", "contact", "location")},
	{"career", containsAny("job", "work", "career", "role", "position", "company")},
	{"book", func(key string) bool {
		return strings.HasPrefix(key, "book_") || containsAny("publication", "isbn", "publisher")(key)
	}},
	{"innovations", containsAny("project", "innovation", "tool", "framework", "canvas")},
	{"communication", containsAny("communication", "style", "preference", "podcast", "speaking")},
	{"values_insights", containsAny("value", "insight", "principle", "belief", "method")},
}

func containsAny(keywords ...string) func(string) bool {
	return func(key string) bool {
		for _, kw := range keywords {
			if strings.Contains(key, kw) {
				return true
			}
		}
		return false
	}
}

// suggestCategory inspects a key name for domain naming patterns and returns
// the matching category, or "" when no rule applies.
func suggestCategory(key string) string {
	lower := strings.ToLower(key)
	for _, rule := range suggestionRules {
		if rule.match(lower) {
			return rule.category
		}
	}
	return ""
}

// orderedCategories returns the top-level keys of the tree: fixed categories
// first in canonical order, then anything else sorted by name.
func orderedCategories(info map[string]any) []string {
	fixed := map[string]bool{}
	var out []string
	for _, name := range categoryOrder {
		fixed[name] = true
		if _, ok := info[name]; ok {
			out = append(out, name)
		}
	}
	var rest []string
	for name := range info {
		if !fixed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// copyValue deep-copies the map and slice containers of a tree value.
// Accessors return copies so callers never alias the live document; the
// HTTP transport marshals results outside the store lock.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = copyValue(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = copyValue(child)
		}
		return out
	default:
		return v
	}
}

// descend walks a dot-path through nested maps. It fails as soon as a segment
// is missing or an intermediate node is not a map; partial matches are not
// returned.
func descend(info map[string]any, parts []string) (any, bool) {
	var cur any = info
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath writes a value at a dot-path, creating intermediate maps as needed.
// An intermediate leaf in the way is overwritten with an empty map: last
// writer wins.
func setPath(info map[string]any, parts []string, value any) {
	cur := info
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// lookupPersonalValue resolves a key against the tree. Resolution order:
// exact top-level match, dot-path traversal, then the legacy fallback scan
// over every category's direct children (bare migrated leaf names as well as
// "{category}_{leaf}" and "book_{leaf}" forms).
func lookupPersonalValue(info map[string]any, key string) (any, bool) {
	if v, ok := info[key]; ok {
		return v, true
	}

	if strings.Contains(key, ".") {
		if v, ok := descend(info, strings.Split(key, ".")); ok {
			return v, true
		}
	}

	for _, category := range orderedCategories(info) {
		children, ok := info[category].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := children[key]; ok {
			return v, true
		}
		names := make([]string, 0, len(children))
		for name := range children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if key == category+"_"+name || key == "book_"+name {
				return children[name], true
			}
		}
	}

	return nil, false
}

// setPersonalValue resolves where a key belongs and writes the value there.
// Flat keys go through the legacy table, the prefix table, and the category
// suggestion rules in that order; with no match the value lands in misc, or
// in the pending queue when the store is configured to queue unmatched keys.
// The boolean reports whether the value was queued instead of stored.
func (s *Store) setPersonalValue(key string, value any) bool {
	info := s.doc.PersonalInfo

	if strings.Contains(key, ".") {
		setPath(info, strings.Split(key, "."), value)
		return false
	}

	if target, ok := legacyKeyPaths[key]; ok {
		setPath(info, strings.Split(target, "."), value)
		return false
	}

	for _, p := range prefixPaths {
		if strings.HasPrefix(key, p.prefix) {
			parts := append(strings.Split(p.base, "."), strings.TrimPrefix(key, p.prefix))
			setPath(info, parts, value)
			return false
		}
	}

	if category := suggestCategory(key); category != "" {
		setPath(info, []string{category, key}, value)
		return false
	}

	if s.queueUnmatched {
		s.appendPending(key, value)
		return true
	}

	setPath(info, []string{"misc", key}, value)
	return false
}

// StorePersonalInfo stores a value under the resolved location for key.
// It never fails to find a home for the value; the boolean reports whether
// the value went to the pending-categorization queue instead of the tree.
func (s *Store) StorePersonalInfo(key string, value any) (queued bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queued = s.setPersonalValue(key, value)
	if err := s.save(); err != nil {
		return queued, err
	}
	return queued, nil
}

// GetPersonalInfo resolves a key to a value. found=false carries no value.
// Interior nodes come back as detached copies.
func (s *Store) GetPersonalInfo(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := lookupPersonalValue(s.doc.PersonalInfo, key)
	if !ok {
		return nil, false
	}
	return copyValue(v), true
}

// PersonalInfoTree returns a detached snapshot of the whole category tree.
func (s *Store) PersonalInfoTree() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyValue(s.doc.PersonalInfo).(map[string]any)
}

// ReorganizeMisc re-runs the category suggestion rules against every leaf in
// the misc bucket, moving those with a suggestion into their category.
// It reports how many leaves moved and how many remain in misc.
func (s *Store) ReorganizeMisc() (moved, remaining int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.doc.PersonalInfo
	misc, ok := info["misc"].(map[string]any)
	if !ok {
		return 0, 0, nil
	}

	names := make([]string, 0, len(misc))
	for name := range misc {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		category := suggestCategory(name)
		if category == "" || category == "misc" {
			continue
		}
		setPath(info, []string{category, name}, misc[name])
		delete(misc, name)
		moved++
	}
	remaining = len(misc)

	if moved > 0 {
		if err := s.save(); err != nil {
			return moved, remaining, err
		}
	}
	return moved, remaining, nil
}

// MoveItem moves the value at a fully qualified source path to a destination
// path, creating intermediate nodes at the destination. Emptied intermediate
// nodes at the source are not pruned.
func (s *Store) MoveItem(source, destination string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.doc.PersonalInfo
	parts := strings.Split(source, ".")

	parent := info
	for _, part := range parts[:len(parts)-1] {
		next, ok := parent[part].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("source path %q not found", source)
		}
		parent = next
	}
	leaf := parts[len(parts)-1]
	value, ok := parent[leaf]
	if !ok {
		return nil, fmt.Errorf("source path %q not found", source)
	}

	delete(parent, leaf)
	setPath(info, strings.Split(destination, "."), value)

	if err := s.save(); err != nil {
		return nil, err
	}
	return value, nil
}
