package storage

import "strings"

// migrationTable maps each fixed category onto the legacy flat key names that
// belong in it. Order is preserved so migration output is deterministic.
var migrationTable = []struct {
	category string
	keys     []string
}{
	{"basic", []string{
		"name", "woonplaats", "linkedin_profile", "email_infosupport", "email_aigency",
	}},
	{"career", []string{
		"job_title", "full_job_roles", "career_background", "expertise",
		"expertise_areas", "research_interests",
	}},
	{"book", []string{
		"book_title", "book_subtitle", "book_isbn", "book_publisher", "book_year",
		"book_edition", "book_format", "book_language", "book_category",
		"book_summary", "book_learning_outcomes", "book_keywords",
		"book_managementboek_url", "book_publisher_full", "book_boom_url",
		"book_topics_detailed",
	}},
	{"work_roles", []string{
		"aigency_work", "research_center_focus", "dnb_coaching_role",
		"edih_advisory_role", "ai_governance_board_role", "raise_program_role",
	}},
	{"innovations", []string{
		"formula_ai_creator", "formula_ai_concept", "formula_ai_goals",
		"formula_ai_mechanics", "formula_ai_drs_package", "formula_ai_target_audience",
		"ai_experiment_canvas_creator", "ai_experiment_canvas_structure",
		"ai_ideation_workshop_concept", "ai_design_week_process", "workshop_client_testimonials",
	}},
	{"communication", []string{
		"podcast_details", "writing_style", "communication_preferences",
		"critical_attitudes", "positive_attitudes", "personal_projects",
	}},
	{"values_insights", []string{
		"core_values", "key_insights", "methods_frameworks",
	}},
}

// migratePersonalInfo converts a flat personal_info mapping into the
// hierarchical category tree. It runs once: a tree that already has any fixed
// category as a nested mapping is left alone. No key is ever dropped; flat
// keys outside the migration table land in misc unmodified. Returns whether
// the document changed.
func (s *Store) migratePersonalInfo() bool {
	info := s.doc.PersonalInfo

	for _, category := range categoryOrder {
		if _, ok := info[category].(map[string]any); ok {
			return false
		}
	}

	if len(info) == 0 {
		return false
	}

	tree := map[string]any{}
	migrated := map[string]bool{}

	for _, entry := range migrationTable {
		children := map[string]any{}
		for _, key := range entry.keys {
			value, ok := info[key]
			if !ok {
				continue
			}
			// Book keys shed their prefix for a cleaner tree.
			leaf := key
			if strings.HasPrefix(key, "book_") {
				leaf = strings.TrimPrefix(key, "book_")
			}
			children[leaf] = value
			migrated[key] = true
		}
		if len(children) > 0 {
			tree[entry.category] = children
		}
	}

	// Group prefixed innovations leaves into their own subtrees. Other
	// innovations leaves stay where they are.
	if children, ok := tree["innovations"].(map[string]any); ok {
		formulaAI := map[string]any{}
		canvas := map[string]any{}
		for key, value := range children {
			switch {
			case strings.HasPrefix(key, "formula_ai_"):
				formulaAI[strings.TrimPrefix(key, "formula_ai_")] = value
				delete(children, key)
			case strings.HasPrefix(key, "ai_experiment_canvas_"):
				canvas[strings.TrimPrefix(key, "ai_experiment_canvas_")] = value
				delete(children, key)
			}
		}
		if len(formulaAI) > 0 {
			children["formula_ai"] = formulaAI
		}
		if len(canvas) > 0 {
			children["ai_experiment_canvas"] = canvas
		}
	}

	misc := map[string]any{}
	for key, value := range info {
		if !migrated[key] {
			misc[key] = value
		}
	}
	if len(misc) > 0 {
		tree["misc"] = misc
	}

	s.doc.PersonalInfo = tree
	s.log.Info("migrated personal_info to hierarchical structure",
		"migrated_keys", len(migrated), "categories", len(tree))
	return true
}
