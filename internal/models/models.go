package models

// Document is the whole persisted memory document. It is rewritten to disk
// wholesale on every mutation.
type Document struct {
	DocumentID            string                    `json:"document_id,omitempty"`
	PersonalInfo          map[string]any            `json:"personal_info"`
	Preferences           map[string]map[string]any `json:"preferences"`
	Memories              []Memory                  `json:"memories"`
	Relationships         map[string]Relationship   `json:"relationships"`
	Goals                 []Goal                    `json:"goals"`
	PendingCategorization []PendingItem             `json:"pending_categorization,omitempty"`
	CreatedAt             string                    `json:"created_at"`
	LastUpdated           string                    `json:"last_updated"`
}

// Memory is a free-form memory entry. IDs are 1-based and derived from the
// current count, which stays unique because memories are append-only.
type Memory struct {
	ID        int      `json:"id"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Context   string   `json:"context,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Goal is a personal goal entry.
type Goal struct {
	ID        int    `json:"id"`
	Goal      string `json:"goal"`
	Category  string `json:"category"`
	Deadline  string `json:"deadline,omitempty"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Relationship describes a person, keyed by name in the document.
type Relationship struct {
	Type        string         `json:"type"`
	Details     map[string]any `json:"details"`
	CreatedAt   string         `json:"created_at"`
	LastUpdated string         `json:"last_updated"`
}

// PendingItem is a stored value waiting for an explicit category decision
// instead of being auto-filed into misc.
type PendingItem struct {
	Key                string   `json:"key"`
	Value              any      `json:"value"`
	Timestamp          string   `json:"timestamp"`
	SuggestedCategory  string   `json:"suggested_category,omitempty"`
	ExistingCategories []string `json:"existing_categories"`
}

// Stats summarizes everything in the document.
type Stats struct {
	TotalPersonalInfoItems int            `json:"total_personal_info_items"`
	TotalMemories          int            `json:"total_memories"`
	TotalRelationships     int            `json:"total_relationships"`
	TotalGoals             int            `json:"total_goals"`
	GoalBreakdown          map[string]int `json:"goal_breakdown"`
	PreferenceCategories   int            `json:"preference_categories"`
	PendingCategorization  int            `json:"pending_categorization"`
	CreatedAt              string         `json:"created_at"`
	LastUpdated            string         `json:"last_updated"`
	StorageFile            string         `json:"storage_file"`
}
