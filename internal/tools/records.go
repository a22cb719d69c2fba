package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/personalmemory/memory-mcp/internal/models"
	"github.com/personalmemory/memory-mcp/internal/storage"
)

// RecordTools holds references needed by the preference, memory,
// relationship, goal, and stats tool handlers.
type RecordTools struct {
	Store *storage.Store
}

// --- Input types ---

type StorePreferenceInput struct {
	Category   string `json:"category" jsonschema:"Preference category, e.g. food, music, work"`
	Preference string `json:"preference" jsonschema:"Preference name"`
	Value      any    `json:"value" jsonschema:"Preference value"`
}

type GetPreferencesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Category to fetch; omit for all categories"`
}

type AddMemoryInput struct {
	Content string   `json:"content" jsonschema:"Memory content"`
	Tags    []string `json:"tags,omitempty" jsonschema:"Optional tags for later lookup"`
	Context string   `json:"context,omitempty" jsonschema:"Optional context the memory belongs to"`
}

type SearchMemoriesInput struct {
	Query string   `json:"query,omitempty" jsonschema:"Case-insensitive substring to match against memory content"`
	Tags  []string `json:"tags,omitempty" jsonschema:"Tags to match (case-insensitive membership)"`
	Limit int      `json:"limit,omitempty" jsonschema:"Maximum number of results, default 10"`
}

type StoreRelationshipInput struct {
	Name             string         `json:"name" jsonschema:"Name of the person"`
	RelationshipType string         `json:"relationship_type" jsonschema:"Relationship type, e.g. colleague, friend, family"`
	Details          map[string]any `json:"details,omitempty" jsonschema:"Optional free-form details"`
}

type GetRelationshipsInput struct {
	Name string `json:"name,omitempty" jsonschema:"Name to look up; omit for all relationships"`
}

type AddGoalInput struct {
	Goal     string `json:"goal" jsonschema:"Goal description"`
	Category string `json:"category,omitempty" jsonschema:"Goal category, default general"`
	Deadline string `json:"deadline,omitempty" jsonschema:"Optional deadline"`
	Priority string `json:"priority,omitempty" jsonschema:"Priority, default medium"`
}

type GetGoalsInput struct {
	Status   string `json:"status,omitempty" jsonschema:"Filter by status: active, completed, paused, cancelled"`
	Category string `json:"category,omitempty" jsonschema:"Filter by category"`
}

type UpdateGoalStatusInput struct {
	GoalID int    `json:"goal_id" jsonschema:"ID of the goal to update"`
	Status string `json:"status" jsonschema:"New status: active, completed, paused, or cancelled"`
}

// --- Output types ---

type preferencesResult struct {
	Category    string         `json:"category"`
	Preferences map[string]any `json:"preferences"`
	Found       bool           `json:"found"`
}

type allPreferencesResult struct {
	Preferences map[string]map[string]any `json:"preferences"`
}

type addMemoryResult struct {
	Status   string        `json:"status"`
	MemoryID int           `json:"memory_id"`
	Memory   models.Memory `json:"memory"`
}

type searchMemoriesResult struct {
	Memories      []models.Memory `json:"memories"`
	Count         int             `json:"count"`
	TotalMemories int             `json:"total_memories"`
}

type relationshipResult struct {
	Status       string              `json:"status"`
	Message      string              `json:"message"`
	Relationship models.Relationship `json:"relationship"`
}

type getRelationshipResult struct {
	Name         string               `json:"name"`
	Relationship *models.Relationship `json:"relationship"`
	Found        bool                 `json:"found"`
}

type allRelationshipsResult struct {
	Relationships map[string]models.Relationship `json:"relationships"`
}

type addGoalResult struct {
	Status string      `json:"status"`
	GoalID int         `json:"goal_id"`
	Goal   models.Goal `json:"goal"`
}

type goalsResult struct {
	Goals []models.Goal `json:"goals"`
	Count int           `json:"count"`
}

type updateGoalResult struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Goal    models.Goal `json:"goal"`
}

// --- Handlers ---

func (t *RecordTools) StorePreference(_ context.Context, _ *mcp.CallToolRequest, input StorePreferenceInput) (*mcp.CallToolResult, any, error) {
	if input.Category == "" || input.Preference == "" {
		return toolJSON(statusResult{Status: "error", Message: "Both category and preference are required"})
	}

	if err := t.Store.StorePreference(input.Category, input.Preference, input.Value); err != nil {
		return toolError("Failed to store preference: %v", err), nil, nil
	}

	return toolJSON(statusResult{
		Status:  "success",
		Message: fmt.Sprintf("Stored preference %s.%s", input.Category, input.Preference),
	})
}

func (t *RecordTools) GetPreferences(_ context.Context, _ *mcp.CallToolRequest, input GetPreferencesInput) (*mcp.CallToolResult, any, error) {
	if input.Category == "" {
		return toolJSON(allPreferencesResult{Preferences: t.Store.AllPreferences()})
	}

	prefs, found := t.Store.Preferences(input.Category)
	return toolJSON(preferencesResult{Category: input.Category, Preferences: prefs, Found: found})
}

func (t *RecordTools) AddMemory(_ context.Context, _ *mcp.CallToolRequest, input AddMemoryInput) (*mcp.CallToolResult, any, error) {
	if input.Content == "" {
		return toolJSON(statusResult{Status: "error", Message: "Content is required"})
	}

	memory, err := t.Store.AddMemory(input.Content, input.Tags, input.Context)
	if err != nil {
		return toolError("Failed to add memory: %v", err), nil, nil
	}

	return toolJSON(addMemoryResult{Status: "success", MemoryID: memory.ID, Memory: memory})
}

func (t *RecordTools) SearchMemories(_ context.Context, _ *mcp.CallToolRequest, input SearchMemoriesInput) (*mcp.CallToolResult, any, error) {
	memories, total := t.Store.SearchMemories(input.Query, input.Tags, input.Limit)
	return toolJSON(searchMemoriesResult{Memories: memories, Count: len(memories), TotalMemories: total})
}

func (t *RecordTools) StoreRelationship(_ context.Context, _ *mcp.CallToolRequest, input StoreRelationshipInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolJSON(statusResult{Status: "error", Message: "Name is required"})
	}

	rel, err := t.Store.StoreRelationship(input.Name, input.RelationshipType, input.Details)
	if err != nil {
		return toolError("Failed to store relationship: %v", err), nil, nil
	}

	return toolJSON(relationshipResult{
		Status:       "success",
		Message:      fmt.Sprintf("Stored relationship with %s", input.Name),
		Relationship: rel,
	})
}

func (t *RecordTools) GetRelationships(_ context.Context, _ *mcp.CallToolRequest, input GetRelationshipsInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolJSON(allRelationshipsResult{Relationships: t.Store.Relationships()})
	}

	rel, found := t.Store.Relationship(input.Name)
	result := getRelationshipResult{Name: input.Name, Found: found}
	if found {
		result.Relationship = &rel
	}
	return toolJSON(result)
}

func (t *RecordTools) AddGoal(_ context.Context, _ *mcp.CallToolRequest, input AddGoalInput) (*mcp.CallToolResult, any, error) {
	if input.Goal == "" {
		return toolJSON(statusResult{Status: "error", Message: "Goal is required"})
	}

	goal, err := t.Store.AddGoal(input.Goal, input.Category, input.Deadline, input.Priority)
	if err != nil {
		return toolError("Failed to add goal: %v", err), nil, nil
	}

	return toolJSON(addGoalResult{Status: "success", GoalID: goal.ID, Goal: goal})
}

func (t *RecordTools) GetGoals(_ context.Context, _ *mcp.CallToolRequest, input GetGoalsInput) (*mcp.CallToolResult, any, error) {
	goals := t.Store.Goals(input.Status, input.Category)
	return toolJSON(goalsResult{Goals: goals, Count: len(goals)})
}

func (t *RecordTools) UpdateGoalStatus(_ context.Context, _ *mcp.CallToolRequest, input UpdateGoalStatusInput) (*mcp.CallToolResult, any, error) {
	goal, err := t.Store.UpdateGoalStatus(input.GoalID, input.Status)
	if err != nil {
		return toolJSON(statusResult{Status: "error", Message: err.Error()})
	}

	return toolJSON(updateGoalResult{
		Status:  "success",
		Message: fmt.Sprintf("Goal %d status updated to %s", goal.ID, goal.Status),
		Goal:    goal,
	})
}

func (t *RecordTools) GetMemoryStats(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Store.Stats())
}
