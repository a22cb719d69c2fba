package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/personalmemory/memory-mcp/internal/models"
	"github.com/personalmemory/memory-mcp/internal/storage"
)

// ProfileTools holds references needed by the personal-info tool handlers:
// hierarchical storage, misc reorganization, manual moves, and the
// pending-categorization queue.
type ProfileTools struct {
	Store *storage.Store
}

// --- Input types ---

type StorePersonalInfoInput struct {
	Key   string `json:"key" jsonschema:"Key to store under: flat name, legacy-prefixed name, or dot path like book.title"`
	Value any    `json:"value" jsonschema:"Value to store"`
}

type GetPersonalInfoInput struct {
	Key string `json:"key,omitempty" jsonschema:"Key to look up; omit to get the whole personal_info tree"`
}

type MoveItemInput struct {
	SourcePath      string `json:"source_path" jsonschema:"Dotted path of the item to move, e.g. misc.old_key"`
	DestinationPath string `json:"destination_path" jsonschema:"Dotted path of the destination, e.g. basic.new_key"`
}

type CategorizePendingInput struct {
	Key      string `json:"key" jsonschema:"Key of the pending item to categorize"`
	Category string `json:"category" jsonschema:"Category to file the item under, e.g. basic, career, misc"`
}

// --- Output types ---

type statusResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type storeInfoResult struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type getInfoResult struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Found bool   `json:"found"`
}

type infoTreeResult struct {
	PersonalInfo map[string]any `json:"personal_info"`
}

type reorganizeResult struct {
	Status          string `json:"status"`
	Moved           int    `json:"moved"`
	RemainingInMisc int    `json:"remaining_in_misc"`
}

type moveResult struct {
	Status string `json:"status"`
	Value  any    `json:"value"`
}

type pendingListResult struct {
	Status       string               `json:"status"`
	Count        int                  `json:"count"`
	PendingItems []models.PendingItem `json:"pending_items"`
}

type categorizeResult struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	RemainingPending int    `json:"remaining_pending"`
}

type clearPendingResult struct {
	Status  string `json:"status"`
	Cleared int    `json:"cleared"`
}

// --- Handlers ---

func (t *ProfileTools) StorePersonalInfo(_ context.Context, _ *mcp.CallToolRequest, input StorePersonalInfoInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" {
		return toolJSON(statusResult{Status: "error", Message: "Key is required"})
	}

	queued, err := t.Store.StorePersonalInfo(input.Key, input.Value)
	if err != nil {
		return toolError("Failed to store %s: %v", input.Key, err), nil, nil
	}

	message := fmt.Sprintf("Stored %s", input.Key)
	if queued {
		message = fmt.Sprintf("Queued %s for categorization", input.Key)
	}
	return toolJSON(storeInfoResult{
		Status:  "success",
		Message: message,
		Data:    map[string]any{input.Key: input.Value},
	})
}

func (t *ProfileTools) GetPersonalInfo(_ context.Context, _ *mcp.CallToolRequest, input GetPersonalInfoInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" {
		return toolJSON(infoTreeResult{PersonalInfo: t.Store.PersonalInfoTree()})
	}

	value, found := t.Store.GetPersonalInfo(input.Key)
	return toolJSON(getInfoResult{Key: input.Key, Value: value, Found: found})
}

func (t *ProfileTools) ReorganizeMiscItems(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	moved, remaining, err := t.Store.ReorganizeMisc()
	if err != nil {
		return toolError("Failed to reorganize misc items: %v", err), nil, nil
	}

	return toolJSON(reorganizeResult{Status: "success", Moved: moved, RemainingInMisc: remaining})
}

func (t *ProfileTools) MovePersonalInfoItem(_ context.Context, _ *mcp.CallToolRequest, input MoveItemInput) (*mcp.CallToolResult, any, error) {
	if input.SourcePath == "" || input.DestinationPath == "" {
		return toolJSON(statusResult{Status: "error", Message: "Both source_path and destination_path are required"})
	}

	value, err := t.Store.MoveItem(input.SourcePath, input.DestinationPath)
	if err != nil {
		return toolJSON(statusResult{Status: "error", Message: err.Error()})
	}

	return toolJSON(moveResult{Status: "success", Value: value})
}

func (t *ProfileTools) GetPendingCategorization(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	items := t.Store.PendingItems()
	return toolJSON(pendingListResult{Status: "success", Count: len(items), PendingItems: items})
}

func (t *ProfileTools) CategorizePendingItem(_ context.Context, _ *mcp.CallToolRequest, input CategorizePendingInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" || input.Category == "" {
		return toolJSON(statusResult{Status: "error", Message: "Both key and category are required"})
	}

	remaining, err := t.Store.CategorizePending(input.Key, input.Category)
	if err != nil {
		return toolJSON(statusResult{Status: "error", Message: err.Error()})
	}

	return toolJSON(categorizeResult{
		Status:           "success",
		Message:          fmt.Sprintf("Stored %s under %s", input.Key, input.Category),
		RemainingPending: remaining,
	})
}

func (t *ProfileTools) ClearPendingCategorization(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	cleared, err := t.Store.ClearPending()
	if err != nil {
		return toolError("Failed to clear pending items: %v", err), nil, nil
	}

	return toolJSON(clearPendingResult{Status: "success", Cleared: cleared})
}

// --- Helpers ---

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
