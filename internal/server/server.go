package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/personalmemory/memory-mcp/internal/storage"
	"github.com/personalmemory/memory-mcp/internal/tools"
)

// New creates a fully configured MCP server with all tools registered.
func New(store *storage.Store) *mcp.Server {
	pt := &tools.ProfileTools{Store: store}
	rt := &tools.RecordTools{Store: store}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "personal-memory-mcp",
		Version: "0.1.0",
	}, nil)

	// Personal info and tree organization tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "store_personal_info",
		Description: "Store personal information with a key-value pair; keys may be flat names, legacy-prefixed names, or dot paths like book.title",
	}, pt.StorePersonalInfo)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_personal_info",
		Description: "Retrieve personal information by key, or the whole personal_info tree when no key is given",
	}, pt.GetPersonalInfo)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "reorganize_misc_items",
		Description: "Re-run category suggestion over everything in the misc bucket and move categorizable items into their category",
	}, pt.ReorganizeMiscItems)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "move_personal_info_item",
		Description: "Move a personal info item from one dotted path to another, creating intermediate categories as needed",
	}, pt.MovePersonalInfoItem)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_pending_categorization",
		Description: "List items waiting for an explicit category decision",
	}, pt.GetPendingCategorization)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "categorize_pending_item",
		Description: "File a pending item under the chosen category and remove it from the queue",
	}, pt.CategorizePendingItem)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "clear_pending_categorization",
		Description: "Discard all pending items WITHOUT storing their values (data loss, cannot be undone)",
	}, pt.ClearPendingCategorization)

	// Preference, memory, relationship, and goal tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "store_preference",
		Description: "Store a preference in a specific category (e.g., food, music, work)",
	}, rt.StorePreference)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_preferences",
		Description: "Retrieve preferences, optionally filtered by category",
	}, rt.GetPreferences)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_memory",
		Description: "Add a memory entry with optional tags and context",
	}, rt.AddMemory)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_memories",
		Description: "Search memories by content substring or tags, newest first",
	}, rt.SearchMemories)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "store_relationship",
		Description: "Store information about a relationship with someone",
	}, rt.StoreRelationship)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_relationships",
		Description: "Retrieve relationship information, optionally for a single name",
	}, rt.GetRelationships)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "add_goal",
		Description: "Add a personal goal with category and optional deadline",
	}, rt.AddGoal)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_goals",
		Description: "Retrieve goals with optional filtering by status or category",
	}, rt.GetGoals)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_goal_status",
		Description: "Update the status of a goal (active, completed, paused, cancelled)",
	}, rt.UpdateGoalStatus)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_memory_stats",
		Description: "Get statistics and overview of all stored memory data",
	}, rt.GetMemoryStats)

	return srv
}
