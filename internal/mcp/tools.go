package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("exploration_list",
	mcp.WithDescription("List all explorations, newest first, with the active exploration id."),
)

var createToolDef = mcp.NewTool("exploration_create",
	mcp.WithDescription("Create a new exploration with default fields and make it active."),
)

var selectToolDef = mcp.NewTool("exploration_select",
	mcp.WithDescription("Switch the active exploration."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exploration id to activate")),
)

var renameToolDef = mcp.NewTool("exploration_rename",
	mcp.WithDescription("Rename an exploration. Empty names are rejected."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exploration id")),
	mcp.WithString("name", mcp.Required(), mcp.Description("New display name")),
)

var deleteToolDef = mcp.NewTool("exploration_delete",
	mcp.WithDescription("Delete an exploration. Deleting the last one synthesizes a fresh default exploration."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exploration id")),
)

var scenarioSetToolDef = mcp.NewTool("scenario_set",
	mcp.WithDescription("Merge scenario fields into the active exploration. Omitted fields are left unchanged."),
	mcp.WithString("country_code", mcp.Description("Country code from the reference table; empty string clears the selection")),
	mcp.WithBoolean("grid", mcp.Description("Clean electricity grid structural change")),
	mcp.WithBoolean("transport", mcp.Description("Electrified transport structural change")),
	mcp.WithBoolean("food", mcp.Description("Transformed food system structural change")),
	mcp.WithNumber("participation_rate", mcp.Description("Participation percentage, 1-100")),
)

var targetsToolDef = mcp.NewTool("targets_compute",
	mcp.WithDescription("Compute adjusted emissions, personal target, and the matching lifestyle tier for the active exploration."),
)

var imagineToolDef = mcp.NewTool("story_imagine",
	mcp.WithDescription("Generate a story for the active exploration's personal target. One generation at a time; a concurrent call is rejected."),
	mcp.WithString("genre", mcp.Description("Story genre; defaults to Hopeful Solarpunk")),
)

var storyDeleteToolDef = mcp.NewTool("story_delete",
	mcp.WithDescription("Delete a generated story from an exploration."),
	mcp.WithString("exploration_id", mcp.Required(), mcp.Description("Exploration id")),
	mcp.WithString("story_id", mcp.Required(), mcp.Description("Story id")),
)

var exportToolDef = mcp.NewTool("exploration_export",
	mcp.WithDescription("Export the collection to a versioned JSON file."),
	mcp.WithString("path", mcp.Description("Destination path; defaults to a dated file under the exports directory")),
)

var importToolDef = mcp.NewTool("exploration_import",
	mcp.WithDescription("Replace the collection with the contents of a JSON export file. A rejected file leaves the current state untouched."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file to import")),
)
