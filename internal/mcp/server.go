package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fairshare/internal/config"
	"fairshare/internal/imaginator"
	"fairshare/internal/session"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"exploration_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"exploration_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"exploration_select": {
		def:     selectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSelect },
	},
	"exploration_rename": {
		def:     renameToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRename },
	},
	"exploration_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"scenario_set": {
		def:     scenarioSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScenarioSet },
	},
	"targets_compute": {
		def:     targetsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTargetsCompute },
	},
	"story_imagine": {
		def:     imagineToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImagine },
	},
	"story_delete": {
		def:     storyDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStoryDelete },
	},
	"exploration_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"exploration_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given
// list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with fairshare tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(sess *session.Session, im *imaginator.Imaginator, cfg *config.Config, baseDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"fairshare",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(sess, im, baseDir)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(sess *session.Session, im *imaginator.Imaginator, cfg *config.Config, baseDir, version string) error {
	s := NewServer(sess, im, cfg, baseDir, version)
	return server.ServeStdio(s)
}
