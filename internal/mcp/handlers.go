package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"fairshare/internal/climate"
	"fairshare/internal/errors"
	"fairshare/internal/imaginator"
	"fairshare/internal/session"
	"fairshare/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	sess    *session.Session
	im      *imaginator.Imaginator
	baseDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sess *session.Session, im *imaginator.Imaginator, baseDir string) *Handlers {
	return &Handlers{sess: sess, im: im, baseDir: baseDir}
}

// Request types for each tool

// SelectRequest represents the arguments for exploration_select.
type SelectRequest struct {
	ID string `json:"id"`
}

// RenameRequest represents the arguments for exploration_rename.
type RenameRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeleteRequest represents the arguments for exploration_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// ScenarioSetRequest represents the arguments for scenario_set.
type ScenarioSetRequest struct {
	CountryCode       *string `json:"country_code,omitempty"`
	Grid              *bool   `json:"grid,omitempty"`
	Transport         *bool   `json:"transport,omitempty"`
	Food              *bool   `json:"food,omitempty"`
	ParticipationRate *int    `json:"participation_rate,omitempty"`
}

// ImagineRequest represents the arguments for story_imagine.
type ImagineRequest struct {
	Genre string `json:"genre,omitempty"`
}

// StoryDeleteRequest represents the arguments for story_delete.
type StoryDeleteRequest struct {
	ExplorationID string `json:"exploration_id"`
	StoryID       string `json:"story_id"`
}

// ExportRequest represents the arguments for exploration_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for exploration_import.
type ImportRequest struct {
	Path string `json:"path"`
}

// Handler implementations

// HandleList handles the exploration_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{
		"explorations": h.sess.List(),
		"active_id":    h.sess.ActiveID(),
	})
}

// HandleCreate handles the exploration_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e := h.sess.Create(ctx)
	return successResult(e)
}

// HandleSelect handles the exploration_select tool call.
func (h *Handlers) HandleSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SelectRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if _, err := h.sess.Get(input.ID); err != nil {
		return errorResult(err), nil
	}
	h.sess.SetActive(input.ID)
	return successResult(map[string]any{"active_id": input.ID})
}

// HandleRename handles the exploration_rename tool call.
func (h *Handlers) HandleRename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RenameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if err := h.sess.Rename(ctx, input.ID, input.Name); err != nil {
		return errorResult(err), nil
	}
	e, err := h.sess.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(e)
}

// HandleDelete handles the exploration_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if err := h.sess.Delete(ctx, input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{
		"deleted":   input.ID,
		"active_id": h.sess.ActiveID(),
	})
}

// HandleScenarioSet handles the scenario_set tool call.
func (h *Handlers) HandleScenarioSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScenarioSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	patch := session.Patch{
		CountryCode:       input.CountryCode,
		Grid:              input.Grid,
		Transport:         input.Transport,
		Food:              input.Food,
		ParticipationRate: input.ParticipationRate,
	}
	if err := h.sess.UpdateActive(ctx, patch); err != nil {
		return errorResult(err), nil
	}
	return successResult(h.sess.Active())
}

// HandleTargetsCompute handles the targets_compute tool call.
func (h *Handlers) HandleTargetsCompute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active := h.sess.Active()
	derived := climate.Derive(active)
	tier := climate.TierFor(derived.PersonalTarget)

	return successResult(map[string]any{
		"exploration_id":     active.ID,
		"adjusted_emissions": derived.AdjustedEmissions,
		"personal_target":    derived.PersonalTarget,
		"is_impossible":      derived.Impossible,
		"lifestyle_tier":     tier.Title,
	})
}

// HandleImagine handles the story_imagine tool call.
func (h *Handlers) HandleImagine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImagineRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Genre == "" {
		input.Genre = imaginator.DefaultGenre
	}
	if h.im == nil {
		return errorResult(errors.NewInvalidRequest("story generation is not configured; set OPENAI_API_KEY")), nil
	}

	story, err := h.im.Imagine(ctx, input.Genre)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(story)
}

// HandleStoryDelete handles the story_delete tool call.
func (h *Handlers) HandleStoryDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StoryDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if err := h.sess.DeleteStory(ctx, input.ExplorationID, input.StoryID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"deleted": input.StoryID})
}

// HandleExport handles the exploration_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	path := input.Path
	if path == "" {
		path = store.DefaultExportPath(h.baseDir, time.Now())
	}
	written, err := h.sess.Export(path)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"path": written})
}

// HandleImport handles the exploration_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	count, err := h.sess.Import(ctx, input.Path)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{
		"imported":  count,
		"active_id": h.sess.ActiveID(),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error. Internal error
// details are not exposed to avoid leaking file paths or SQL errors.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if fErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    fErr.Code,
			"message": fErr.Message,
			"status":  fErr.Status,
		}
		if fErr.Code != errors.ErrInternal && fErr.Details != nil {
			errorObj["details"] = fErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{"error": map[string]any{
			"code":    errors.ErrInternal,
			"message": "internal error",
			"status":  500,
		}}
	}

	result, jsonErr := mcp.NewToolResultJSON(payload)
	if jsonErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	result.IsError = true
	return result
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
