package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"fairshare/internal/config"
	"fairshare/internal/session"
	"fairshare/internal/store"
)

// testSetup creates handlers over an in-memory session.
func testSetup(t *testing.T) (*Handlers, *session.Session) {
	t.Helper()
	sess := session.New(context.Background(), store.NewMemory())
	h := NewHandlers(sess, nil, t.TempDir())
	return h, sess
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultJSON decodes the first text content of a tool result into a map.
func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not TextContent: %T", result.Content[0])
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	return payload
}

// errorCode extracts the structured error code from an error result.
func errorCode(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if !result.IsError {
		t.Fatal("result is not an error")
	}
	payload := resultJSON(t, result)
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("payload has no error object: %v", payload)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestDecode(t *testing.T) {
	req := makeRequest(map[string]any{"id": "abc", "name": "New Name"})

	input, err := decode[RenameRequest](req)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if input.ID != "abc" || input.Name != "New Name" {
		t.Errorf("decoded = %+v", input)
	}
}

func TestDecode_OmittedFieldsStayNil(t *testing.T) {
	req := makeRequest(map[string]any{"grid": true})

	input, err := decode[ScenarioSetRequest](req)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if input.Grid == nil || !*input.Grid {
		t.Error("Grid not decoded")
	}
	if input.CountryCode != nil || input.ParticipationRate != nil {
		t.Errorf("omitted fields decoded non-nil: %+v", input)
	}
}

func TestHandleList(t *testing.T) {
	h, sess := testSetup(t)

	result, err := h.HandleList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleList: %v", err)
	}

	payload := resultJSON(t, result)
	if payload["active_id"] != sess.ActiveID() {
		t.Errorf("active_id = %v, want %q", payload["active_id"], sess.ActiveID())
	}
	exps, ok := payload["explorations"].([]any)
	if !ok || len(exps) != 1 {
		t.Errorf("explorations = %v, want one entry", payload["explorations"])
	}
}

func TestHandleCreateAndSelect(t *testing.T) {
	h, sess := testSetup(t)
	first := sess.ActiveID()

	result, err := h.HandleCreate(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	created := resultJSON(t, result)
	if created["name"] != "Exploration 2" {
		t.Errorf("name = %v, want Exploration 2", created["name"])
	}

	result, err = h.HandleSelect(context.Background(), makeRequest(map[string]any{"id": first}))
	if err != nil {
		t.Fatalf("HandleSelect: %v", err)
	}
	if result.IsError {
		t.Fatal("HandleSelect returned error result")
	}
	if sess.ActiveID() != first {
		t.Errorf("ActiveID = %q, want %q", sess.ActiveID(), first)
	}
}

func TestHandleSelect_NotFound(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleSelect(context.Background(), makeRequest(map[string]any{"id": "missing"}))
	if err != nil {
		t.Fatalf("HandleSelect: %v", err)
	}
	if code := errorCode(t, result); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}
}

func TestHandleRename(t *testing.T) {
	h, sess := testSetup(t)

	result, err := h.HandleRename(context.Background(), makeRequest(map[string]any{
		"id":   sess.ActiveID(),
		"name": "Renamed",
	}))
	if err != nil {
		t.Fatalf("HandleRename: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}
	if sess.Active().Name != "Renamed" {
		t.Errorf("Name = %q, want Renamed", sess.Active().Name)
	}
}

func TestHandleRename_Empty(t *testing.T) {
	h, sess := testSetup(t)

	result, err := h.HandleRename(context.Background(), makeRequest(map[string]any{
		"id":   sess.ActiveID(),
		"name": "  ",
	}))
	if err != nil {
		t.Fatalf("HandleRename: %v", err)
	}
	if code := errorCode(t, result); code != "INVALID_REQUEST" {
		t.Errorf("code = %q, want INVALID_REQUEST", code)
	}
}

func TestHandleDelete_LastSynthesizes(t *testing.T) {
	h, sess := testSetup(t)
	original := sess.ActiveID()

	result, err := h.HandleDelete(context.Background(), makeRequest(map[string]any{"id": original}))
	if err != nil {
		t.Fatalf("HandleDelete: %v", err)
	}
	payload := resultJSON(t, result)
	if payload["deleted"] != original {
		t.Errorf("deleted = %v, want %q", payload["deleted"], original)
	}
	if payload["active_id"] == original {
		t.Error("active_id still points at the deleted exploration")
	}
	if len(sess.Explorations()) != 1 {
		t.Error("collection not replenished after deleting the last member")
	}
}

func TestHandleScenarioSet(t *testing.T) {
	h, sess := testSetup(t)

	result, err := h.HandleScenarioSet(context.Background(), makeRequest(map[string]any{
		"country_code":       "GBR",
		"transport":          true,
		"participation_rate": 60,
	}))
	if err != nil {
		t.Fatalf("HandleScenarioSet: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}

	active := sess.Active()
	if active.CountryCode == nil || *active.CountryCode != "GBR" {
		t.Errorf("CountryCode = %v, want GBR", active.CountryCode)
	}
	if !active.StructuralChanges.Transport {
		t.Error("Transport = false, want true")
	}
	if active.ParticipationRate != 60 {
		t.Errorf("ParticipationRate = %d, want 60", active.ParticipationRate)
	}
}

func TestHandleScenarioSet_UnknownCountry(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleScenarioSet(context.Background(), makeRequest(map[string]any{
		"country_code": "ZZZ",
	}))
	if err != nil {
		t.Fatalf("HandleScenarioSet: %v", err)
	}
	if code := errorCode(t, result); code != "INVALID_REQUEST" {
		t.Errorf("code = %q, want INVALID_REQUEST", code)
	}
}

func TestHandleTargetsCompute(t *testing.T) {
	h, _ := testSetup(t)

	// World average at the default 50% participation: target 0.4, Extreme.
	if _, err := h.HandleScenarioSet(context.Background(), makeRequest(map[string]any{
		"country_code": "WLD",
	})); err != nil {
		t.Fatalf("HandleScenarioSet: %v", err)
	}

	result, err := h.HandleTargetsCompute(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleTargetsCompute: %v", err)
	}
	payload := resultJSON(t, result)

	if got := payload["adjusted_emissions"].(float64); got != 4.6 {
		t.Errorf("adjusted_emissions = %v, want 4.6", got)
	}
	if got := payload["personal_target"].(float64); got < 0.39 || got > 0.41 {
		t.Errorf("personal_target = %v, want 0.4", got)
	}
	if payload["is_impossible"] != false {
		t.Errorf("is_impossible = %v, want false", payload["is_impossible"])
	}
	if payload["lifestyle_tier"] != "Extreme" {
		t.Errorf("lifestyle_tier = %v, want Extreme", payload["lifestyle_tier"])
	}
}

func TestHandleImagine_NotConfigured(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleImagine(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleImagine: %v", err)
	}
	if code := errorCode(t, result); code != "INVALID_REQUEST" {
		t.Errorf("code = %q, want INVALID_REQUEST", code)
	}
}

func TestHandleStoryDelete_NotFound(t *testing.T) {
	h, sess := testSetup(t)

	result, err := h.HandleStoryDelete(context.Background(), makeRequest(map[string]any{
		"exploration_id": sess.ActiveID(),
		"story_id":       "missing",
	}))
	if err != nil {
		t.Fatalf("HandleStoryDelete: %v", err)
	}
	if code := errorCode(t, result); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}
}

func TestHandleExportImport_RoundTrip(t *testing.T) {
	h, sess := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "export.json")

	result, err := h.HandleExport(ctx, makeRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}
	payload := resultJSON(t, result)
	if payload["path"] != path {
		t.Errorf("path = %v, want %q", payload["path"], path)
	}

	result, err = h.HandleImport(ctx, makeRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatalf("HandleImport: %v", err)
	}
	imported := resultJSON(t, result)
	if imported["imported"].(float64) != 1 {
		t.Errorf("imported = %v, want 1", imported["imported"])
	}
	if imported["active_id"] != sess.ActiveID() {
		t.Errorf("active_id = %v, want %q", imported["active_id"], sess.ActiveID())
	}
}

func TestHandleExport_DefaultPath(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleExport(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}
	payload := resultJSON(t, result)
	path, _ := payload["path"].(string)
	if path == "" {
		t.Fatal("path is empty")
	}
	if filepath.Base(filepath.Dir(path)) != "exports" {
		t.Errorf("default path %q not under exports/", path)
	}
}

func TestHandleImport_InvalidFile(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleImport(context.Background(), makeRequest(map[string]any{
		"path": filepath.Join(t.TempDir(), "nope.json"),
	}))
	if err != nil {
		t.Fatalf("HandleImport: %v", err)
	}
	if code := errorCode(t, result); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"story_imagine", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("len = %d, want %d", len(names), len(toolRegistry))
	}
}

func TestNewServer_DisablesTools(t *testing.T) {
	sess := session.New(context.Background(), store.NewMemory())
	cfg := config.DefaultConfig()
	cfg.DisabledTools = []string{"story_imagine"}

	s := NewServer(sess, nil, cfg, t.TempDir(), "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}
