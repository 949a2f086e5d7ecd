// ABOUTME: Tests for remix MCP tool handlers.
// ABOUTME: Covers remix_text, save_post, list, search, and delete tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/remix/internal/store"
)

// fakeLLM returns a canned completion or error.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func makeServer(t *testing.T, llmResponse string, llmErr error) *Server {
	t.Helper()
	server, err := NewServer(&fakeLLM{response: llmResponse, err: llmErr}, store.NewMemory(nil))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}

	ctx := context.Background()

	var result *gomcp.CallToolResult
	switch name {
	case "remix_text":
		result, err = s.handleRemixText(ctx, req)
	case "save_post":
		result, err = s.handleSavePost(ctx, req)
	case "list_saved_posts":
		result, err = s.handleListSavedPosts(ctx, req)
	case "search_saved_posts":
		result, err = s.handleSearchSavedPosts(ctx, req)
	case "delete_saved_post":
		result, err = s.handleDeleteSavedPost(ctx, req)
	default:
		t.Fatalf("unknown tool %q", name)
	}
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestRemixTextValid(t *testing.T) {
	s := makeServer(t, "[POST 1]\nHello | world\n[POST 2]\nSecond post", nil)

	result := callTool(t, s, "remix_text", map[string]string{
		"text": "Some source material about greetings.",
	})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}

	text := getTextContent(result)
	if !strings.Contains(text, "Post 1") || !strings.Contains(text, "Post 2") {
		t.Errorf("expected two posts in output, got: %s", text)
	}
	if !strings.Contains(text, "Hello\n\nworld") {
		t.Errorf("expected segments joined by paragraph breaks, got: %s", text)
	}
}

func TestRemixTextRequiresText(t *testing.T) {
	s := makeServer(t, "", nil)

	result := callTool(t, s, "remix_text", map[string]string{"text": "   "})
	if !result.IsError {
		t.Error("expected error when text is blank")
	}
}

func TestRemixTextGenerationFailure(t *testing.T) {
	s := makeServer(t, "", fmt.Errorf("service unavailable"))

	result := callTool(t, s, "remix_text", map[string]string{"text": "source"})
	if !result.IsError {
		t.Fatal("expected error when generation fails")
	}
	if !strings.Contains(getTextContent(result), "generation failed") {
		t.Errorf("expected generation failure message, got: %s", getTextContent(result))
	}
}

func TestRemixTextUnparseableOutput(t *testing.T) {
	s := makeServer(t, "I'm sorry, I can't help with that.", nil)

	result := callTool(t, s, "remix_text", map[string]string{"text": "source"})
	if !result.IsError {
		t.Fatal("expected error for unparseable model output")
	}
	text := getTextContent(result)
	if !strings.Contains(text, "no recognizable posts") {
		t.Errorf("expected unparseable message, got: %s", text)
	}
	if !strings.Contains(text, "I'm sorry") {
		t.Errorf("expected raw output included, got: %s", text)
	}
}

func TestRemixTextWithoutClient(t *testing.T) {
	server, err := NewServer(nil, store.NewMemory(nil))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	result := callTool(t, server, "remix_text", map[string]string{"text": "source"})
	if !result.IsError {
		t.Fatal("expected configuration error without a completion client")
	}
}

func TestSavePostAndList(t *testing.T) {
	s := makeServer(t, "", nil)

	result := callTool(t, s, "save_post", map[string]string{"content": "Saved via MCP"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "Post saved") {
		t.Errorf("expected save confirmation, got: %s", getTextContent(result))
	}

	listResult := callTool(t, s, "list_saved_posts", map[string]any{})
	if listResult.IsError {
		t.Fatalf("list error: %s", getTextContent(listResult))
	}
	if !strings.Contains(getTextContent(listResult), "Saved via MCP") {
		t.Errorf("expected saved content in list, got: %s", getTextContent(listResult))
	}
}

func TestSavePostRequiresContent(t *testing.T) {
	s := makeServer(t, "", nil)

	result := callTool(t, s, "save_post", map[string]string{"content": ""})
	if !result.IsError {
		t.Error("expected error when content is empty")
	}
}

func TestListSavedPostsEmpty(t *testing.T) {
	s := makeServer(t, "", nil)

	result := callTool(t, s, "list_saved_posts", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "No saved posts") {
		t.Errorf("expected 'No saved posts', got: %s", getTextContent(result))
	}
}

func TestSearchSavedPosts(t *testing.T) {
	s := makeServer(t, "", nil)

	callTool(t, s, "save_post", map[string]string{"content": "Coffee thoughts"})
	callTool(t, s, "save_post", map[string]string{"content": "Deploy on Friday"})

	result := callTool(t, s, "search_saved_posts", map[string]any{"query": "coffee"})
	if result.IsError {
		t.Fatalf("search error: %s", getTextContent(result))
	}
	text := getTextContent(result)
	if !strings.Contains(text, "Coffee thoughts") {
		t.Errorf("expected matching post, got: %s", text)
	}
	if strings.Contains(text, "Deploy on Friday") {
		t.Errorf("expected non-matching post excluded, got: %s", text)
	}
}

func TestDeleteSavedPost(t *testing.T) {
	s := makeServer(t, "", nil)

	saveResult := callTool(t, s, "save_post", map[string]string{"content": "Doomed post"})
	text := getTextContent(saveResult)
	// Extract the UUID from "Post saved (ID: <uuid>)".
	start := strings.Index(text, "ID: ")
	if start < 0 {
		t.Fatalf("expected ID in save response, got: %s", text)
	}
	id := strings.TrimSuffix(text[start+4:], ")")

	result := callTool(t, s, "delete_saved_post", map[string]string{"id": id})
	if result.IsError {
		t.Fatalf("delete error: %s", getTextContent(result))
	}

	listResult := callTool(t, s, "list_saved_posts", map[string]any{})
	if strings.Contains(getTextContent(listResult), "Doomed post") {
		t.Error("expected deleted post gone from list")
	}
}

func TestDeleteSavedPostInvalidID(t *testing.T) {
	s := makeServer(t, "", nil)

	result := callTool(t, s, "delete_saved_post", map[string]string{"id": "not-a-uuid"})
	if !result.IsError {
		t.Error("expected error for invalid id")
	}
}
