// ABOUTME: MCP tool implementations for remix operations.
// ABOUTME: Registers remix_text, save_post, list/search, and delete tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/remix/internal/parser"
	"github.com/2389-research/remix/internal/prompt"
	"github.com/2389-research/remix/internal/share"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "remix_text",
		Description: "Turn source text into five short social post candidates.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "The source text to remix into posts.", "minLength": 1}
			},
			"required": ["text"]
		}`),
	}, s.handleRemixText)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "save_post",
		Description: "Save a post's content for later retrieval.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {"type": "string", "description": "The post content to save.", "minLength": 1}
			},
			"required": ["content"]
		}`),
	}, s.handleSavePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_saved_posts",
		Description: "List saved posts, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListSavedPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_saved_posts",
		Description: "Search saved posts by relevance to a query.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "What to look for.", "minLength": 1},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchSavedPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_saved_post",
		Description: "Delete a saved post by its identifier.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "UUID of the saved post to delete.", "minLength": 1}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteSavedPost)
}

func (s *Server) handleRemixText(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if strings.TrimSpace(args.Text) == "" {
		return toolError("text is required"), nil
	}
	if s.llm == nil {
		return toolError("no generation credential configured - run 'remix setup' first"), nil
	}

	raw, err := s.llm.Complete(ctx, prompt.Build(args.Text))
	if err != nil {
		return toolError("generation failed: %v", err), nil
	}

	result := parser.Parse(raw)
	if result.Unparseable() {
		return toolError("model output had no recognizable posts:\n%s", result.Raw), nil
	}

	var sb strings.Builder
	for i, post := range result.Posts {
		sb.WriteString(fmt.Sprintf("--- Post %d (%d characters left)\n", i+1, post.Remaining()))
		sb.WriteString(share.TweetText(post))
		sb.WriteString("\n")
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleSavePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Content == "" {
		return toolError("content is required"), nil
	}

	post, err := s.store.SavePost(ctx, args.Content)
	if err != nil {
		return toolError("failed to save post: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Post saved (ID: %s)", post.ID),
		}},
	}, nil
}

func (s *Server) handleListSavedPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return toolError("failed to list posts: %v", err), nil
	}

	if len(posts) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No saved posts."}},
		}, nil
	}

	var sb strings.Builder
	for _, post := range posts {
		sb.WriteString(fmt.Sprintf("--- %s [%s]\n%s\n", post.ID, post.CreatedAt.Format("2006-01-02 15:04:05"), post.Content))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleSearchSavedPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	posts, err := s.store.SearchPosts(ctx, args.Query, args.Limit)
	if err != nil {
		return toolError("failed to search posts: %v", err), nil
	}

	if len(posts) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No matching posts."}},
		}, nil
	}

	var sb strings.Builder
	for _, post := range posts {
		sb.WriteString(fmt.Sprintf("--- %s [%s]\n%s\n", post.ID, post.CreatedAt.Format("2006-01-02 15:04:05"), post.Content))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleDeleteSavedPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	id, err := uuid.Parse(args.ID)
	if err != nil {
		return toolError("invalid id: %v", err), nil
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return toolError("failed to delete post: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Post %s deleted", id),
		}},
	}, nil
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
