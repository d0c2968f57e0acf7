package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/ask-assistant/internal/page"
)

// handleAsk forwards one prompt. Blank prompts are rejected without a
// remote call; failures come back as tool errors carrying the reason.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}
	if page.IsBlank(prompt) {
		return mcp.NewToolResultError("prompt must not be empty"), nil
	}

	result := s.asker.Ask(ctx, prompt)
	if !result.OK() {
		return mcp.NewToolResultError(result.Text), nil
	}
	return mcp.NewToolResultText(result.Text), nil
}
