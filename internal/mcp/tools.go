package mcp

import "github.com/mark3labs/mcp-go/mcp"

var askTool = mcp.NewTool("ask",
	mcp.WithDescription("Forward a single question to the configured language model and return its answer. Each call is independent; no conversation history is kept."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("The question or instruction to send"),
	),
)
