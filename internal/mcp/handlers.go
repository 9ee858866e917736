package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ngofund/ngoai/internal/agent"
)

// capabilityHandler runs capability c with the tool arguments.
func (s *Server) capabilityHandler(c agent.Capability) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw map[string]any
		if js := strings.TrimSpace(request.GetString("context_json", "")); js != "" {
			if err := json.Unmarshal([]byte(js), &raw); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("context_json must be a JSON object: %v", err)), nil
			}
		}

		resp, err := s.executor.Execute(ctx, agent.AgentRequest{
			Capability: string(c),
			Context:    raw,
			Language:   request.GetString("language", ""),
			Provider:   request.GetString("provider", ""),
			Strict:     request.GetBool("strict", false),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", c, err)), nil
		}

		if c == agent.Chatbot {
			return mcp.NewToolResultText(resp.Result.Text), nil
		}

		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// handleListProviders reports the configured providers.
func (s *Server) handleListProviders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	available := s.providers.Available()
	if len(available) == 0 {
		return mcp.NewToolResultText("No AI provider is configured. Set OPENAI_API_KEY, GEMINI_API_KEY or ANTHROPIC_API_KEY."), nil
	}

	var b strings.Builder
	b.WriteString("Available providers:\n")
	for _, p := range available {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	if best, ok := s.providers.Best(); ok {
		fmt.Fprintf(&b, "\nPreferred: %s\n", best)
	}
	return mcp.NewToolResultText(b.String()), nil
}
