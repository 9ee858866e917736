package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ngofund/ngoai/internal/agent"
	"github.com/ngofund/ngoai/internal/llm"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Executor runs capability requests. *agent.Router implements it.
type Executor interface {
	Execute(ctx context.Context, req agent.AgentRequest) (*agent.AgentResponse, error)
}

// ProviderStatus reports which providers are usable.
type ProviderStatus interface {
	Available() []llm.ProviderName
	Best() (llm.ProviderName, bool)
}

// Server wraps an MCP server that exposes every capability as a tool.
type Server struct {
	executor  Executor
	providers ProviderStatus
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(executor Executor, providers ProviderStatus) *Server {
	s := &Server{
		executor:  executor,
		providers: providers,
	}

	s.mcp = server.NewMCPServer(
		"ngoai",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	for _, c := range agent.Capabilities() {
		s.mcp.AddTool(capabilityTool(c), s.capabilityHandler(c))
	}
	s.mcp.AddTool(listProvidersTool, s.handleListProviders)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
