// Package mcpserver exposes the dice engine as MCP tools, resources and prompts
package mcpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
)

const (
	// ServerName is advertised to clients during initialization
	ServerName = "Dice Rolling Server"
	// Instructions is the server description sent to clients
	Instructions = "A server that provides dice rolling functionality for games and simulations"
)

// Config holds dependencies for the MCP server
type Config struct {
	DiceService dice.Service
	Version     string
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.Version == "" {
		vb.RequiredField("Version")
	}

	return vb.Build()
}

// Server wraps an mcp.Server with every dice tool, resource and prompt registered
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// NewServer builds the MCP server and registers its capabilities
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: ServerName, Version: cfg.Version},
		&mcp.ServerOptions{
			Instructions: Instructions,
			Logger:       logger,
		},
	)

	registerTools(server, cfg.DiceService, logger)
	registerResources(server)
	registerPrompts(server)

	return &Server{mcp: server, logger: logger}, nil
}

// MCP returns the underlying SDK server
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves a single session over the given transport until the client
// disconnects or ctx is canceled
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("MCP session starting", "transport", transportName(transport))

	err := s.mcp.Run(ctx, transport)
	if err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "mcp session ended")
	}
	return nil
}

// RunStdio serves the MCP protocol over stdin/stdout
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the MCP streamable HTTP transport. Every HTTP session
// shares this server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

func transportName(t mcp.Transport) string {
	switch t.(type) {
	case *mcp.StdioTransport:
		return "stdio"
	case *mcp.InMemoryTransport:
		return "memory"
	default:
		return "custom"
	}
}
