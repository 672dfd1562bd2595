// Package mcp exposes farm operations as Model Context Protocol tools over
// streamable HTTP.
package mcp

import (
	"context"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
	"github.com/Strob0t/animalfarm/internal/service"
)

// Farm is the subset of the farm service the tools call.
type Farm interface {
	Create(ctx context.Context, req *animal.CreateRequest) (*service.Result, error)
	Get(ctx context.Context, name string) (animal.Status, error)
	List(ctx context.Context) ([]animal.Status, error)
	Delete(ctx context.Context, name string) (string, error)
	Eat(ctx context.Context, name string) (*service.Result, error)
	Sleep(ctx context.Context, name string) (*service.Result, error)
	SetHungry(ctx context.Context, name string, hungry bool) (*service.Result, error)
	SetSleepy(ctx context.Context, name string, sleepy bool) (*service.Result, error)
	SetDuty(ctx context.Context, name, duty string) (*service.Result, error)
	PerformDuty(ctx context.Context, name string) (*service.Result, error)
	SetAction(ctx context.Context, name, action string) (*service.Result, error)
	PerformAction(ctx context.Context, name string) (*service.Result, error)
	Summary(ctx context.Context) (service.Summary, error)
}

// ServerConfig identifies the server to MCP clients.
type ServerConfig struct {
	Name    string
	Version string
}

// Server wraps an MCP server bound to a Farm.
type Server struct {
	farm      Farm
	mcpServer *mcpserver.MCPServer
}

// NewServer creates the MCP server and registers the farm tools and resources.
func NewServer(cfg ServerConfig, farm Farm) *Server {
	s := &Server{
		farm: farm,
		mcpServer: mcpserver.NewMCPServer(cfg.Name, cfg.Version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithResourceCapabilities(false, false),
			mcpserver.WithRecovery(),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// Handler returns a stateless streamable HTTP handler for mounting on the
// API router.
func (s *Server) Handler() http.Handler {
	return mcpserver.NewStreamableHTTPServer(s.mcpServer, mcpserver.WithStateLess(true))
}
