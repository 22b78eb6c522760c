// Package server exposes the simulated desktop as Model Context Protocol
// tools so AI agents can drive it without shell overhead. Each client session
// gets its own desktop; tool errors are returned in-band and never take the
// server down.
package server

import (
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/azinterface/azdesk/internal/apps"
	"github.com/azinterface/azdesk/internal/session"
	"github.com/azinterface/azdesk/internal/wm"
)

// Config holds server configuration.
type Config struct {
	Transport  string
	Port       int
	SessionTTL time.Duration
	Screen     [2]int
	Logger     zerolog.Logger
}

// Server wraps the MCP server with the session manager.
type Server struct {
	sessions *session.Manager
	mcp      *mcpserver.MCPServer
	log      zerolog.Logger
}

// New creates and configures a server with all desktop tools registered.
func New(registry *apps.Registry, cfg Config) *Server {
	wmCfg := wm.Config{
		ScreenWidth:  cfg.Screen[0],
		ScreenHeight: cfg.Screen[1],
		Logger:       cfg.Logger,
	}

	s := &Server{
		sessions: session.NewManager(registry, wmCfg, cfg.SessionTTL),
		log:      cfg.Logger,
	}

	s.mcp = mcpserver.NewMCPServer("azdesk", "1.0.0")
	s.registerTools()
	return s
}

// Serve starts the server with the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.log.Info().Int("port", cfg.Port).Msg("serving streamable-http")
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// session resolves the session named in a tool request.
func (s *Server) session(name string) *session.Session {
	return s.sessions.Get(name)
}
