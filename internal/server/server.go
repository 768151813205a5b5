// Package server exposes the recommendation engine over MCP so AI
// assistants can score applications and fetch clarification questions.
// This is the composition root: concrete dependencies are created here
// and injected into the tools. No scoring logic lives in this package.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/archadvisor/archadvisor/internal/engine"
	"github.com/archadvisor/archadvisor/internal/history"
)

// Version is set at build time via ldflags.
var Version = "dev"

func noop() {}

// New creates the MCP server with every tool registered. The returned
// cleanup function closes the history store and must be called on
// shutdown; it is always non-nil.
func New(eng *engine.Engine, historyPath string) (*server.MCPServer, func(), error) {
	s := server.NewMCPServer(
		"archadvisor",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	scoreTool := NewScoreTool(eng)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	questionsTool := NewQuestionsTool(eng)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	statsTool := NewStatsTool(eng)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// History is an independent subsystem: scoring keeps working when
	// the archive cannot be opened, runs just are not persisted.
	cleanup := noop
	if historyPath != "" {
		store, err := history.New(historyPath)
		if err != nil {
			log.Printf("WARNING: run history disabled: %v", err)
		} else {
			scoreTool.WithHistory(store)
			cleanup = func() { _ = store.Close() }
		}
	}

	return s, cleanup, nil
}

// ServeStdio runs the server over stdio until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
