// Package mcpserver exposes the flow generator as a Model Context Protocol
// server, so AI agents can request board flow data as a tool call.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cardtrail"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Generator is the part of the cardtrail facade the MCP server needs.
type Generator interface {
	Generate(ctx context.Context, boardID string) (*cardtrail.Result, error)
}

// Server wraps the generator and exposes it over MCP transports.
type Server struct {
	gen       Generator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(gen Generator) *Server {
	s := &Server{
		gen:       gen,
		mcpServer: server.NewMCPServer("cardtrail-mcp", strings.TrimSpace(cardtrail.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_sankey",
		mcp.WithDescription("Generate SankeyMATIC flow data from a Trello board's card movement history."),
		mcp.WithString("board_id", mcp.Required(), mcp.Description("The Trello board ID to analyze")),
	)
	s.mcpServer.AddTool(generateTool, s.handleGenerate)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := request.RequireString("board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.gen.Generate(ctx, boardID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate failed: %v", err)), nil
	}
	if res.Empty() {
		return mcp.NewToolResultText("No card movements found on this board."), nil
	}
	return mcp.NewToolResultText(res.Output()), nil
}
