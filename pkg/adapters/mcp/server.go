// Package mcp exposes the document post-processor as a Model Context Protocol
// server, so AI agents can inspect and normalize mesh documents as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/remat"
	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/transforms"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/qmuntal/gltf"
)

// MaterialReport is one resolved material in a tool response.
type MaterialReport struct {
	ItemID string `json:"item_id" jsonschema_description:"Resolved game item identifier"`
	Title  string `json:"title" jsonschema_description:"Catalog display title"`
	Name   string `json:"name" jsonschema_description:"Display name carried by the mesh record"`
}

// InspectResponse is the structured result of the inspect_materials tool.
type InspectResponse struct {
	Path       string           `json:"path"`
	Materials  []MaterialReport `json:"materials" jsonschema_description:"Materials that resolved against the catalog"`
	Unresolved []string         `json:"unresolved" jsonschema_description:"Display names of records with no catalog match"`
}

// NormalizeResponse is the structured result of the normalize_document tool.
type NormalizeResponse struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
	Materials int    `json:"materials" jsonschema_description:"Total material records in the document"`
	Resolved  int    `json:"resolved" jsonschema_description:"Records that resolved against the catalog"`
}

// Server wraps a catalog and exposes document operations as an MCP server.
type Server struct {
	catalog   *catalog.Catalog
	gameDir   string
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server. A nil catalog falls back to the bundled
// defaults on every call.
func NewServer(cat *catalog.Catalog, gameDir string) *Server {
	s := &Server{
		catalog:   cat,
		gameDir:   gameDir,
		mcpServer: server.NewMCPServer("remat-mcp", strings.TrimSpace(remat.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until the
// context is cancelled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	inspectTool := mcp.NewTool("inspect_materials",
		mcp.WithDescription("Report how the materials of a mesh document resolve against the game catalog."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the .gltf or .glb document")),
		mcp.WithOutputSchema[InspectResponse](),
	)
	s.mcpServer.AddTool(inspectTool, mcp.NewStructuredToolHandler(s.handleInspect))

	normalizeTool := mcp.NewTool("normalize_document",
		mcp.WithDescription("Normalize material identity in a mesh document and write the result."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the input document")),
		mcp.WithString("output", mcp.Required(), mcp.Description("Output path; a .glb file, or a .gltf directory in text mode")),
		mcp.WithBoolean("text", mcp.Description("Write a .gltf directory instead of a single .glb")),
		mcp.WithNumber("scale", mcp.Description("Optional uniform scene scale factor")),
		mcp.WithBoolean("prune", mcp.Description("Drop material records no primitive references")),
		mcp.WithBoolean("apply_attributes", mcp.Description("Copy catalog attributes into material extras")),
		mcp.WithOutputSchema[NormalizeResponse](),
	)
	s.mcpServer.AddTool(normalizeTool, mcp.NewStructuredToolHandler(s.handleNormalize))
}

func (s *Server) open(path string) (*remat.Session, error) {
	opts := []remat.Option{}
	if s.catalog != nil {
		opts = append(opts, remat.WithCatalog(s.catalog))
	}
	if s.gameDir != "" {
		opts = append(opts, remat.WithGameDir(s.gameDir))
	}
	return remat.Open(path, opts...)
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (InspectResponse, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return InspectResponse{}, fmt.Errorf("path is required")
	}

	sess, err := s.open(path)
	if err != nil {
		return InspectResponse{}, fmt.Errorf("open failed: %w", err)
	}

	resp := InspectResponse{
		Path:       path,
		Materials:  []MaterialReport{},
		Unresolved: []string{},
	}
	paired := make(map[*gltf.Material]bool)
	for _, pair := range sess.Pairs() {
		resp.Materials = append(resp.Materials, MaterialReport{
			ItemID: pair.Definition.ID,
			Title:  pair.Definition.Title,
			Name:   pair.Material.Name,
		})
		paired[pair.Material] = true
	}
	for _, m := range sess.Document().Materials {
		if !paired[m] {
			resp.Unresolved = append(resp.Unresolved, m.Name)
		}
	}
	return resp, nil
}

func (s *Server) handleNormalize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NormalizeResponse, error) {
	path, _ := args["path"].(string)
	output, _ := args["output"].(string)
	if path == "" || output == "" {
		return NormalizeResponse{}, fmt.Errorf("path and output are required")
	}

	sess, err := s.open(path)
	if err != nil {
		return NormalizeResponse{}, fmt.Errorf("open failed: %w", err)
	}

	if scale, ok := args["scale"].(float64); ok && scale != 0 {
		sess.Queue(transforms.ScaleScene{Factor: scale})
	}
	if apply, _ := args["apply_attributes"].(bool); apply {
		sess.Queue(transforms.ApplyGameAttributes{})
	}
	if prune, _ := args["prune"].(bool); prune {
		sess.Queue(transforms.PruneUnusedMaterials{})
	}

	asText, _ := args["text"].(bool)
	if err := sess.Save(ctx, output, asText); err != nil {
		return NormalizeResponse{}, fmt.Errorf("save failed: %w", err)
	}

	return NormalizeResponse{
		SessionID: sess.ID(),
		Output:    output,
		Materials: len(sess.Document().Materials),
		Resolved:  len(sess.Pairs()),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: remat://catalog
	s.mcpServer.AddResource(mcp.NewResource("remat://catalog", "Material Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		cat := s.catalog
		if cat == nil {
			var err error
			cat, err = catalog.Default()
			if err != nil {
				return nil, fmt.Errorf("load default catalog: %w", err)
			}
		}
		jsonBytes, _ := json.Marshal(cat.Definitions())

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "remat://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
