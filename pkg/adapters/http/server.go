// Package http exposes the document post-processor over a local HTTP API, so
// editor plugins and build farms can call it without shelling out to the CLI.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/remat"
	"github.com/aretw0/remat/internal/logging"
	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/events"
	"github.com/aretw0/remat/pkg/observability"
	"github.com/aretw0/remat/pkg/transforms"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qmuntal/gltf"
)

//go:embed openapi.yaml
var rawSpec []byte

// Server handles document inspection and normalization requests. Every
// request opens its own session; the server itself only holds the shared
// catalog, game directory and metrics.
type Server struct {
	catalog *catalog.Catalog
	gameDir string
	logger  *slog.Logger

	registry *prometheus.Registry
	metrics  *observability.Metrics

	specOnce sync.Once
	spec     *openapi3.T
	specErr  error
}

// ServerOption configures the HTTP server.
type ServerOption func(*Server)

// WithCatalog sets the shared material catalog.
func WithCatalog(cat *catalog.Catalog) ServerOption {
	return func(s *Server) { s.catalog = cat }
}

// WithGameDir sets the game installation directory used by per-request
// sessions.
func WithGameDir(dir string) ServerOption {
	return func(s *Server) { s.gameDir = dir }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewHandler builds the HTTP handler with all routes mounted.
func NewHandler(opts ...ServerOption) http.Handler {
	s := &Server{
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.metrics = observability.NewMetrics(s.registry)

	r := chi.NewRouter()
	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/openapi.yaml", s.getOpenAPI)
	r.Get("/swagger", s.getSwagger)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/documents/inspect", s.inspectDocument)
	r.Post("/documents/normalize", s.normalizeDocument)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// session opens a per-request session over the document at path, with the
// metrics collectors attached to its event channel.
func (s *Server) session(path string) (*remat.Session, func(), error) {
	ch := events.NewChannel()
	detach := s.metrics.Attach(ch)

	opts := []remat.Option{
		remat.WithEventChannel(ch),
		remat.WithLogger(s.logger),
	}
	if s.catalog != nil {
		opts = append(opts, remat.WithCatalog(s.catalog))
	}
	if s.gameDir != "" {
		opts = append(opts, remat.WithGameDir(s.gameDir))
	}

	sess, err := remat.Open(path, opts...)
	if err != nil {
		detach()
		return nil, nil, err
	}
	return sess, detach, nil
}

// InspectRequest is the body of POST /documents/inspect.
type InspectRequest struct {
	Path string `json:"path"`
}

// MaterialPairing is one resolved record in an inspection report.
type MaterialPairing struct {
	ItemID string `json:"item_id"`
	Title  string `json:"title"`
	Name   string `json:"name"`
}

// InspectResponse is the body of a successful inspection.
type InspectResponse struct {
	Path       string            `json:"path"`
	Materials  []MaterialPairing `json:"materials"`
	Unresolved []string          `json:"unresolved"`
}

func (s *Server) inspectDocument(w http.ResponseWriter, r *http.Request) {
	var body InspectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("inspect: invalid request body", "error", err)
		return
	}

	sess, detach, err := s.session(body.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Warn("inspect: open failed", "error", err, "path", body.Path)
		return
	}
	defer detach()

	resp := InspectResponse{
		Path:       body.Path,
		Materials:  []MaterialPairing{},
		Unresolved: []string{},
	}
	paired := make(map[*gltf.Material]bool)
	for _, pair := range sess.Pairs() {
		resp.Materials = append(resp.Materials, MaterialPairing{
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

	writeJSON(w, s.logger, resp)
}

// NormalizeRequest is the body of POST /documents/normalize.
type NormalizeRequest struct {
	Path            string  `json:"path"`
	Output          string  `json:"output"`
	Text            bool    `json:"text"`
	Scale           float64 `json:"scale"`
	Prune           bool    `json:"prune"`
	ApplyAttributes bool    `json:"apply_attributes"`
}

// NormalizeResponse is the body of a successful normalization.
type NormalizeResponse struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
	Materials int    `json:"materials"`
	Resolved  int    `json:"resolved"`
}

func (s *Server) normalizeDocument(w http.ResponseWriter, r *http.Request) {
	var body NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" || body.Output == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("normalize: invalid request body", "error", err)
		return
	}

	sess, detach, err := s.session(body.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Warn("normalize: open failed", "error", err, "path", body.Path)
		return
	}
	defer detach()

	if body.Scale != 0 {
		sess.Queue(transforms.ScaleScene{Factor: body.Scale})
	}
	if body.ApplyAttributes {
		sess.Queue(transforms.ApplyGameAttributes{})
	}
	if body.Prune {
		sess.Queue(transforms.PruneUnusedMaterials{})
	}

	if err := sess.Save(r.Context(), body.Output, body.Text); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Error("normalize: save failed", "error", err, "path", body.Path)
		return
	}

	writeJSON(w, s.logger, NormalizeResponse{
		SessionID: sess.ID(),
		Output:    body.Output,
		Materials: len(sess.Document().Materials),
		Resolved:  len(sess.Pairs()),
	})
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, _ *http.Request) {
	apiVersion := "unknown"
	if spec, err := s.loadSpec(); err == nil && spec.Info != nil {
		apiVersion = spec.Info.Version
	}

	writeJSON(w, s.logger, map[string]string{
		"app":         "remat-http",
		"version":     strings.TrimSpace(remat.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(rawSpec)
}

func (s *Server) getSwagger(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(swaggerHTML))
}

// loadSpec parses the embedded OpenAPI document once.
func (s *Server) loadSpec() (*openapi3.T, error) {
	s.specOnce.Do(func() {
		loader := openapi3.NewLoader()
		loader.Context = context.Background()
		s.spec, s.specErr = loader.LoadFromData(rawSpec)
	})
	return s.spec, s.specErr
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Remat API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
