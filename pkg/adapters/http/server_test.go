package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDocument(t *testing.T) string {
	t.Helper()
	src := []byte(`{
		"asset": {"version": "2.0"},
		"materials": [
			{"name": "SteelPlate"},
			{"name": "mystery_material"}
		]
	}`)
	path := filepath.Join(t.TempDir(), "block.gltf")
	require.NoError(t, os.WriteFile(path, src, 0o644))
	return path
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestGetInfoReportsAPIVersion(t *testing.T) {
	handler := NewHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "remat-http", resp["app"])
	assert.Equal(t, "1.0.0", resp["api_version"])
	assert.NotEmpty(t, resp["version"])
}

func TestInspectDocument(t *testing.T) {
	handler := NewHandler()
	path := writeTestDocument(t)

	body, _ := json.Marshal(InspectRequest{Path: path})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/documents/inspect", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp InspectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Materials, 1)
	assert.Equal(t, "SteelPlate", resp.Materials[0].ItemID)
	assert.Equal(t, "Steel Plate", resp.Materials[0].Name)
	assert.Equal(t, []string{"mystery_material"}, resp.Unresolved)
}

func TestInspectDocumentKeepsUnresolvedNameCollision(t *testing.T) {
	handler := NewHandler()

	// The resolved record is renamed to "Steel Plate" by normalization, the
	// same display name the second, unresolvable record already carries.
	src := []byte(`{
		"asset": {"version": "2.0"},
		"materials": [
			{"name": "SteelPlate"},
			{"name": "Steel Plate"}
		]
	}`)
	path := filepath.Join(t.TempDir(), "collision.gltf")
	require.NoError(t, os.WriteFile(path, src, 0o644))

	body, _ := json.Marshal(InspectRequest{Path: path})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/documents/inspect", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp InspectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Materials, 1)
	assert.Equal(t, []string{"Steel Plate"}, resp.Unresolved)
}

func TestInspectDocumentRejectsMissingPath(t *testing.T) {
	handler := NewHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/documents/inspect", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, _ := json.Marshal(InspectRequest{Path: filepath.Join(t.TempDir(), "gone.gltf")})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/documents/inspect", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestNormalizeDocumentWritesOutput(t *testing.T) {
	handler := NewHandler()
	path := writeTestDocument(t)
	out := filepath.Join(t.TempDir(), "block_out")

	body, _ := json.Marshal(NormalizeRequest{Path: path, Output: out})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/documents/normalize", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 2, resp.Materials)
	assert.Equal(t, 1, resp.Resolved)

	_, err := os.Stat(out + ".glb")
	assert.NoError(t, err)
}

func TestMetricsExposeNormalizationCounts(t *testing.T) {
	handler := NewHandler()
	path := writeTestDocument(t)

	body, _ := json.Marshal(InspectRequest{Path: path})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/documents/inspect", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "remat_materials_normalized_total 1")
}

func TestCORSPreflight(t *testing.T) {
	handler := NewHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/documents/inspect", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPISpecServed(t *testing.T) {
	handler := NewHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Remat API")
}
