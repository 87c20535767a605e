package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDocument(t *testing.T) string {
	t.Helper()
	src := []byte(`{
		"asset": {"version": "2.0"},
		"materials": [
			{"name": "MotorComponent"},
			{"name": "custom_paint"}
		]
	}`)
	path := filepath.Join(t.TempDir(), "motor.gltf")
	require.NoError(t, os.WriteFile(path, src, 0o644))
	return path
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(nil, "")
	path := writeTestDocument(t)

	resp, err := s.handleInspect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"path": path,
	})
	require.NoError(t, err)

	require.Len(t, resp.Materials, 1)
	assert.Equal(t, "MotorComponent", resp.Materials[0].ItemID)
	assert.Equal(t, "Motor Component", resp.Materials[0].Name)
	assert.Equal(t, []string{"custom_paint"}, resp.Unresolved)
}

func TestHandleInspectKeepsUnresolvedNameCollision(t *testing.T) {
	s := NewServer(nil, "")

	src := []byte(`{
		"asset": {"version": "2.0"},
		"materials": [
			{"name": "MotorComponent"},
			{"name": "Motor Component"}
		]
	}`)
	path := filepath.Join(t.TempDir(), "collision.gltf")
	require.NoError(t, os.WriteFile(path, src, 0o644))

	resp, err := s.handleInspect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"path": path,
	})
	require.NoError(t, err)

	require.Len(t, resp.Materials, 1)
	assert.Equal(t, []string{"Motor Component"}, resp.Unresolved)
}

func TestHandleInspectRequiresPath(t *testing.T) {
	s := NewServer(nil, "")

	_, err := s.handleInspect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestHandleNormalizeWritesOutput(t *testing.T) {
	s := NewServer(nil, "")
	path := writeTestDocument(t)
	out := filepath.Join(t.TempDir(), "motor_out")

	resp, err := s.handleNormalize(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"path":   path,
		"output": out,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 2, resp.Materials)
	assert.Equal(t, 1, resp.Resolved)

	_, statErr := os.Stat(out + ".glb")
	assert.NoError(t, statErr)
}
