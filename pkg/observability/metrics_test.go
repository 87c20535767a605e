package observability_test

import (
	"strings"
	"testing"

	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/events"
	"github.com/aretw0/remat/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	ch := events.NewChannel()
	cancel := m.Attach(ch)
	defer cancel()

	ch.Publish(domain.Event{Type: domain.EventNormalized, Count: 3})
	ch.Publish(domain.Event{Type: domain.EventCommandDone, Command: "scale_scene"})
	ch.Publish(domain.Event{Type: domain.EventCommandDone, Command: "scale_scene", IsError: true})
	ch.Publish(domain.Event{Type: domain.EventDocumentSaved, Path: "out/ship.glb"})
	ch.Publish(domain.Event{Type: domain.EventSessionOpen}) // not counted

	expected := `
# HELP remat_commands_total Total number of drained transform commands
# TYPE remat_commands_total counter
remat_commands_total{command="scale_scene",status="error"} 1
remat_commands_total{command="scale_scene",status="ok"} 1
# HELP remat_materials_normalized_total Total number of material records changed by normalization
# TYPE remat_materials_normalized_total counter
remat_materials_normalized_total 3
# HELP remat_documents_saved_total Total number of documents written
# TYPE remat_documents_saved_total counter
remat_documents_saved_total 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"remat_commands_total",
		"remat_materials_normalized_total",
		"remat_documents_saved_total",
	)
	require.NoError(t, err)
}

func TestMetricsDetachStopsCounting(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	ch := events.NewChannel()
	cancel := m.Attach(ch)

	ch.Publish(domain.Event{Type: domain.EventDocumentSaved})
	cancel()
	ch.Publish(domain.Event{Type: domain.EventDocumentSaved})

	expected := `
# HELP remat_documents_saved_total Total number of documents written
# TYPE remat_documents_saved_total counter
remat_documents_saved_total 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "remat_documents_saved_total")
	assert.NoError(t, err)
}
