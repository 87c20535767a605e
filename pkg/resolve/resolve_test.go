package resolve_test

import (
	"testing"

	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/resolve"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		domain.Definition{ID: "SteelPlate", Title: "Steel Plate", Attributes: map[string]any{"mass": 20}},
		domain.Definition{ID: "MetalGrid", Title: "Metal Grid"},
	)
}

func TestItemID(t *testing.T) {
	tests := []struct {
		name     string
		material *gltf.Material
		want     string
	}{
		{
			name:     "item_id extra wins",
			material: &gltf.Material{Name: "whatever", Extras: map[string]any{"item_id": "SteelPlate"}},
			want:     "SteelPlate",
		},
		{
			name:     "empty extra falls back to name",
			material: &gltf.Material{Name: "MetalGrid", Extras: map[string]any{"item_id": ""}},
			want:     "MetalGrid",
		},
		{
			name:     "no extras falls back to name",
			material: &gltf.Material{Name: "MetalGrid"},
			want:     "MetalGrid",
		},
		{
			name:     "neither yields empty string",
			material: &gltf.Material{},
			want:     "",
		},
		{
			name:     "non-string extra ignored",
			material: &gltf.Material{Name: "fallback", Extras: map[string]any{"item_id": 42}},
			want:     "fallback",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve.ItemID(tt.material))
		})
	}
}

func TestDefinitionForMissIsAbsent(t *testing.T) {
	cat := testCatalog()
	_, ok := resolve.DefinitionFor(cat, &gltf.Material{Name: "Unknownium"})
	assert.False(t, ok)
}

func TestPairsPreserveDocumentOrderAndDropUnresolved(t *testing.T) {
	doc := &gltf.Document{Materials: []*gltf.Material{
		{Name: "MetalGrid"},
		{Name: "mystery"},
		{Name: "plate", Extras: map[string]any{"item_id": "SteelPlate"}},
	}}

	pairs := resolve.Pairs(doc, testCatalog())
	require.Len(t, pairs, 2)
	assert.Equal(t, "MetalGrid", pairs[0].Definition.ID)
	assert.Equal(t, "SteelPlate", pairs[1].Definition.ID)
	assert.Same(t, doc.Materials[0], pairs[0].Material)
	assert.Same(t, doc.Materials[2], pairs[1].Material)
}

func TestNormalizeStampsNameAndItemID(t *testing.T) {
	doc := &gltf.Document{Materials: []*gltf.Material{
		{Name: "plate_01", Extras: map[string]any{"item_id": "SteelPlate", "uv_set": 1}},
		{Name: "mystery"},
	}}

	changed := resolve.Normalize(doc, testCatalog())
	assert.Equal(t, 1, changed)

	plate := doc.Materials[0]
	assert.Equal(t, "Steel Plate", plate.Name)
	extras := plate.Extras.(map[string]any)
	assert.Equal(t, "SteelPlate", extras["item_id"])
	assert.Equal(t, 1, extras["uv_set"], "unrelated extras preserved")

	// The unresolved record is untouched.
	assert.Equal(t, "mystery", doc.Materials[1].Name)
	assert.Nil(t, doc.Materials[1].Extras)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	doc := &gltf.Document{Materials: []*gltf.Material{
		{Name: "MetalGrid"},
		{Name: "plate", Extras: map[string]any{"item_id": "SteelPlate"}},
	}}

	cat := testCatalog()
	first := resolve.Normalize(doc, cat)
	require.Equal(t, 2, first)

	nameAfter := doc.Materials[0].Name
	extrasAfter := doc.Materials[0].Extras.(map[string]any)["item_id"]

	second := resolve.Normalize(doc, cat)
	assert.Equal(t, 0, second, "second pass must not change anything")
	assert.Equal(t, nameAfter, doc.Materials[0].Name)
	assert.Equal(t, extrasAfter, doc.Materials[0].Extras.(map[string]any)["item_id"])
}

func TestNormalizeStampSurvivesRename(t *testing.T) {
	// Once the item_id extra is stamped, the display name no longer matters
	// for identity.
	doc := &gltf.Document{Materials: []*gltf.Material{{Name: "SteelPlate"}}}
	cat := testCatalog()

	resolve.Normalize(doc, cat)
	doc.Materials[0].Name = "renamed by artist"

	def, ok := resolve.DefinitionFor(cat, doc.Materials[0])
	require.True(t, ok)
	assert.Equal(t, "SteelPlate", def.ID)
}
