// Package resolve maps between the game's item-identifier namespace and a mesh
// document's material records. All functions are pure over the document and
// catalog they are given; the normalization pass is the only one that mutates
// the document, and it is idempotent.
package resolve

import (
	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/qmuntal/gltf"
)

// ExtraItemID is the material extras key carrying the game item identifier.
const ExtraItemID = "item_id"

// Pair associates a mesh material record with its resolved game material. It
// is derived and ephemeral; the material pointer is owned by the document.
type Pair struct {
	Material   *gltf.Material
	Definition domain.Definition
}

// ItemID returns the material's item identifier: the item_id extra when
// present and non-empty, otherwise the display name. Total; may return "".
func ItemID(m *gltf.Material) string {
	if extras, ok := m.Extras.(map[string]any); ok {
		if s, ok := extras[ExtraItemID].(string); ok && s != "" {
			return s
		}
	}
	return m.Name
}

// DefinitionFor resolves a material record against the catalog. A miss is
// reported via the bool, never as an error.
func DefinitionFor(cat *catalog.Catalog, m *gltf.Material) (domain.Definition, bool) {
	return cat.Get(ItemID(m))
}

// Pairs walks every material record in document order and returns the pairs
// that resolved. Unresolved records are silently dropped.
func Pairs(doc *gltf.Document, cat *catalog.Catalog) []Pair {
	pairs := make([]Pair, 0, len(doc.Materials))
	for _, m := range doc.Materials {
		if def, ok := DefinitionFor(cat, m); ok {
			pairs = append(pairs, Pair{Material: m, Definition: def})
		}
	}
	return pairs
}

// Normalize stamps game identity onto every resolvable material record: the
// display name becomes the catalog title and the item_id extra the resolved
// id. Other extras are preserved. Returns the number of records changed;
// running it on an already-normalized document returns 0 and changes nothing.
func Normalize(doc *gltf.Document, cat *catalog.Catalog) int {
	changed := 0
	for _, m := range doc.Materials {
		def, ok := DefinitionFor(cat, m)
		if !ok {
			continue
		}

		touched := false
		if m.Name != def.Title {
			m.Name = def.Title
			touched = true
		}

		extras := extrasMap(m)
		if cur, _ := extras[ExtraItemID].(string); cur != def.ID {
			extras[ExtraItemID] = def.ID
			touched = true
		}

		if touched {
			changed++
		}
	}
	return changed
}

// extrasMap returns the material's extras as a mutable map, installing one if
// the record has none. Non-map extras are treated as absent.
func extrasMap(m *gltf.Material) map[string]any {
	if extras, ok := m.Extras.(map[string]any); ok {
		return extras
	}
	extras := make(map[string]any)
	m.Extras = extras
	return extras
}

// Extras exposes a material's extras map for transforms, installing an empty
// map when needed.
func Extras(m *gltf.Material) map[string]any {
	return extrasMap(m)
}
