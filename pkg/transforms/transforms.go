// Package transforms contains the queued document transforms. Each transform
// kind is a typed struct implementing the queue command interface, so
// parameters are checked at compile time while keeping the "queue now, apply
// later" contract.
package transforms

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/gamedir"
	"github.com/aretw0/remat/pkg/resolve"
)

// ApplyCatalogNames re-runs the material normalization pass. Useful after
// transforms that add or rewrite material records.
type ApplyCatalogNames struct{}

func (ApplyCatalogNames) Name() string { return "apply_catalog_names" }

func (ApplyCatalogNames) Apply(_ context.Context, tc *Context) error {
	n := resolve.Normalize(tc.Doc, tc.Catalog)
	tc.publish(domain.Event{Type: domain.EventNormalized, Count: n})
	tc.logger().Debug("catalog names applied", "changed", n)
	return nil
}

// ScaleScene multiplies the scale of every node by Factor, for pipelines whose
// export unit differs from the game unit.
type ScaleScene struct {
	Factor float64
}

func (ScaleScene) Name() string { return "scale_scene" }

func (t ScaleScene) Apply(_ context.Context, tc *Context) error {
	if t.Factor <= 0 {
		return fmt.Errorf("scale factor must be positive, got %v", t.Factor)
	}
	for _, node := range tc.Doc.Nodes {
		if node.Scale == [3]float32{} {
			// Hand-built nodes may carry a zero value; glTF's default is 1.
			node.Scale = [3]float32{1, 1, 1}
		}
		for i := range node.Scale {
			node.Scale[i] = float32(float64(node.Scale[i]) * t.Factor)
		}
	}
	return nil
}

// SetExtra writes one metadata field on the material resolving to ItemID.
// A lookup miss is not an error; the command is a no-op then.
type SetExtra struct {
	ItemID string
	Key    string
	Value  any
}

func (SetExtra) Name() string { return "set_extra" }

func (t SetExtra) Apply(_ context.Context, tc *Context) error {
	if t.Key == "" {
		return fmt.Errorf("extras key must not be empty")
	}
	if t.Key == resolve.ExtraItemID {
		return fmt.Errorf("%s is stamped by normalization and cannot be set directly", resolve.ExtraItemID)
	}

	for _, m := range tc.Doc.Materials {
		if resolve.ItemID(m) != t.ItemID {
			continue
		}
		resolve.Extras(m)[t.Key] = t.Value
		return nil
	}

	tc.logger().Debug("set_extra: no material resolves to item id", "item_id", t.ItemID)
	return nil
}

// PruneUnusedMaterials removes material records not referenced by any mesh
// primitive and remaps primitive indices accordingly.
type PruneUnusedMaterials struct{}

func (PruneUnusedMaterials) Name() string { return "prune_unused_materials" }

func (PruneUnusedMaterials) Apply(_ context.Context, tc *Context) error {
	doc := tc.Doc

	used := make(map[uint32]bool)
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Material != nil {
				used[*prim.Material] = true
			}
		}
	}

	remap := make(map[uint32]uint32, len(used))
	kept := doc.Materials[:0]
	for i, m := range doc.Materials {
		if used[uint32(i)] {
			remap[uint32(i)] = uint32(len(kept))
			kept = append(kept, m)
		}
	}
	pruned := len(doc.Materials) - len(kept)
	doc.Materials = kept

	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Material != nil {
				idx := remap[*prim.Material]
				prim.Material = &idx
			}
		}
	}

	tc.logger().Debug("pruned unused materials", "removed", pruned)
	return nil
}

// gameAttributes is the typed view of catalog attributes consumed by
// ApplyGameAttributes.
type gameAttributes struct {
	Category string   `mapstructure:"category"`
	Mass     float64  `mapstructure:"mass"`
	Tags     []string `mapstructure:"tags"`
}

// ApplyGameAttributes copies selected catalog attributes (category, mass) into
// each resolved material's extras, so downstream tooling sees game-accurate
// metadata without a catalog at hand.
type ApplyGameAttributes struct{}

func (ApplyGameAttributes) Name() string { return "apply_game_attributes" }

func (ApplyGameAttributes) Apply(_ context.Context, tc *Context) error {
	for _, pair := range resolve.Pairs(tc.Doc, tc.Catalog) {
		var attrs gameAttributes
		if err := catalog.DecodeAttributes(pair.Definition, &attrs); err != nil {
			return err
		}

		extras := resolve.Extras(pair.Material)
		if attrs.Category != "" {
			extras["category"] = attrs.Category
		}
		if attrs.Mass > 0 {
			extras["mass"] = attrs.Mass
		}
	}
	return nil
}

// StampSourceFiles records, for every resolved material whose definition file
// exists in the installation directory, the game-relative path of that file
// in a source_file extra. Requires a configured game directory.
type StampSourceFiles struct{}

func (StampSourceFiles) Name() string { return "stamp_source_files" }

func (t StampSourceFiles) Apply(_ context.Context, tc *Context) error {
	if tc.GameDir == "" {
		return fmt.Errorf("%w: stamp_source_files needs a configured game directory", domain.ErrGameDirInvalid)
	}

	for _, pair := range resolve.Pairs(tc.Doc, tc.Catalog) {
		file := gamedir.MaterialFile(tc.GameDir, pair.Definition.ID)
		if _, err := os.Stat(file); err != nil {
			tc.logger().Debug("no source file for material", "item_id", pair.Definition.ID)
			continue
		}
		rel := path.Join(gamedir.RequiredSubdir, pair.Definition.ID+".json")
		resolve.Extras(pair.Material)["source_file"] = rel
	}
	return nil
}
