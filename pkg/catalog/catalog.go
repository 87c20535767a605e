// Package catalog maps game item identifiers to material definitions. A
// catalog is read-only for the lifetime of a session; mutation happens only
// through the catalog sources in pkg/adapters.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/remat/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.json
var defaultsJSON []byte

// Catalog holds material definitions keyed by item id. Lookups are by exact
// id; there is no ordering guarantee.
type Catalog struct {
	items map[string]domain.Definition
}

// New builds a catalog from the given definitions. Later definitions with a
// duplicate id replace earlier ones.
func New(defs ...domain.Definition) *Catalog {
	c := &Catalog{items: make(map[string]domain.Definition, len(defs))}
	for _, d := range defs {
		if d.ID == "" {
			continue
		}
		c.items[d.ID] = d.Clone()
	}
	return c
}

// Get looks up a definition by item id. A miss is not an error.
func (c *Catalog) Get(id string) (domain.Definition, bool) {
	if id == "" {
		return domain.Definition{}, false
	}
	d, ok := c.items[id]
	if !ok {
		return domain.Definition{}, false
	}
	return d.Clone(), true
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.items)
}

// IDs returns all item ids, sorted for stable output.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Definitions returns every definition, sorted by item id.
func (c *Catalog) Definitions() []domain.Definition {
	defs := make([]domain.Definition, 0, len(c.items))
	for _, id := range c.IDs() {
		defs = append(defs, c.items[id].Clone())
	}
	return defs
}

// DecodeAttributes decodes a definition's attribute map into a typed struct
// using mapstructure tags, for transforms that need checked parameters.
func DecodeAttributes(def domain.Definition, out any) error {
	if err := mapstructure.Decode(def.Attributes, out); err != nil {
		return fmt.Errorf("decode attributes of %q: %w", def.ID, err)
	}
	return nil
}

// fileFormat is the on-disk catalog shape:
//
//	{ "items": { "<itemId>": { "title": "...", <attributes>... } } }
type fileFormat struct {
	Items map[string]map[string]any `json:"items" yaml:"items"`
}

func fromFileFormat(ff fileFormat) *Catalog {
	c := &Catalog{items: make(map[string]domain.Definition, len(ff.Items))}
	for id, raw := range ff.Items {
		def := domain.Definition{ID: id, Title: id}
		if title, ok := raw["title"].(string); ok && title != "" {
			def.Title = title
		}
		for k, v := range raw {
			if k == "title" {
				continue
			}
			if def.Attributes == nil {
				def.Attributes = make(map[string]any)
			}
			def.Attributes[k] = v
		}
		c.items[id] = def
	}
	return c
}

// FromJSON parses a catalog document.
func FromJSON(data []byte) (*Catalog, error) {
	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return fromFileFormat(ff), nil
}

// Load reads a catalog file. JSON and YAML are supported, selected by
// extension with YAML as the default.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FromJSON(data)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return fromFileFormat(ff), nil
}

// Default returns the bundled defaults catalog shipped with the library.
func Default() (*Catalog, error) {
	return FromJSON(defaultsJSON)
}
