package domain

// Definition is an immutable catalog entry mapping a game item id to a display
// title and arbitrary attributes (mass, category, tags, ...).
type Definition struct {
	ID         string         `json:"id" yaml:"id" mapstructure:"id"`
	Title      string         `json:"title" yaml:"title" mapstructure:"title"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
}

// Clone returns a copy with its own attributes map, so catalog entries stay
// isolated from caller mutation.
func (d Definition) Clone() Definition {
	out := d
	if d.Attributes != nil {
		out.Attributes = make(map[string]any, len(d.Attributes))
		for k, v := range d.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}
