package loam

// MaterialMetadata is the frontmatter of a material document in a loam
// library. It uses "mapstructure" tags to match standard frontmatter keys.
type MaterialMetadata struct {
	ID         string         `json:"id" mapstructure:"id"`
	Title      string         `json:"title" mapstructure:"title"`
	Attributes map[string]any `json:"attributes" mapstructure:"attributes"`
}
