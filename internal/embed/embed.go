// Package embed defines a platform-neutral rich content block that the
// platform bindings know how to display
package embed

// Field is a titled value inside an embed
type Field struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Inline bool   `yaml:"inline"`
}

// Embed is a rich content block attached to a page
type Embed struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	URL         string  `yaml:"url"`
	Color       int     `yaml:"color"`
	Fields      []Field `yaml:"fields"`
	Footer      string  `yaml:"footer"`
	ImageURL    string  `yaml:"image_url"`
}

// IsZero reports whether the embed has nothing to display
func (e *Embed) IsZero() bool {
	return e == nil || (e.Title == "" && e.Description == "" && len(e.Fields) == 0 &&
		e.Footer == "" && e.ImageURL == "")
}
