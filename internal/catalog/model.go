package catalog

// MenuItem is the immutable catalog entry. Loaded once at catalog
// construction and never mutated afterward, so it is safe to share
// across concurrent extractions.
type MenuItem struct {
	Name        string   `json:"name" yaml:"name"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category,omitempty" yaml:"-"`
	Description string   `json:"desc,omitempty" yaml:"desc,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasTag reports whether the item carries the given tag.
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AycePlans is the flat-rate all-you-can-eat pricing table, keyed by
// period name ("weekday_lunch", ...) then tier ("adult", "senior", ...).
// Not consumed by extraction; passed through for presentation only.
type AycePlans map[string]map[string]float64
