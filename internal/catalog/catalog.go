package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Keywords that mark an item as worth recommending up front.
var popularKeywords = []string{
	"california", "salmon", "tuna", "dragon", "rainbow",
	"philadelphia", "teriyaki", "tempura", "miso",
}

// Catalog owns the ordered category list, the per-category item
// sequences, and the derived name index. Read-only after build; safe
// for concurrent readers.
type Catalog struct {
	categories []string
	byCategory map[string][]MenuItem
	index      map[string]MenuItem
	popular    []MenuItem
	ayce       AycePlans
}

// Normalize is the canonical key for item-name lookups: case-folded,
// trimmed, inner whitespace collapsed.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// build derives the index from ordered category data. Every item
// reachable by category iteration is also reachable via the index; a
// collision after normalization is a load failure, not a silent
// overwrite.
func build(categories []string, byCategory map[string][]MenuItem, ayce AycePlans) (*Catalog, error) {
	c := &Catalog{
		categories: categories,
		byCategory: make(map[string][]MenuItem, len(categories)),
		index:      make(map[string]MenuItem),
		ayce:       ayce,
	}

	for _, category := range categories {
		for _, item := range byCategory[category] {
			if item.Name == "" {
				return nil, fmt.Errorf("category %q: %w", category, ErrMissingName)
			}
			if item.Price < 0 {
				return nil, fmt.Errorf("item %q: %w", item.Name, ErrNegativePrice)
			}

			item.Category = category

			key := Normalize(item.Name)
			if prev, exists := c.index[key]; exists {
				return nil, fmt.Errorf(
					"item %q in %q collides with %q in %q: %w",
					item.Name, category, prev.Name, prev.Category, ErrDuplicateItem,
				)
			}
			c.index[key] = item
			c.byCategory[category] = append(c.byCategory[category], item)

			for _, kw := range popularKeywords {
				if strings.Contains(key, kw) {
					c.popular = append(c.popular, item)
					break
				}
			}
		}
	}

	if len(c.index) == 0 {
		return nil, ErrEmptyMenu
	}

	return c, nil
}

// Categories returns category names in declaration order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryItems returns the items of one category in declaration order.
func (c *Catalog) CategoryItems(category string) []MenuItem {
	items := c.byCategory[category]
	out := make([]MenuItem, len(items))
	copy(out, items)
	return out
}

// Len reports the total number of items.
func (c *Catalog) Len() int {
	return len(c.index)
}

// FindExact looks the item up by normalized name. O(1).
func (c *Catalog) FindExact(name string) (MenuItem, bool) {
	item, ok := c.index[Normalize(name)]
	return item, ok
}

// Search returns every item whose normalized name contains the
// normalized query as a substring or as a whole word. Results are
// ordered by category declaration order, then by name within the
// category. An empty query returns nothing, never the whole catalog.
func (c *Catalog) Search(query string) []MenuItem {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	return c.collect(func(item MenuItem) bool {
		name := Normalize(item.Name)
		if strings.Contains(name, q) {
			return true
		}
		for _, word := range strings.Fields(name) {
			if word == q {
				return true
			}
		}
		return false
	})
}

// ItemsByTag filters by tag membership, same ordering rule as Search.
func (c *Catalog) ItemsByTag(tag string) []MenuItem {
	t := strings.ToLower(strings.TrimSpace(tag))
	if t == "" {
		return nil
	}
	return c.collect(func(item MenuItem) bool {
		return item.HasTag(t)
	})
}

func (c *Catalog) collect(match func(MenuItem) bool) []MenuItem {
	var out []MenuItem
	for _, category := range c.categories {
		var hits []MenuItem
		for _, item := range c.byCategory[category] {
			if match(item) {
				hits = append(hits, item)
			}
		}
		sort.Slice(hits, func(i, j int) bool {
			return hits[i].Name < hits[j].Name
		})
		out = append(out, hits...)
	}
	return out
}

// Popular returns up to limit keyword-flagged items, catalog order.
func (c *Catalog) Popular(limit int) []MenuItem {
	if limit <= 0 || limit > len(c.popular) {
		limit = len(c.popular)
	}
	out := make([]MenuItem, limit)
	copy(out, c.popular[:limit])
	return out
}

// Ayce returns the flat-rate pricing table.
func (c *Catalog) Ayce() AycePlans {
	return c.ayce
}

// Describe renders an item for voice presentation. The output is
// deterministic: price to two decimals, optional description, then tag
// annotations in fixed priority order (vegetarian before spicy).
func (c *Catalog) Describe(item MenuItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for $%.2f", item.Name, item.Price)

	if item.Description != "" {
		b.WriteString(" - ")
		b.WriteString(item.Description)
	}
	if item.HasTag("vegetarian") {
		b.WriteString(" (vegetarian)")
	}
	if item.HasTag("spicy") {
		b.WriteString(" (spicy)")
	}

	return b.String()
}

// Summary renders the menu overview handed to the conversation
// pipeline as prompt context.
func (c *Catalog) Summary(restaurantName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s menu: %d categories (%s), %d items.\n",
		restaurantName,
		len(c.categories),
		strings.Join(c.categories, ", "),
		len(c.index),
	)

	b.WriteString("Popular items:\n")
	for _, item := range c.Popular(10) {
		b.WriteString("- ")
		b.WriteString(c.Describe(item))
		b.WriteString("\n")
	}

	return b.String()
}
