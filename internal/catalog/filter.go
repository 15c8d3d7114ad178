package catalog

import "strings"

// Filter derives the visible product list from the full catalog. A product
// is kept when its name contains query (case-insensitive) and it belongs to
// category (CategoryAll matches everything). Input order is preserved and
// the input slice is never mutated; the result is always non-nil.
//
// Filter is pure and idempotent: Filter(Filter(p, q, c), q, c) equals
// Filter(p, q, c).
func Filter(products []Product, query string, category Category) []Product {
	q := strings.ToLower(query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if category != CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}
