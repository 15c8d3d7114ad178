// Package catalog models the Yarnly product catalog and the pure filtering
// logic that derives the visible product list from search and category state.
package catalog

import (
	"fmt"
	"strings"
)

// Category is a product classification tag. CategoryAll is a wildcard filter
// value only; no product ever carries it.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryBags        Category = "Bags"
	CategoryAccessories Category = "Accessories"
	CategoryClothing    Category = "Clothing"
	CategoryFavourite   Category = "Favourite"
)

// Categories is the fixed filter set, in display order.
var Categories = []Category{
	CategoryAll,
	CategoryBags,
	CategoryAccessories,
	CategoryClothing,
	CategoryFavourite,
}

// ParseCategory resolves a user-supplied name (case-insensitive) to a
// known category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (choose one of %v)", s, Categories)
}

// Product is a catalog entry as returned by the server. Immutable from the
// client's perspective.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
}

// InStock reports whether any quantity can be selected.
func (p Product) InStock() bool { return p.Stock > 0 }

// DisplayPrice renders the price the way the storefront shows it.
func (p Product) DisplayPrice() string {
	return fmt.Sprintf("Rs.%.2f", p.Price)
}
