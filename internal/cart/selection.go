// Package cart models the ephemeral quantity selection made in the
// add-to-cart popup. Selections live only as long as the dialog; nothing is
// persisted or transmitted.
package cart

import (
	"errors"

	"yarnly/internal/catalog"
)

// ErrOutOfStock means no valid quantity exists for the product.
var ErrOutOfStock = errors.New("product is out of stock")

// Selection is a chosen quantity of one product, always within [1, Stock].
type Selection struct {
	Product  catalog.Product
	Quantity int
}

// NewSelection opens a selection at quantity 1. Products with zero stock
// cannot be selected at all; the add-to-cart affordance is disabled for them.
func NewSelection(p catalog.Product) (Selection, error) {
	if !p.InStock() {
		return Selection{}, ErrOutOfStock
	}
	return Selection{Product: p, Quantity: 1}, nil
}

// WithQuantity returns the selection clamped into [1, Stock].
func (s Selection) WithQuantity(q int) Selection {
	s.Quantity = clamp(q, 1, s.Product.Stock)
	return s
}

// Increment raises the quantity by one, capped at the available stock.
func (s Selection) Increment() Selection {
	return s.WithQuantity(s.Quantity + 1)
}

// Decrement lowers the quantity by one, floored at 1.
func (s Selection) Decrement() Selection {
	return s.WithQuantity(s.Quantity - 1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
