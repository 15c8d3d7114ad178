package cart

import (
	"testing"

	"yarnly/internal/catalog"
)

func TestNewSelection_OutOfStock(t *testing.T) {
	// No valid quantity exists in [1, 0]; add-to-cart must be impossible.
	_, err := NewSelection(catalog.Product{Name: "Tote Bag", Stock: 0})
	if err != ErrOutOfStock {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestNewSelection_StartsAtOne(t *testing.T) {
	sel, err := NewSelection(catalog.Product{Name: "Wool Scarf", Stock: 3})
	if err != nil {
		t.Fatal(err)
	}
	if sel.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", sel.Quantity)
	}
}

func TestSelection_ClampsToStock(t *testing.T) {
	sel, _ := NewSelection(catalog.Product{Name: "Wool Scarf", Stock: 3})

	for _, tc := range []struct{ in, want int }{
		{0, 1},
		{-5, 1},
		{1, 1},
		{3, 3},
		{4, 3},
		{100, 3},
	} {
		if got := sel.WithQuantity(tc.in).Quantity; got != tc.want {
			t.Errorf("WithQuantity(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSelection_IncrementDecrement(t *testing.T) {
	sel, _ := NewSelection(catalog.Product{Name: "Wool Scarf", Stock: 2})

	sel = sel.Increment()
	if sel.Quantity != 2 {
		t.Errorf("expected 2, got %d", sel.Quantity)
	}
	sel = sel.Increment() // capped at stock
	if sel.Quantity != 2 {
		t.Errorf("expected cap at 2, got %d", sel.Quantity)
	}
	sel = sel.Decrement()
	if sel.Quantity != 1 {
		t.Errorf("expected 1, got %d", sel.Quantity)
	}
	sel = sel.Decrement() // floored at 1
	if sel.Quantity != 1 {
		t.Errorf("expected floor at 1, got %d", sel.Quantity)
	}
}
