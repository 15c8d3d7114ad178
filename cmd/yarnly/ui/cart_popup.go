package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"yarnly/internal/cart"
)

// CartPopupModel defines the state of the add-to-cart dialog.
type CartPopupModel struct {
	selection cart.Selection
	styles    Styles
}

// NewCartPopupModel opens the dialog for a product. Fails for products with
// no stock.
func NewCartPopupModel(selection cart.Selection, styles Styles) CartPopupModel {
	return CartPopupModel{
		selection: selection,
		styles:    styles,
	}
}

// Selection returns the current quantity selection.
func (m CartPopupModel) Selection() cart.Selection {
	return m.selection
}

// Update handles messages.
func (m CartPopupModel) Update(msg tea.Msg) (CartPopupModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "+", "right":
			m.selection = m.selection.Increment()
			return m, nil
		case "down", "-", "left":
			m.selection = m.selection.Decrement()
			return m, nil
		case "enter":
			sel := m.selection
			return m, func() tea.Msg {
				return CartConfirmedMsg{Selection: sel}
			}
		case "esc":
			return m, func() tea.Msg {
				return CartCancelledMsg{}
			}
		}
	}
	return m, nil
}

// View renders the dialog.
func (m CartPopupModel) View() string {
	p := m.selection.Product

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Add to cart"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render(p.Name))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Price.Render(p.DisplayPrice()))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Quantity: %s  %s",
		m.styles.Bold.Render(fmt.Sprintf("%d", m.selection.Quantity)),
		m.styles.Muted.Render(fmt.Sprintf("(of %d in stock)", p.Stock)),
	))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("↑/↓ adjust · enter confirm · esc cancel"))

	return m.styles.Dialog.Render(sb.String())
}
