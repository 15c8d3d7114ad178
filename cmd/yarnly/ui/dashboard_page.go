package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"yarnly/internal/catalog"
)

// DashboardPageModel defines the state of the storefront catalog page.
type DashboardPageModel struct {
	width  int
	height int

	search   textinput.Model
	catIdx   int
	cursor   int
	viewport viewport.Model

	products []catalog.Product
	filtered []catalog.Product
	wishlist map[int64]bool
	loading  bool

	styles Styles
}

// NewDashboardPageModel creates a new dashboard page. The search input stays
// focused for the lifetime of the page; typing always edits the query.
func NewDashboardPageModel(styles Styles) DashboardPageModel {
	search := textinput.New()
	search.Placeholder = "Search handcrafted pieces..."
	search.CharLimit = 80
	search.Width = 40
	search.Focus()

	vp := viewport.New(80, 20)

	return DashboardPageModel{
		search:   search,
		viewport: vp,
		products: []catalog.Product{},
		filtered: []catalog.Product{},
		wishlist: make(map[int64]bool),
		loading:  true,
		styles:   styles,
	}
}

// SetSize updates the size of the page and its viewport.
func (m *DashboardPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	// Reserve space for the search field, pills, and count line.
	m.viewport.Height = h - 7
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.refreshViewport()
}

// Activate resets the filter state for a fresh visit and marks the catalog
// as loading until the next SetCatalog call.
func (m *DashboardPageModel) Activate() {
	m.search.SetValue("")
	m.catIdx = 0
	m.cursor = 0
	m.loading = true
	m.applyFilter()
}

// SetCatalog installs a freshly fetched product list.
func (m *DashboardPageModel) SetCatalog(products []catalog.Product) {
	if products == nil {
		products = []catalog.Product{}
	}
	m.products = products
	m.loading = false
	m.applyFilter()
}

// Category returns the currently selected category.
func (m DashboardPageModel) Category() catalog.Category {
	return catalog.Categories[m.catIdx]
}

// Filtered returns the products currently visible.
func (m DashboardPageModel) Filtered() []catalog.Product {
	return m.filtered
}

// CursorProduct returns the product under the cursor, if any.
func (m DashboardPageModel) CursorProduct() (catalog.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return catalog.Product{}, false
	}
	return m.filtered[m.cursor], true
}

// Wishlisted reports whether the product is hearted.
func (m DashboardPageModel) Wishlisted(id int64) bool {
	return m.wishlist[id]
}

// applyFilter recomputes the visible rows from the current query and
// category. Favourite is a local view over hearted products; every other
// category filters on the server-provided category field.
func (m *DashboardPageModel) applyFilter() {
	query := m.search.Value()
	cat := m.Category()

	source := m.products
	if cat == catalog.CategoryFavourite {
		source = make([]catalog.Product, 0, len(m.wishlist))
		for _, p := range m.products {
			if m.wishlist[p.ID] {
				source = append(source, p)
			}
		}
		cat = catalog.CategoryAll
	}
	m.filtered = catalog.Filter(source, query, cat)

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.refreshViewport()
}

// Update handles messages.
func (m DashboardPageModel) Update(msg tea.Msg) (DashboardPageModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			m.catIdx = (m.catIdx + 1) % len(catalog.Categories)
			m.cursor = 0
			m.applyFilter()
			return m, nil
		case "shift+tab":
			m.catIdx = (m.catIdx + len(catalog.Categories) - 1) % len(catalog.Categories)
			m.cursor = 0
			m.applyFilter()
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
				m.refreshViewport()
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.refreshViewport()
			}
			return m, nil
		case "ctrl+w":
			if p, ok := m.CursorProduct(); ok {
				m.wishlist[p.ID] = !m.wishlist[p.ID]
				m.applyFilter()
			}
			return m, nil
		case "enter":
			// Out-of-stock rows have no add-to-cart affordance.
			if p, ok := m.CursorProduct(); ok && p.InStock() {
				return m, func() tea.Msg {
					return OpenCartMsg{Product: p}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

// View renders the page.
func (m DashboardPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.FieldFocus.Render(m.search.View()))
	sb.WriteString("\n")
	sb.WriteString(m.renderPills())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.countLine())

	return m.styles.Content.Render(sb.String())
}

func (m DashboardPageModel) renderPills() string {
	pills := make([]string, 0, len(catalog.Categories))
	for i, c := range catalog.Categories {
		if i == m.catIdx {
			pills = append(pills, m.styles.PillActive.Render(string(c)))
		} else {
			pills = append(pills, m.styles.Pill.Render(string(c)))
		}
	}
	return strings.Join(pills, " ")
}

func (m *DashboardPageModel) refreshViewport() {
	var sb strings.Builder

	switch {
	case m.loading:
		sb.WriteString(m.styles.Muted.Render("Loading products..."))
	case len(m.filtered) == 0:
		sb.WriteString(m.styles.Bold.Render("No products found"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Try a different search or category"))
	default:
		for i, p := range m.filtered {
			sb.WriteString(m.renderRow(i, p))
			sb.WriteString("\n")
		}
	}

	m.viewport.SetContent(sb.String())
}

func (m DashboardPageModel) renderRow(idx int, p catalog.Product) string {
	heart := " "
	if m.wishlist[p.ID] {
		heart = m.styles.Heart.Render("♥")
	}

	stock := m.styles.Badge.Render(fmt.Sprintf("%d in stock", p.Stock))
	if !p.InStock() {
		stock = m.styles.Error.Render("out of stock")
	}

	line := fmt.Sprintf("%s %-24s %-12s %s  %s",
		heart,
		truncate(p.Name, 24),
		string(p.Category),
		m.styles.Price.Render(p.DisplayPrice()),
		stock,
	)

	style := m.styles.Row
	if idx == m.cursor {
		style = m.styles.RowCursor
	}
	row := style.Render(line)
	if idx == m.cursor && p.Description != "" {
		row += "\n" + m.styles.Muted.Render("  "+truncate(p.Description, 70))
	}
	return row
}

func (m DashboardPageModel) countLine() string {
	if m.loading {
		return ""
	}
	noun := "pieces"
	if len(m.filtered) == 1 {
		noun = "piece"
	}
	return m.styles.Subtitle.Render(fmt.Sprintf("%d handcrafted %s", len(m.filtered), noun))
}

func truncate(s string, l int) string {
	if len(s) > l {
		return s[:l-3] + "..."
	}
	return s
}
