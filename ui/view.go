package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qyinm/catalogtui/catalog"
	"github.com/qyinm/catalogtui/types"
)

// View renders the model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🛒 Product Catalog"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.categoryBar())
	b.WriteString("\n")

	switch m.state {
	case ListView:
		b.WriteString(m.listBody())
	case DetailView:
		b.WriteString(m.viewport.View())
	default:
		b.WriteString("Unknown state")
	}
	b.WriteString("\n")

	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) listBody() string {
	switch {
	case m.catalog.Loading():
		return EmptyStyle.Render(m.spinner.View() + " Loading products…")
	case m.catalog.Failed():
		return EmptyStyle.Render(
			ErrorStyle.Render("Failed to load catalog: "+m.catalog.Err().Error()) +
				"\n" + StatusBarStyle.Render("press r to retry"))
	case len(m.catalog.Window()) == 0:
		return EmptyStyle.Render("No products match the current filters")
	default:
		return m.list.View()
	}
}

// categoryBar shows the selected category between its neighbours. A pending
// marker is shown until the debounce commits the selection.
func (m Model) categoryBar() string {
	opts := m.catalog.Options()
	if len(opts) == 0 {
		return CategoryItemActiveStyle.Render(types.AllCategories.Label())
	}

	idx := m.categoryIdx
	if idx < 0 || idx >= len(opts) {
		idx = 0
	}
	n := len(opts)
	prev := opts[(idx-1+n)%n]
	next := opts[(idx+1)%n]

	var parts []string
	if n > 1 {
		parts = append(parts, CategoryArrowStyle.Render("◀"), CategoryItemStyle.Render(prev.Label()))
	}
	parts = append(parts, CategoryItemActiveStyle.Render(opts[idx].Label()))
	if n > 2 {
		parts = append(parts, CategoryItemStyle.Render(next.Label()), CategoryArrowStyle.Render("▶"))
	} else if n == 2 {
		parts = append(parts, CategoryArrowStyle.Render("▶"))
	}
	if opts[idx].Value() != m.catalog.Category() || m.search.Value() != m.catalog.Search() {
		parts = append(parts, CategoryPendingStyle.Render("filtering…"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) statusBar() string {
	var status string
	switch m.catalog.Status() {
	case catalog.StatusReady:
		status = fmt.Sprintf("Showing %d of %d · page %d",
			len(m.catalog.Window()), m.catalog.FilteredCount(), m.catalog.Page())
		if m.catalog.Exhausted() && m.catalog.FilteredCount() > 0 {
			status += " · end of results"
		}
	default:
		status = m.catalog.Status().String()
	}
	if m.statusMsg != "" {
		status += " · " + m.statusMsg
	}
	return StatusBarStyle.Render(status)
}

// renderDetail builds the viewport content for a single product.
func renderDetail(p types.Product, currency string, width int) string {
	var b strings.Builder

	b.WriteString(DetailTitleStyle.Render(p.Name()))
	b.WriteString("\n")
	b.WriteString(DetailPriceStyle.Render(formatPrice(currency, p)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(DetailLabelStyle.Render(label+": ") + DetailBodyStyle.Render(value))
		b.WriteString("\n")
	}
	field("ID", strconv.Itoa(p.ID()))
	field("Category", p.Category())
	field("Brand", p.Brand())
	if p.Rating() > 0 {
		field("Rating", strconv.FormatFloat(p.Rating(), 'f', -1, 64))
	}
	if p.Stock() > 0 {
		field("Stock", strconv.Itoa(p.Stock()))
	}
	field("Image", p.Thumbnail())

	if desc := p.Description(); desc != "" {
		body := DetailBodyStyle
		if width > 0 {
			body = body.Width(width)
		}
		b.WriteString("\n")
		b.WriteString(body.Render(desc))
		b.WriteString("\n")
	}
	return b.String()
}
