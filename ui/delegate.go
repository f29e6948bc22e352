package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qyinm/catalogtui/types"
)

// ProductDelegate is a custom list delegate for rendering Product cards
type ProductDelegate struct {
	Currency string
}

// Height returns the height of a list item (3 lines)
func (d ProductDelegate) Height() int {
	return 3
}

// Spacing returns the spacing between list items
func (d ProductDelegate) Spacing() int {
	return 0
}

// Update handles updates for the delegate (no-op for products)
func (d ProductDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single product card
func (d ProductDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	product, ok := item.(types.Product)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	// Line 1: ID + Title + Price
	// Format: "#12  Essence Mascara Lash Princess           ₹ 9.99"
	idStr := fmt.Sprintf("#%-4d", product.ID())
	priceDisplay := formatPrice(d.Currency, product)

	idWidth := lipgloss.Width(idStr)
	priceWidth := lipgloss.Width(priceDisplay) + 1
	availableForTitle := max(m.Width()-idWidth-priceWidth, 0)
	titleStr := fit(product.Name(), availableForTitle)

	var line1 string
	if isSelected {
		idStyle := lipgloss.NewStyle().Foreground(DraculaCyan).Bold(true)
		titleStyle := lipgloss.NewStyle().Foreground(DraculaPink).Bold(true)
		priceStyle := lipgloss.NewStyle().Foreground(DraculaGreen).Bold(true)
		line1 = idStyle.Render(idStr) + titleStyle.Render(titleStr) + " " + priceStyle.Render(priceDisplay)
	} else {
		idStyle := lipgloss.NewStyle().Foreground(DraculaComment)
		titleStyle := lipgloss.NewStyle().Foreground(DraculaCyan)
		priceStyle := lipgloss.NewStyle().Foreground(DraculaGreen)
		line1 = idStyle.Render(idStr) + titleStyle.Render(titleStr) + " " + priceStyle.Render(priceDisplay)
	}

	// Line 2: Category (indented)
	indent := "      "
	available := max(m.Width()-len(indent), 0)
	categoryStyle := lipgloss.NewStyle().Foreground(DraculaForeground)
	line2 := indent + categoryStyle.Render(truncate("Category: "+product.Category(), available))

	// Line 3: Thumbnail reference (indented, dimmed)
	thumbStyle := lipgloss.NewStyle().Foreground(DraculaComment)
	line3 := indent + thumbStyle.Render(truncate(product.Thumbnail(), available))

	fmt.Fprint(w, line1+"\n"+line2+"\n"+line3)
}

// formatPrice renders "₹ 9.99" style prices.
func formatPrice(currency string, p types.Product) string {
	if currency == "" {
		return p.PriceString()
	}
	return currency + " " + p.PriceString()
}

// truncate shortens s to at most width cells, ending with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	s = truncate(s, width)
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
