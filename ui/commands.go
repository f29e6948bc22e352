package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qyinm/catalogtui/catalog"
	"github.com/qyinm/catalogtui/types"
)

// Message types for async operations

type catalogLoadedMsg struct {
	requestID int
	event     catalog.Event
}

type filterDebounceMsg struct {
	ticket catalog.Ticket
}

type clipboardMsg struct {
	text string
	err  error
}

// fetchCatalog returns a tea.Cmd that loads products and categories asynchronously
func fetchCatalog(ctx context.Context, source types.ProductSource, requestID int) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{requestID: requestID, event: catalog.Load(ctx, source)}
	}
}

// debounceFilter fires ticket after delay; Update drops it if a newer change
// superseded it.
func debounceFilter(delay time.Duration, ticket catalog.Ticket) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return filterDebounceMsg{ticket: ticket}
	})
}

var writeClipboard = clipboard.WriteAll

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: writeClipboard(text)}
	}
}
