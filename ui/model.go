package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/catalog"
	"github.com/qyinm/catalogtui/config"
	"github.com/qyinm/catalogtui/types"
)

// ViewState represents the current view mode
type ViewState int

const (
	ListView ViewState = iota
	DetailView
)

type cacheClearSource interface {
	ClearCache()
}

// Model is the main TUI model. It hosts a catalog.State and feeds it events
// from fetch completion, debounce timers, and scrolling.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	source types.ProductSource
	logger *zap.Logger
	cfg    config.ViewConfig

	catalog   catalog.State
	debounce  catalog.Debouncer
	requestID int

	// Uncommitted selector state; committed to catalog after the debounce.
	categoryIdx int

	list      list.Model
	search    textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	state     ViewState
	width     int
	height    int
	statusMsg string
}

// NewModel creates a new Model with the given ProductSource. The model's
// lifetime context is derived from ctx; quitting cancels it along with any
// in-flight load.
func NewModel(ctx context.Context, source types.ProductSource, cfg config.ViewConfig, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)

	// Create list with custom product delegate
	l := list.New([]list.Item{}, ProductDelegate{Currency: cfg.Currency}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search products"
	ti.PromptStyle = SearchPromptStyle
	ti.TextStyle = SearchTextStyle

	vp := viewport.New(0, 0)

	s := spinner.New()
	s.Spinner = spinner.Dot

	h := help.New()

	return Model{
		ctx:       ctx,
		cancel:    cancel,
		source:    source,
		logger:    logger,
		cfg:       cfg,
		catalog:   catalog.NewState(cfg.PageSize),
		debounce:  catalog.NewDebouncer(cfg.Debounce),
		requestID: 1,
		list:      l,
		search:    ti,
		viewport:  vp,
		spinner:   s,
		help:      h,
		keys:      keys,
		state:     ListView,
		statusMsg: "Loading catalog…",
	}
}

// Init starts the initial load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCatalog(m.ctx, m.source, m.requestID))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		switch m.state {
		case ListView:
			return m.updateList(msg)
		case DetailView:
			return m.updateDetail(msg)
		}

	case tea.MouseMsg:
		if m.state != ListView || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.list.CursorDown()
		case tea.MouseButtonWheelUp:
			m.list.CursorUp()
		default:
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.checkScroll()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case catalogLoadedMsg:
		if msg.requestID != m.requestID {
			m.logger.Debug("dropping stale catalog load", zap.Int("request_id", msg.requestID))
			return m, nil
		}
		m.catalog = catalog.Reduce(m.catalog, msg.event)
		switch {
		case m.catalog.Failed():
			m.logger.Warn("catalog load failed", zap.Error(m.catalog.Err()))
			m.statusMsg = ""
		default:
			m.logger.Info("catalog loaded",
				zap.Int("products", m.catalog.Total()),
				zap.Int("categories", len(m.catalog.Options())-1))
			// A selection still waiting on the debounce wins over the committed one.
			if !m.debounce.Pending() {
				m.categoryIdx = m.indexOfCategory(m.catalog.Category())
			}
			m.statusMsg = "Ready"
		}
		cmd := m.syncList()
		m.list.ResetSelected()
		return m, cmd

	case filterDebounceMsg:
		if !m.debounce.Due(msg.ticket) {
			return m, nil
		}
		return m.commitFilter()

	case spinner.TickMsg:
		if !m.catalog.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			m.statusMsg = "Copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Copied " + msg.text
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	debounceCmd := m.scheduleFilter()
	return m, tea.Batch(cmd, debounceCmd)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizePanes()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextCategory):
		return m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m.cycleCategory(-1)
	case key.Matches(msg, m.keys.ClearFilters):
		if m.search.Value() == "" && m.categoryIdx == 0 {
			return m, nil
		}
		m.search.SetValue("")
		m.categoryIdx = 0
		cmd := m.scheduleFilter()
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		return m.reload()
	case key.Matches(msg, m.keys.Enter):
		return m.openDetail()
	}

	if !m.catalog.Loading() && !m.catalog.Failed() {
		var cmd, scrollCmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m, scrollCmd = m.checkScroll()
		return m, tea.Batch(cmd, scrollCmd)
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.state = ListView
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if p, ok := m.list.SelectedItem().(types.Product); ok && p.Thumbnail() != "" {
			return m, copyToClipboard(p.Thumbnail())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// scheduleFilter (re)starts the debounce for the current search text and
// category selection.
func (m *Model) scheduleFilter() tea.Cmd {
	ticket := m.debounce.Schedule()
	return debounceFilter(m.debounce.Delay(), ticket)
}

func (m Model) commitFilter() (tea.Model, tea.Cmd) {
	ev := catalog.FilterCommitted{
		Search:   m.search.Value(),
		Category: m.selectedCategory().Value(),
	}
	m.catalog = catalog.Reduce(m.catalog, ev)
	m.logger.Debug("filter committed",
		zap.String("search", ev.Search),
		zap.String("category", ev.Category),
		zap.Int("matches", m.catalog.FilteredCount()))
	cmd := m.syncList()
	m.list.ResetSelected()
	return m, cmd
}

func (m Model) cycleCategory(step int) (tea.Model, tea.Cmd) {
	n := len(m.catalog.Options())
	if n <= 1 {
		return m, nil
	}
	m.categoryIdx = ((m.categoryIdx+step)%n + n) % n
	cmd := m.scheduleFilter()
	return m, cmd
}

func (m Model) selectedCategory() types.CategoryOption {
	opts := m.catalog.Options()
	if m.categoryIdx < 0 || m.categoryIdx >= len(opts) {
		return types.AllCategories
	}
	return opts[m.categoryIdx]
}

func (m Model) indexOfCategory(value string) int {
	for i, o := range m.catalog.Options() {
		if o.Value() == value {
			return i
		}
	}
	return 0
}

// checkScroll appends the next page when the last visible row is within the
// configured threshold of the end of the window.
func (m Model) checkScroll() (Model, tea.Cmd) {
	if m.catalog.Exhausted() {
		return m, nil
	}
	total := len(m.list.Items())
	_, end := m.list.Paginator.GetSliceBounds(total)
	if !catalog.NearBottom(end, total, m.cfg.ScrollThreshold) {
		return m, nil
	}

	m.catalog = catalog.Reduce(m.catalog, catalog.LoadMoreRequested{})
	m.logger.Debug("loaded more products",
		zap.Int("page", m.catalog.Page()),
		zap.Int("visible", len(m.catalog.Window())))
	return m, m.syncList()
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.catalog.Loading() {
		return m, nil
	}
	if clearable, ok := m.source.(cacheClearSource); ok {
		clearable.ClearCache()
	}
	m.requestID++
	m.catalog = catalog.Reduce(m.catalog, catalog.FetchStarted{})
	m.state = ListView
	m.statusMsg = "Reloading catalog…"
	return m, tea.Batch(m.spinner.Tick, fetchCatalog(m.ctx, m.source, m.requestID))
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	// The list still holds the previous window while loading or after a failure.
	if m.catalog.Loading() || m.catalog.Failed() {
		return m, nil
	}
	p, ok := m.list.SelectedItem().(types.Product)
	if !ok {
		return m, nil
	}
	m.viewport.SetContent(renderDetail(p, m.cfg.Currency, m.viewport.Width))
	m.viewport.GotoTop()
	m.state = DetailView
	return m, nil
}

// quit tears the view down: pending debounce and in-flight loads are cancelled.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.debounce.Cancel()
	m.cancel()
	return m, tea.Quit
}

// syncList pushes the catalog window into the list widget.
func (m *Model) syncList() tea.Cmd {
	window := m.catalog.Window()
	items := make([]list.Item, 0, len(window))
	for _, p := range window {
		items = append(items, p)
	}
	return m.list.SetItems(items)
}

// resizePanes adjusts the dimensions of list and viewport based on window size
func (m *Model) resizePanes() {
	// Reserve space for header, search bar, category bar, status bar and help
	chrome := 4 + lipgloss.Height(m.help.View(m.keys))
	availableHeight := max(m.height-chrome, 0)

	m.list.SetSize(m.width, availableHeight)
	m.search.Width = max(m.width-len(m.search.Prompt)-1, 0)

	m.viewport.Width = m.width
	m.viewport.Height = availableHeight
}
