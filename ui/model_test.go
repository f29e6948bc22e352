package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qyinm/catalogtui/catalog"
	"github.com/qyinm/catalogtui/config"
	"github.com/qyinm/catalogtui/types"
)

type fakeSource struct {
	products   []types.Product
	categories []types.Category
	err        error
	cleared    int
}

func newFakeSource() *fakeSource {
	var products []types.Product
	for i := 1; i <= 15; i++ {
		products = append(products, types.NewProduct(i, fmt.Sprintf("Phone %d", i), "smartphones",
			fmt.Sprintf("https://img.example/%d.png", i), float64(i)*10))
	}
	for i := 16; i <= 25; i++ {
		products = append(products, types.NewProduct(i, fmt.Sprintf("Laptop %d", i), "laptops",
			fmt.Sprintf("https://img.example/%d.png", i), float64(i)*100))
	}
	return &fakeSource{
		products: products,
		categories: []types.Category{
			types.NewKeyedCategory("smartphones", "Smartphones"),
			types.NewKeyedCategory("laptops", "Laptops"),
		},
	}
}

func (f *fakeSource) GetProducts(ctx context.Context) ([]types.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeSource) GetCategories(ctx context.Context) ([]types.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeSource) ClearCache() {
	f.cleared++
}

func testViewConfig() config.ViewConfig {
	return config.ViewConfig{
		PageSize:        10,
		Debounce:        time.Millisecond,
		ScrollThreshold: 1,
		Currency:        "₹",
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	res, cmd := m.Update(msg)
	next, ok := res.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", res)
	}
	return next, cmd
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ = update(t, m, msg)
	return m
}

// newLoadedModel returns a sized model with the fake catalog loaded.
func newLoadedModel(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := NewModel(context.Background(), src, testViewConfig(), nil)
	t.Cleanup(m.cancel)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m, _ = update(t, m, fetchCatalog(m.ctx, src, m.requestID)())
	return m
}

func TestModelStartsLoading(t *testing.T) {
	m := NewModel(context.Background(), newFakeSource(), testViewConfig(), nil)
	defer m.cancel()

	if !m.catalog.Loading() {
		t.Fatalf("new model should be loading")
	}
	if !strings.Contains(m.View(), "Loading products") {
		t.Fatalf("loading view missing spinner text:\n%s", m.View())
	}
}

func TestModelLoadShowsFirstPage(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	if m.catalog.Status() != catalog.StatusReady {
		t.Fatalf("status: got %v want ready", m.catalog.Status())
	}
	if got := len(m.list.Items()); got != 10 {
		t.Fatalf("list items: got %d want 10", got)
	}
	if got := len(m.catalog.Options()); got != 3 {
		t.Fatalf("options: got %d want 3", got)
	}
	if !strings.Contains(m.View(), "Showing 10 of 25") {
		t.Fatalf("status bar missing counts:\n%s", m.View())
	}
}

func TestModelDropsStaleLoad(t *testing.T) {
	src := newFakeSource()
	m := NewModel(context.Background(), src, testViewConfig(), nil)
	defer m.cancel()

	m, _ = update(t, m, fetchCatalog(m.ctx, src, m.requestID+1)())
	if !m.catalog.Loading() {
		t.Fatalf("load for another request should be ignored")
	}
}

func TestModelFailureAndRetry(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("provider down")
	m := newLoadedModel(t, src)

	if !m.catalog.Failed() {
		t.Fatalf("expected failed state")
	}
	view := m.View()
	if !strings.Contains(view, "provider down") || !strings.Contains(view, "press r to retry") {
		t.Fatalf("error view missing message:\n%s", view)
	}

	m = press(t, m, "r")
	if m.requestID != 2 {
		t.Fatalf("requestID: got %d want 2", m.requestID)
	}
	if !m.catalog.Loading() {
		t.Fatalf("reload should return to loading")
	}
	if src.cleared != 1 {
		t.Fatalf("reload should clear the source cache, cleared=%d", src.cleared)
	}

	// The failed first request must not overwrite the retry.
	src.err = nil
	m, _ = update(t, m, fetchCatalog(m.ctx, src, 1)())
	if !m.catalog.Loading() {
		t.Fatalf("stale response applied after reload")
	}
	m, _ = update(t, m, fetchCatalog(m.ctx, src, 2)())
	if m.catalog.Status() != catalog.StatusReady {
		t.Fatalf("retry should load, got %v", m.catalog.Status())
	}
}

func TestModelSearchIsDebounced(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	m = press(t, m, "/")
	if !m.search.Focused() {
		t.Fatalf("search should be focused")
	}
	for _, r := range "lap" {
		m = press(t, m, string(r))
	}
	if m.search.Value() != "lap" {
		t.Fatalf("search value: got %q", m.search.Value())
	}

	// Superseded ticket does nothing.
	m, _ = update(t, m, filterDebounceMsg{ticket: 2})
	if m.catalog.Search() != "" || m.catalog.FilteredCount() != 25 {
		t.Fatalf("stale ticket committed the filter")
	}

	m, _ = update(t, m, filterDebounceMsg{ticket: 3})
	if m.catalog.Search() != "lap" {
		t.Fatalf("committed search: got %q", m.catalog.Search())
	}
	if got := m.catalog.FilteredCount(); got != 10 {
		t.Fatalf("filtered count: got %d want 10", got)
	}
	if m.catalog.Page() != 1 {
		t.Fatalf("filter commit should reset page")
	}

	// Typing while focused must not quit.
	m = press(t, m, "q")
	if m.ctx.Err() != nil {
		t.Fatalf("q inside search box quit the model")
	}
}

func TestModelEmptyResult(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	m = press(t, m, "/")
	for _, r := range "zzz" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")
	m, _ = update(t, m, filterDebounceMsg{ticket: 3})

	if m.catalog.FilteredCount() != 0 {
		t.Fatalf("expected no matches")
	}
	if !strings.Contains(m.View(), "No products match") {
		t.Fatalf("empty state missing:\n%s", m.View())
	}
}

func TestModelCategoryCycle(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	m = press(t, m, "tab")
	if m.categoryIdx != 1 {
		t.Fatalf("categoryIdx: got %d want 1", m.categoryIdx)
	}
	if m.catalog.Category() != "" {
		t.Fatalf("category committed before debounce fired")
	}
	if !strings.Contains(m.View(), "filtering") {
		t.Fatalf("pending selection should be marked:\n%s", m.View())
	}

	m, _ = update(t, m, filterDebounceMsg{ticket: 1})
	if m.catalog.Category() != "smartphones" {
		t.Fatalf("committed category: got %q", m.catalog.Category())
	}
	if got := m.catalog.FilteredCount(); got != 15 {
		t.Fatalf("filtered count: got %d want 15", got)
	}
	if got := len(m.list.Items()); got != 10 {
		t.Fatalf("window after commit: got %d want 10", got)
	}

	m = press(t, m, "x")
	if m.categoryIdx != 0 {
		t.Fatalf("clear filters should select All Categories")
	}
	m, _ = update(t, m, filterDebounceMsg{ticket: 2})
	if m.catalog.Category() != "" || m.catalog.FilteredCount() != 25 {
		t.Fatalf("clear filters not committed")
	}
}

func TestModelScrollLoadsMore(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	for i := 0; i < 30 && m.catalog.Page() == 1; i++ {
		m = press(t, m, "down")
	}
	if m.catalog.Page() != 2 {
		t.Fatalf("scrolling to the bottom should load page 2")
	}
	if got := len(m.list.Items()); got != 20 {
		t.Fatalf("list items: got %d want 20", got)
	}

	for i := 0; i < 60; i++ {
		m = press(t, m, "down")
	}
	if !m.catalog.Exhausted() {
		t.Fatalf("window should be exhausted")
	}
	if got := len(m.list.Items()); got != 25 {
		t.Fatalf("list items: got %d want 25", got)
	}
	if m.catalog.Page() != 3 {
		t.Fatalf("page: got %d want 3", m.catalog.Page())
	}
}

func TestModelMouseWheelLoadsMore(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	// Releases are not scroll steps.
	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonWheelDown})
	if m.list.Index() != 0 {
		t.Fatalf("wheel release moved the cursor to %d", m.list.Index())
	}

	for i := 0; i < 30 && m.catalog.Page() == 1; i++ {
		m, _ = update(t, m, wheel)
	}
	if m.catalog.Page() != 2 {
		t.Fatalf("wheel scrolling to the bottom should load page 2")
	}
	if got := len(m.list.Items()); got != 20 {
		t.Fatalf("list items: got %d want 20", got)
	}
}

func TestModelReloadKeepsPendingCategory(t *testing.T) {
	src := newFakeSource()
	m := newLoadedModel(t, src)

	m = press(t, m, "r")
	m = press(t, m, "tab")
	if m.categoryIdx != 1 {
		t.Fatalf("categoryIdx: got %d want 1", m.categoryIdx)
	}

	m, _ = update(t, m, fetchCatalog(m.ctx, src, m.requestID)())
	if m.catalog.Status() != catalog.StatusReady {
		t.Fatalf("reload should complete, got %v", m.catalog.Status())
	}
	if m.categoryIdx != 1 {
		t.Fatalf("load reset the pending selection to %d", m.categoryIdx)
	}

	m, _ = update(t, m, filterDebounceMsg{ticket: 1})
	if m.catalog.Category() != "smartphones" {
		t.Fatalf("committed category: got %q want %q", m.catalog.Category(), "smartphones")
	}
	if got := m.catalog.FilteredCount(); got != 15 {
		t.Fatalf("filtered count: got %d want 15", got)
	}
}

func TestModelReloadWhileLoadingIsIgnored(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	m = press(t, m, "r")
	if m.requestID != 2 {
		t.Fatalf("requestID: got %d want 2", m.requestID)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd != nil {
		t.Fatalf("second reload should not start another fetch")
	}
	if m.requestID != 2 {
		t.Fatalf("requestID: got %d want 2", m.requestID)
	}
}

func TestModelDetailBlockedWithoutFreshCatalog(t *testing.T) {
	src := newFakeSource()
	m := newLoadedModel(t, src)

	m = press(t, m, "r")
	m = press(t, m, "enter")
	if m.state != ListView {
		t.Fatalf("enter while loading opened a detail view")
	}

	src.err = errors.New("provider down")
	m, _ = update(t, m, fetchCatalog(m.ctx, src, m.requestID)())
	if !m.catalog.Failed() {
		t.Fatalf("expected failed state")
	}
	m = press(t, m, "enter")
	if m.state != ListView {
		t.Fatalf("enter after a failed reload opened a stale product")
	}
}

func TestModelDetailView(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())

	m = press(t, m, "enter")
	if m.state != DetailView {
		t.Fatalf("enter should open the detail view")
	}
	if !strings.Contains(m.View(), "Phone 1") {
		t.Fatalf("detail view missing product:\n%s", m.View())
	}

	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	defer func() { writeClipboard = orig }()

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatalf("copy should return a command")
	}
	m, _ = update(t, m, cmd())
	if copied != "https://img.example/1.png" {
		t.Fatalf("copied: got %q", copied)
	}
	if !strings.Contains(m.statusMsg, "Copied") {
		t.Fatalf("status: got %q", m.statusMsg)
	}

	m = press(t, m, "esc")
	if m.state != ListView {
		t.Fatalf("esc should return to the list")
	}
}

func TestModelQuitCancelsPendingWork(t *testing.T) {
	m := newLoadedModel(t, newFakeSource())
	m = press(t, m, "tab")
	if !m.debounce.Pending() {
		t.Fatalf("expected a pending debounce")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command should produce tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Fatalf("quit should cancel the model context")
	}
	if m.debounce.Pending() {
		t.Fatalf("quit should cancel the pending debounce")
	}

	// A timer that still fires after teardown is ignored.
	m, _ = update(t, m, filterDebounceMsg{ticket: 1})
	if m.catalog.Category() != "" {
		t.Fatalf("debounce fired after quit")
	}
}

func TestRenderDetail(t *testing.T) {
	p := types.NewProduct(7, "Essence Mascara", "beauty", "https://img.example/7.png", 9.99).
		WithDetails("Long lasting lashes.", "Essence", 4.5, 12)

	out := renderDetail(p, "₹", 60)
	for _, want := range []string{"Essence Mascara", "₹ 9.99", "beauty", "Essence", "4.5", "12", "Long lasting lashes.", "https://img.example/7.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}

	bare := renderDetail(types.NewProduct(8, "Plain", "misc", "", 1), "", 0)
	if strings.Contains(bare, "Brand") || strings.Contains(bare, "Image") {
		t.Errorf("empty fields should be omitted:\n%s", bare)
	}
}

func TestFormatPrice(t *testing.T) {
	p := types.NewProduct(1, "x", "y", "", 1200)
	if got := formatPrice("₹", p); got != "₹ 1200" {
		t.Fatalf("formatPrice: got %q", got)
	}
	if got := formatPrice("", p); got != "1200" {
		t.Fatalf("formatPrice without currency: got %q", got)
	}
}
