package catalog

import (
	"errors"
	"slices"

	"github.com/qyinm/catalogtui/types"
)

// DefaultPageSize is the number of products each page adds to the window.
const DefaultPageSize = 10

var (
	ErrNotLoaded = errors.New("catalog not loaded")
	ErrNotFound  = errors.New("product not found")
)

// Status is the load state of the catalog.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a state transition input for Reduce.
type Event interface {
	event()
}

// FetchStarted marks the start of a (re)load.
type FetchStarted struct{}

// FetchSucceeded carries both collections once the two fetches complete.
type FetchSucceeded struct {
	Products   []types.Product
	Categories []types.Category
}

// FetchFailed carries the loader error.
type FetchFailed struct {
	Err error
}

// FilterCommitted applies a debounced search text and category.
type FilterCommitted struct {
	Search   string
	Category string
}

// LoadMoreRequested asks for the next page of the filtered collection.
type LoadMoreRequested struct{}

func (FetchStarted) event()      {}
func (FetchSucceeded) event()    {}
func (FetchFailed) event()       {}
func (FilterCommitted) event()   {}
func (LoadMoreRequested) event() {}

// State is the catalog view state. It is a value: Reduce returns a new State
// and never mutates slices reachable from an earlier one.
//
// Invariant: len(window) == min(page*pageSize, len(filtered)).
type State struct {
	pageSize int
	status   Status
	err      error

	products []types.Product
	options  []types.CategoryOption

	search   string
	category string
	page     int

	// filtered caches Filter(products, search, category) until the next
	// commit or reload.
	filtered []types.Product
	window   []types.Product
}

// NewState returns an empty, loading state. A non-positive pageSize selects
// DefaultPageSize.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		pageSize: pageSize,
		status:   StatusLoading,
		page:     1,
		options:  []types.CategoryOption{types.AllCategories},
	}
}

// Reduce applies ev to s.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case FetchStarted:
		s.status = StatusLoading
		s.err = nil
	case FetchSucceeded:
		s.status = StatusReady
		s.err = nil
		s.products = slices.Clone(ev.Products)
		s.options = Options(ev.Categories)
		s = s.refilter()
	case FetchFailed:
		s.status = StatusFailed
		s.err = ev.Err
	case FilterCommitted:
		s.search = ev.Search
		s.category = ev.Category
		s = s.refilter()
	case LoadMoreRequested:
		s = s.loadMore()
	}
	return s
}

func (s State) refilter() State {
	s.filtered = Filter(s.products, s.search, s.category)
	s.page = 1
	s.window = slices.Clone(s.filtered[:min(s.pageSize, len(s.filtered))])
	return s
}

func (s State) loadMore() State {
	if s.status != StatusReady {
		return s
	}
	start := s.page * s.pageSize
	if start >= len(s.filtered) {
		return s
	}
	end := min(start+s.pageSize, len(s.filtered))
	s.window = slices.Concat(s.window, s.filtered[start:end])
	s.page++
	return s
}

func (s State) Status() Status { return s.status }
func (s State) Err() error     { return s.err }
func (s State) Loading() bool  { return s.status == StatusLoading }
func (s State) Failed() bool   { return s.status == StatusFailed }
func (s State) Page() int      { return s.page }
func (s State) PageSize() int  { return s.pageSize }
func (s State) Search() string { return s.search }

// Category returns the committed category filter; empty means none.
func (s State) Category() string { return s.category }

// Total is the size of the full collection.
func (s State) Total() int { return len(s.products) }

// FilteredCount is the number of products matching the committed filter.
func (s State) FilteredCount() int { return len(s.filtered) }

// Exhausted reports whether the window already holds every filtered product.
func (s State) Exhausted() bool { return len(s.window) >= len(s.filtered) }

// Window returns a copy of the visible window.
func (s State) Window() []types.Product { return slices.Clone(s.window) }

// Options returns the category selector options, "All Categories" first.
func (s State) Options() []types.CategoryOption { return slices.Clone(s.options) }

// Product looks up a product in the full collection by id.
func (s State) Product(id int) (types.Product, error) {
	if s.status != StatusReady {
		return types.Product{}, ErrNotLoaded
	}
	i := slices.IndexFunc(s.products, func(p types.Product) bool { return p.ID() == id })
	if i < 0 {
		return types.Product{}, ErrNotFound
	}
	return s.products[i], nil
}
