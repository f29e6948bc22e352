package types

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
)

// Product represents a catalog entry
type Product struct {
	id          int
	title       string
	category    string
	thumbnail   string
	price       float64
	description string
	brand       string
	rating      float64
	stock       int
}

// NewProduct creates a new Product with the fields the catalog filters and renders on
func NewProduct(id int, title, category, thumbnail string, price float64) Product {
	return Product{
		id:        id,
		title:     title,
		category:  category,
		thumbnail: thumbnail,
		price:     price,
	}
}

// WithDetails returns a copy of p carrying the optional detail-view fields
func (p Product) WithDetails(description, brand string, rating float64, stock int) Product {
	p.description = description
	p.brand = brand
	p.rating = rating
	p.stock = stock
	return p
}

// Getters for Product fields
func (p Product) ID() int             { return p.id }
func (p Product) Name() string        { return p.title }
func (p Product) Category() string    { return p.category }
func (p Product) Thumbnail() string   { return p.thumbnail }
func (p Product) Price() float64      { return p.price }
func (p Product) Brand() string       { return p.brand }
func (p Product) Rating() float64     { return p.rating }
func (p Product) Stock() int          { return p.stock }
func (p Product) PriceString() string { return strconv.FormatFloat(p.price, 'f', -1, 64) }
func (p Product) String() string      { return fmt.Sprintf("#%d %s", p.id, p.title) }

// list.Item interface implementation
func (p Product) Title() string       { return p.title }
func (p Product) Description() string { return p.description }
func (p Product) FilterValue() string { return p.title }

// Compile-time check that Product implements list.Item
var _ list.Item = Product{}

// CategoryKind tags which shape the provider returned for a category.
type CategoryKind int

const (
	// Bare is a plain text label that doubles as the filter key.
	Bare CategoryKind = iota
	// Keyed is a {slug, name} pair; the slug is the filter key.
	Keyed
)

// Category is either Bare(text) or Keyed(slug, name).
type Category struct {
	kind CategoryKind
	slug string
	name string
}

// NewBareCategory creates a category from a plain label
func NewBareCategory(label string) Category {
	return Category{kind: Bare, slug: label, name: label}
}

// NewKeyedCategory creates a category from a slug and display name
func NewKeyedCategory(slug, name string) Category {
	if name == "" {
		name = slug
	}
	return Category{kind: Keyed, slug: slug, name: name}
}

func (c Category) Kind() CategoryKind { return c.kind }
func (c Category) Slug() string       { return c.slug }
func (c Category) Name() string       { return c.name }

// Option resolves the category into the value/label pair a selector offers.
func (c Category) Option() CategoryOption {
	return CategoryOption{value: c.slug, label: c.name}
}

// CategoryOption is a selectable category: value is the filter key, label is shown.
type CategoryOption struct {
	value string
	label string
}

// AllCategories is the sentinel option that clears the category filter.
var AllCategories = CategoryOption{value: "", label: "All Categories"}

func NewCategoryOption(value, label string) CategoryOption {
	return CategoryOption{value: value, label: label}
}

func (o CategoryOption) Value() string { return o.value }
func (o CategoryOption) Label() string { return o.label }

// ProductSource is the core abstraction for data access.
// Blocking calls with no bubbletea dependency: the TUI and the MCP server both call these.
type ProductSource interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetCategories(ctx context.Context) ([]Category, error)
}
