package dto

import (
	"strings"

	"github.com/qyinm/catalogtui/types"
)

func FromProduct(p types.Product) Product {
	return Product{
		ID:        p.ID(),
		Title:     p.Name(),
		Category:  p.Category(),
		Thumbnail: p.Thumbnail(),
		Price:     p.Price(),
	}
}

func FromProducts(products []types.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromCategory(o types.CategoryOption) Category {
	return Category{Value: o.Value(), Label: o.Label()}
}

func FromCategories(options []types.CategoryOption) []Category {
	out := make([]Category, 0, len(options))
	for _, o := range options {
		out = append(out, FromCategory(o))
	}
	return out
}

// FromProductDetail includes the optional provider fields. currency prefixes
// PriceDisplay when set.
func FromProductDetail(p types.Product, currency string) ProductDetail {
	display := p.PriceString()
	if c := strings.TrimSpace(currency); c != "" {
		display = c + " " + display
	}
	return ProductDetail{
		Product:      FromProduct(p),
		PriceDisplay: display,
		Description:  p.Description(),
		Brand:        p.Brand(),
		Rating:       p.Rating(),
		Stock:        p.Stock(),
	}
}
