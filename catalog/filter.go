// Package catalog holds the product-listing core: the filter engine, the
// paged visible window and its reducer, the debounce scheduler and the
// initial loader. Nothing here renders; the ui and mcpsrv packages host it.
package catalog

import (
	"strings"

	"github.com/qyinm/catalogtui/types"
)

// Filter returns the products whose title contains search (case-insensitive)
// and, when category is non-empty, whose category equals it. The result keeps
// the input order and never aliases products.
func Filter(products []types.Product, search, category string) []types.Product {
	needle := strings.ToLower(search)
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category() != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name()), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Options resolves the provider's heterogeneous categories into the selector
// list, led by the "All Categories" sentinel.
func Options(categories []types.Category) []types.CategoryOption {
	opts := make([]types.CategoryOption, 0, len(categories)+1)
	opts = append(opts, types.AllCategories)
	for _, c := range categories {
		opts = append(opts, c.Option())
	}
	return opts
}
