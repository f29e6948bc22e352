package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/qyinm/catalogtui/types"
)

// productPayload is the subset of a provider product the catalog consumes.
// Every other field is left undecoded.
type productPayload struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
	Image       string          `json:"image"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Rating      json.RawMessage `json:"rating"`
	Stock       int             `json:"stock"`
}

type productEnvelope struct {
	Products []productPayload `json:"products"`
}

// ParseProducts decodes a product collection. The provider may wrap the list
// in {"products": [...]} or return a bare array.
func ParseProducts(r io.Reader) ([]types.Product, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty product payload")
	}

	var items []productPayload
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode product array: %w", err)
		}
	case '{':
		var env productEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode product envelope: %w", err)
		}
		items = env.Products
	default:
		return nil, fmt.Errorf("unexpected product payload starting with %q", raw[0])
	}

	products := make([]types.Product, 0, len(items))
	for _, it := range items {
		thumbnail := it.Thumbnail
		if thumbnail == "" {
			thumbnail = it.Image
		}
		price := it.Price
		if price < 0 {
			price = 0
		}
		products = append(products, types.NewProduct(
			it.ID,
			strings.TrimSpace(it.Title),
			it.Category,
			thumbnail,
			price,
		).WithDetails(
			strings.TrimSpace(it.Description),
			it.Brand,
			parseRating(it.Rating),
			it.Stock,
		))
	}
	return products, nil
}

// parseRating accepts a plain number or an object carrying "rate", the two
// shapes public catalog APIs use.
func parseRating(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var obj struct {
		Rate float64 `json:"rate"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Rate
	}
	return 0
}

type keyedCategoryPayload struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ParseCategories decodes a category collection whose elements are either
// bare strings or {slug, name} objects. Shapes may be mixed within one array.
func ParseCategories(r io.Reader) ([]types.Category, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("decode category array: %w", err)
	}

	categories := make([]types.Category, 0, len(elems))
	seen := make(map[string]struct{}, len(elems))
	for i, elem := range elems {
		c, err := parseCategory(elem)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		if c.Slug() == "" {
			continue
		}
		if _, ok := seen[c.Slug()]; ok {
			continue
		}
		seen[c.Slug()] = struct{}{}
		categories = append(categories, c)
	}
	return categories, nil
}

func parseCategory(elem json.RawMessage) (types.Category, error) {
	elem = bytes.TrimSpace(elem)
	if len(elem) == 0 {
		return types.Category{}, fmt.Errorf("empty element")
	}
	switch elem[0] {
	case '"':
		var label string
		if err := json.Unmarshal(elem, &label); err != nil {
			return types.Category{}, err
		}
		return types.NewBareCategory(strings.TrimSpace(label)), nil
	case '{':
		var kc keyedCategoryPayload
		if err := json.Unmarshal(elem, &kc); err != nil {
			return types.Category{}, err
		}
		return types.NewKeyedCategory(strings.TrimSpace(kc.Slug), strings.TrimSpace(kc.Name)), nil
	default:
		return types.Category{}, fmt.Errorf("unsupported category shape %s", elem)
	}
}
