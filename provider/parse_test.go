package provider

import (
	"strings"
	"testing"

	"github.com/qyinm/catalogtui/types"
)

func TestParseProductsEnvelope(t *testing.T) {
	payload := `{
  "products": [
    {"id": 1, "title": "Essence Mascara Lash Princess", "category": "beauty",
     "thumbnail": "https://cdn.example/1/thumbnail.png", "price": 9.99,
     "description": "Popular mascara", "brand": "Essence", "rating": 4.94, "stock": 5,
     "tags": ["beauty", "mascara"], "reviews": [{"rating": 2}]},
    {"id": 2, "title": "  Eyeshadow Palette with Mirror ", "category": "beauty",
     "thumbnail": "https://cdn.example/2/thumbnail.png", "price": 19.99}
  ],
  "total": 194, "skip": 0, "limit": 2
}`

	got, err := ParseProducts(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ParseProducts error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}

	first := got[0]
	if first.ID() != 1 || first.Name() != "Essence Mascara Lash Princess" || first.Category() != "beauty" {
		t.Fatalf("unexpected first product: %v", first)
	}
	if first.Thumbnail() != "https://cdn.example/1/thumbnail.png" || first.Price() != 9.99 {
		t.Fatalf("unexpected thumbnail/price: %q %v", first.Thumbnail(), first.Price())
	}
	if first.Brand() != "Essence" || first.Rating() != 4.94 || first.Stock() != 5 {
		t.Fatalf("unexpected detail fields: %q %v %d", first.Brand(), first.Rating(), first.Stock())
	}
	if got[1].Name() != "Eyeshadow Palette with Mirror" {
		t.Fatalf("title not trimmed: %q", got[1].Name())
	}
}

func TestParseProductsBareArray(t *testing.T) {
	payload := `[
  {"id": 3, "title": "Mens Casual Slim Fit", "category": "men's clothing",
   "image": "https://img.example/3.jpg", "price": 15.99, "rating": {"rate": 2.1, "count": 430}}
]`

	got, err := ParseProducts(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ParseProducts error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d", len(got))
	}
	if got[0].Thumbnail() != "https://img.example/3.jpg" {
		t.Fatalf("image fallback not applied: %q", got[0].Thumbnail())
	}
	if got[0].Rating() != 2.1 {
		t.Fatalf("rating object not decoded: %v", got[0].Rating())
	}
}

func TestParseProductsClampsNegativePrice(t *testing.T) {
	got, err := ParseProducts(strings.NewReader(`[{"id": 1, "title": "Refund", "price": -4}]`))
	if err != nil {
		t.Fatalf("ParseProducts error: %v", err)
	}
	if got[0].Price() != 0 {
		t.Fatalf("price = %v, want 0", got[0].Price())
	}
}

func TestParseProductsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"scalar":    "42",
		"truncated": `{"products": [{"id": 1,`,
		"bad type":  `{"products": [{"id": "one"}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseProducts(strings.NewReader(payload)); err == nil {
				t.Fatalf("expected error for %q", payload)
			}
		})
	}
}

func TestParseCategoriesBare(t *testing.T) {
	got, err := ParseCategories(strings.NewReader(`["smartphones", "laptops", "fragrances"]`))
	if err != nil {
		t.Fatalf("ParseCategories error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got))
	}
	for _, c := range got {
		if c.Kind() != types.Bare {
			t.Fatalf("category %q should be bare", c.Slug())
		}
	}
	if got[1].Slug() != "laptops" || got[1].Name() != "laptops" {
		t.Fatalf("unexpected category: %q %q", got[1].Slug(), got[1].Name())
	}
}

func TestParseCategoriesKeyed(t *testing.T) {
	payload := `[
  {"slug": "beauty", "name": "Beauty", "url": "https://dummyjson.com/products/category/beauty"},
  {"slug": "home-decoration", "name": "Home Decoration", "url": "https://dummyjson.com/products/category/home-decoration"}
]`
	got, err := ParseCategories(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ParseCategories error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[1].Kind() != types.Keyed || got[1].Slug() != "home-decoration" || got[1].Name() != "Home Decoration" {
		t.Fatalf("unexpected keyed category: %+v", got[1])
	}
}

func TestParseCategoriesMixedAndDuplicates(t *testing.T) {
	payload := `["beauty", {"slug": "beauty", "name": "Beauty"}, {"slug": "", "name": "Nameless"}, {"slug": "groceries", "name": "Groceries"}]`
	got, err := ParseCategories(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ParseCategories error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Kind() != types.Bare || got[1].Slug() != "groceries" {
		t.Fatalf("unexpected categories: %+v", got)
	}
}

func TestParseCategoriesRejectsUnknownShape(t *testing.T) {
	if _, err := ParseCategories(strings.NewReader(`["ok", 12]`)); err == nil {
		t.Fatalf("expected error for numeric category")
	}
	if _, err := ParseCategories(strings.NewReader(`{"categories": []}`)); err == nil {
		t.Fatalf("expected error for non-array payload")
	}
}
