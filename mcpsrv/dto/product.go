package dto

type Product struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Thumbnail string  `json:"thumbnail"`
	Price     float64 `json:"price"`
}

type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
