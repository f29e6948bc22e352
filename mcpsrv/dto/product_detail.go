package dto

type ProductDetail struct {
	Product
	PriceDisplay string  `json:"price_display"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand"`
	Rating       float64 `json:"rating"`
	Stock        int     `json:"stock"`
}
