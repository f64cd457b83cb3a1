package domain

import "time"

// Product is the catalog-side view of a rentable tool. The cart copies its
// descriptive fields into a LineItem on first add.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	ImageRef string  `json:"image_ref"`
	Price    float64 `json:"price"`
}

// LineItem is one rented product selection. Price is per rental day.
type LineItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	ImageRef string  `json:"image_ref"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Days     int     `json:"days"`
}

// CartSnapshot represents the full cart state at checkout time
type CartSnapshot struct {
	Items      []LineItem `json:"items"`
	CapturedAt time.Time  `json:"captured_at"`
}
