package favorite

// Entry is a denormalized snapshot of a liked product, enough to render
// the favorites list even if the product later disappears.
type Entry struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url,omitempty"`
}
