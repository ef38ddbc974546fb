package cart

// LineItem is one (product, size) entry in a cart. Price is captured
// when the item is added and not re-validated against the catalog.
type LineItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}
