package product

import "time"

// Size labels offered per age group. Older rows may carry free-form
// labels outside these sets; they still render, but the admin variant
// form only offers these.
var (
	AdultSizes = []string{"S", "M", "L", "XL", "XXL"}
	KidsSizes  = []string{"4", "6", "8", "10", "12", "14"}
)

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	OldPrice    *float64  `json:"old_price,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Team        string    `json:"team,omitempty"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	WeightGrams int       `json:"weight_grams,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Gallery     []string  `json:"gallery,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Variants    []Variant `json:"variants,omitempty"`
}

type Variant struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	StockQty  int    `json:"stock_qty"`
}
