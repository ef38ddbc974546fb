package order

import (
	"time"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/cart"
)

// StatusPendingPayment is the only status written today; the column
// exists so a payment confirmation can move it later.
const StatusPendingPayment = "pending_payment"

type Order struct {
	ID               int64     `json:"id"`
	UserEmail        string    `json:"user_email"`
	Subtotal         float64   `json:"subtotal"`
	ShippingCost     float64   `json:"shipping_cost"`
	Total            float64   `json:"total"`
	ShippingProvider string    `json:"shipping_provider"`
	ShippingAddress  Address   `json:"shipping_address"`
	Customer         Customer  `json:"customer"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	Items            []Item    `json:"items,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	DNI       string `json:"dni,omitempty"`
}

// Item snapshots a cart line at purchase time.
type Item struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Size        string  `json:"size,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// AbandonedCheckout captures email + cart as soon as the shopper gives
// an address at the contact step, for remarketing follow-up.
type AbandonedCheckout struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	CartSnapshot []cart.LineItem `json:"cart_snapshot"`
	Recovered    bool            `json:"recovered"`
	CreatedAt    time.Time       `json:"created_at"`
}
