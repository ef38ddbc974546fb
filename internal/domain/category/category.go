package category

import "time"

// Category names double as the product → category link (string
// equality, not a hard foreign key).
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Subcategories []string  `json:"subcategories,omitempty"`
	AIContext     string    `json:"ai_context,omitempty"`
	TechnicalText string    `json:"technical_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
