package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/product"
)

type ProductLister interface {
	List(ctx context.Context) ([]product.Product, error)
}

type Handler struct {
	products ProductLister
}

func NewHandler(products ProductLister) *Handler {
	return &Handler{products: products}
}

type listedProduct struct {
	product.Product
	OnSale          bool `json:"on_sale"`
	DiscountPercent int  `json:"discount_percent,omitempty"`
	IsNew           bool `json:"is_new"`
}

// List is the storefront catalog view: full fetch, then the filter
// layer applies search/category/sort and derives the badges.
func (h *Handler) List(c *gin.Context) {
	all, err := h.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	q := Query{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Search:      c.Query("q"),
		Sort:        SortOrder(c.DefaultQuery("sort", string(SortNewest))),
	}

	now := time.Now()
	filtered := Filter(all, q, now)
	items := make([]listedProduct, 0, len(filtered))
	for _, p := range filtered {
		pct, onSale := Discount(p)
		items = append(items, listedProduct{
			Product:         p,
			OnSale:          onSale,
			DiscountPercent: pct,
			IsNew:           IsNew(p, now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
