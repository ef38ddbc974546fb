package favorites

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/favorite"
	"github.com/AlejandroCopponi/esencia-retro/internal/domain/product"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
)

type ProductGetter interface {
	Get(ctx context.Context, id int64) (product.Product, error)
}

type Handler struct {
	store    session.Store
	products ProductGetter
}

func NewHandler(store session.Store, products ProductGetter) *Handler {
	return &Handler{store: store, products: products}
}

func (h *Handler) manager(c *gin.Context) *Manager {
	m := NewManager(h.store, session.ID(c))
	m.Hydrate(c.Request.Context())
	return m
}

// List re-resolves each favorite against the catalog so the shopper
// sees current prices and images; the stored snapshot is only the
// fallback for products that no longer exist.
func (h *Handler) List(c *gin.Context) {
	m := h.manager(c)

	entries := m.Entries()
	out := make([]favorite.Entry, 0, len(entries))
	for _, e := range entries {
		if p, err := h.products.Get(c.Request.Context(), e.ProductID); err == nil {
			e.Name = p.Name
			e.Price = p.Price
			e.ImageURL = p.ImageURL
		}
		out = append(out, e)
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type toggleReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) Toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m := h.manager(c)

	entry := favorite.Entry{ProductID: req.ProductID}
	if p, err := h.products.Get(c.Request.Context(), req.ProductID); err == nil {
		entry.Name = p.Name
		entry.Price = p.Price
		entry.ImageURL = p.ImageURL
	} else if !m.IsFavorite(req.ProductID) {
		// Unknown product and nothing to remove.
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	fav, err := m.Toggle(c.Request.Context(), entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": req.ProductID, "favorite": fav})
}
