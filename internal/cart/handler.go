package cart

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/cart"
	"github.com/AlejandroCopponi/esencia-retro/internal/domain/product"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
)

// ProductGetter resolves the product whose current price gets captured
// on add.
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

func cartJSON(m *Manager) gin.H {
	items := m.Items()
	if items == nil {
		items = []cart.LineItem{}
	}
	return gin.H{"items": items, "total": m.Total()}
}

func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, cartJSON(h.manager(c)))
}

type addItemReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.products.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	m := h.manager(c)
	item := cart.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Size:      req.Size,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	}
	if err := m.Add(c.Request.Context(), item, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(m))
}

type itemKeyReq struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

func (h *Handler) RemoveItem(c *gin.Context) {
	h.mutateItem(c, (*Manager).Remove)
}

func (h *Handler) IncreaseQty(c *gin.Context) {
	h.mutateItem(c, (*Manager).Increase)
}

func (h *Handler) DecreaseQty(c *gin.Context) {
	h.mutateItem(c, (*Manager).Decrease)
}

func (h *Handler) mutateItem(c *gin.Context, op func(*Manager, context.Context, int64, string) error) {
	var req itemKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m := h.manager(c)
	if err := op(m, c.Request.Context(), req.ProductID, req.Size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(m))
}

func (h *Handler) Clear(c *gin.Context) {
	m := h.manager(c)
	if err := m.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(m))
}
