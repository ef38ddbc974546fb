package products

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Public: product details with variants
func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type SaveVariantReq struct {
	Size     string `json:"size" binding:"required"` // e.g. M, L, XL or a kids age label
	StockQty int    `json:"stock_qty"`
}

type SaveProductReq struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	OldPrice    *float64 `json:"old_price"`
	SKU         string   `json:"sku"`
	Tags        []string `json:"tags"`
	Team        string   `json:"team"`
	Category    string   `json:"category" binding:"required"`
	Subcategory string   `json:"subcategory"`
	WeightGrams int      `json:"weight_grams"`
	ImageURL    string   `json:"image_url"`
	Gallery     []string `json:"gallery"`

	Variants []SaveVariantReq `json:"variants"`
}

func (req *SaveProductReq) toInput() (SaveProductInput, string) {
	if *req.Price < 0 {
		return SaveProductInput{}, "price must be >= 0"
	}
	in := SaveProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		OldPrice:    req.OldPrice,
		SKU:         req.SKU,
		Tags:        req.Tags,
		Team:        req.Team,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		WeightGrams: req.WeightGrams,
		ImageURL:    req.ImageURL,
		Gallery:     req.Gallery,
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Gallery == nil {
		in.Gallery = []string{}
	}
	for _, v := range req.Variants {
		if v.StockQty < 0 {
			return SaveProductInput{}, "variant stock must be >= 0"
		}
		in.Variants = append(in.Variants, VariantInput{Size: v.Size, StockQty: v.StockQty})
	}
	return in, ""
}

// Admin: create product + variants (image already uploaded, URL given)
func (h *Handler) AdminCreate(c *gin.Context) {
	var req SaveProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Admin: full-record update, variants replaced wholesale
func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req SaveProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	p, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
