package aicopy

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/category"
)

// CategoryResolver supplies the per-category prompt context and fixed
// footer text.
type CategoryResolver interface {
	GetByName(ctx context.Context, name string) (category.Category, error)
}

type Handler struct {
	client     *Client
	categories CategoryResolver
}

func NewHandler(client *Client, categories CategoryResolver) *Handler {
	return &Handler{client: client, categories: categories}
}

type generateReq struct {
	ProductName string `json:"product_name" binding:"required"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Field       Field  `json:"field" binding:"required"`
}

func (h *Handler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	switch req.Field {
	case FieldDescription, FieldTags, FieldSEOTitle, FieldSEODescription:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
		return
	}

	genReq := Request{
		ProductName: req.ProductName,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Field:       req.Field,
	}
	// The category record is optional context; a miss just means
	// generic prompt and default footer.
	if req.Category != "" {
		if cat, err := h.categories.GetByName(c.Request.Context(), req.Category); err == nil {
			genReq.StyleContext = cat.AIContext
			genReq.Footer = cat.TechnicalText
		}
	}

	text, err := h.client.Generate(c.Request.Context(), genReq)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": text})
}
