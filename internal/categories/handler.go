package categories

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListPublic(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminList(c *gin.Context) {
	h.ListPublic(c)
}

type SaveCategoryReq struct {
	Name          string   `json:"name" binding:"required"`
	Subcategories []string `json:"subcategories"`
	AIContext     string   `json:"ai_context"`
	TechnicalText string   `json:"technical_text"`
}

func (req *SaveCategoryReq) toInput() SaveCategoryInput {
	in := SaveCategoryInput{
		Name:          strings.TrimSpace(req.Name),
		AIContext:     req.AIContext,
		TechnicalText: req.TechnicalText,
		Subcategories: []string{},
	}
	for _, s := range req.Subcategories {
		if s = strings.TrimSpace(s); s != "" {
			in.Subcategories = append(in.Subcategories, s)
		}
	}
	return in
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req SaveCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	created, err := h.repo.Create(c.Request.Context(), req.toInput())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create (name may be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req SaveCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	updated, err := h.repo.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
