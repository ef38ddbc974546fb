package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlejandroCopponi/esencia-retro/internal/cart"
	"github.com/AlejandroCopponi/esencia-retro/internal/domain/order"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
	"github.com/AlejandroCopponi/esencia-retro/internal/shipping"
)

// AdminStore serves the back-office order/abandoned listings.
type AdminStore interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	ListAbandoned(ctx context.Context) ([]order.AbandonedCheckout, error)
}

type Handler struct {
	wizard    *Wizard
	cartStore session.Store
	admin     AdminStore
}

func NewHandler(wizard *Wizard, cartStore session.Store, admin AdminStore) *Handler {
	return &Handler{wizard: wizard, cartStore: cartStore, admin: admin}
}

func (h *Handler) shopperCart(c *gin.Context) *cart.Manager {
	m := cart.NewManager(h.cartStore, session.ID(c))
	m.Hydrate(c.Request.Context())
	return m
}

func (h *Handler) GetState(c *gin.Context) {
	st := h.wizard.StateOf(c.Request.Context(), session.ID(c))
	c.JSON(http.StatusOK, st)
}

type contactReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m := h.shopperCart(c)
	st, err := h.wizard.SubmitContact(c.Request.Context(), session.ID(c), req.Email, m.Items())
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type shippingReq struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	DNI        string `json:"dni"`
	Phone      string `json:"phone" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code" binding:"required"`
}

func (h *Handler) SubmitShipping(c *gin.Context) {
	var req shippingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	cust := order.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Phone:     req.Phone,
	}
	addr := order.Address{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
	}
	st, err := h.wizard.SubmitShipping(c.Request.Context(), session.ID(c), cust, addr)
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type selectShippingReq struct {
	OptionID string `json:"option_id" binding:"required"`
}

func (h *Handler) SelectShipping(c *gin.Context) {
	var req selectShippingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.wizard.SelectShipping(c.Request.Context(), session.ID(c), req.OptionID)
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) Finalize(c *gin.Context) {
	m := h.shopperCart(c)
	created, err := h.wizard.Finalize(c.Request.Context(), session.ID(c), m)
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	items, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminListAbandoned(c *gin.Context) {
	items, err := h.admin.ListAbandoned(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list abandoned checkouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func writeWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrUnknownOption),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, shipping.ErrInvalidPostalCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process order"})
	}
}
