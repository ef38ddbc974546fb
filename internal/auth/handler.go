package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const RoleAdmin = "admin"

// Handler implements the single back-office login. There is no user
// table: the one admin account comes from configuration.
type Handler struct {
	adminEmail        string
	adminPasswordHash string
	jwt               *JWTManager
}

func NewHandler(adminEmail, adminPasswordHash string, jwt *JWTManager) *Handler {
	return &Handler{adminEmail: adminEmail, adminPasswordHash: adminPasswordHash, jwt: jwt}
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail)) == 1
	if h.adminEmail == "" || !emailOK || !CheckPassword(h.adminPasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.jwt.SignAccess(req.Email, RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "expires_at": exp})
}
