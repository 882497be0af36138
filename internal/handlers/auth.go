package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BramFam96/messagely-v1/internal/accounts"
	"github.com/BramFam96/messagely-v1/internal/observability"
	"github.com/BramFam96/messagely-v1/internal/telemetry"
	"github.com/BramFam96/messagely-v1/internal/token"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	accounts *accounts.Service
	tokens   *token.Manager
	audit    *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(accountsSvc *accounts.Service, tokens *token.Manager, audit *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{accounts: accountsSvc, tokens: tokens, audit: audit}
}

// Register creates an account and returns the profile with a session
// token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), accounts.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	tok, err := h.tokens.Issue(user.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.accounts.TouchLogin(c.Request.Context(), user.Username); err != nil {
		respondError(c, err)
		return
	}

	observability.IncUserRegistered()
	h.audit.Emit(c.Request.Context(), "INFO", "user registered", requestIDFromContext(c), user.Username)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": tok})
}

// Login verifies credentials, stamps the login time and returns a session
// token. Unknown user and wrong password are the same 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		observability.IncLoginAttempt("failure")
		h.audit.Emit(c.Request.Context(), "WARN",
			fmt.Sprintf("failed login from %s", observability.IPFromRequest(c.Request)),
			requestIDFromContext(c), req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if err := h.accounts.TouchLogin(c.Request.Context(), req.Username); err != nil {
		respondError(c, err)
		return
	}

	tok, err := h.tokens.Issue(req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncLoginAttempt("success")
	h.audit.Emit(c.Request.Context(), "INFO", "user logged in", requestIDFromContext(c), req.Username)
	c.JSON(http.StatusOK, gin.H{"token": tok})
}
