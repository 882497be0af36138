package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BramFam96/messagely-v1/internal/accounts"
)

// UserHandler serves the user directory.
type UserHandler struct {
	accounts *accounts.Service
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(accountsSvc *accounts.Service) *UserHandler {
	return &UserHandler{accounts: accountsSvc}
}

// List returns every registered public profile. An empty directory is a
// 200 with an empty list; only an unreachable store is an error.
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

// Get returns the full profile for a username.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.accounts.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
