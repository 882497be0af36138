package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BramFam96/messagely-v1/internal/messages"
	"github.com/BramFam96/messagely-v1/internal/observability"
	"github.com/BramFam96/messagely-v1/internal/telemetry"
)

// MessageHandler serves message creation, retrieval and read receipts.
type MessageHandler struct {
	messages *messages.Service
	audit    *telemetry.AuditEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messagesSvc *messages.Service, audit *telemetry.AuditEmitter) *MessageHandler {
	return &MessageHandler{messages: messagesSvc, audit: audit}
}

// Send stores a message from the authenticated caller. The sender is
// always the caller identity set by the auth middleware; a from_user field
// in the body is ignored.
func (h *MessageHandler) Send(c *gin.Context) {
	var req struct {
		ToUsername string `json:"to_username" binding:"required"`
		Body       string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := callerFromContext(c)
	msg, err := h.messages.Send(c.Request.Context(), caller, req.ToUsername, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncMessageSent()
	h.audit.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("message %d sent to %s", msg.ID, msg.ToUser),
		requestIDFromContext(c), caller)
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Get returns a single message; only its sender or recipient may see it.
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := parseMessageID(c)
	if !ok {
		return
	}

	detail, err := h.messages.Get(c.Request.Context(), id, callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": detail})
}

// MarkRead marks a message read on behalf of the caller.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseMessageID(c)
	if !ok {
		return
	}

	caller := callerFromContext(c)
	msg, err := h.messages.MarkRead(c.Request.Context(), id, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncMessageRead()
	h.audit.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("message %d marked read", msg.ID),
		requestIDFromContext(c), caller)
	c.JSON(http.StatusOK, gin.H{"message": gin.H{"id": msg.ID, "read_at": msg.ReadAt}})
}

// ListSent returns the messages a user has sent; users may only read
// their own list.
func (h *MessageHandler) ListSent(c *gin.Context) {
	msgs, err := h.messages.ListSentBy(c.Request.Context(), c.Param("username"), callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListReceived returns the messages a user has received; users may only
// read their own list.
func (h *MessageHandler) ListReceived(c *gin.Context) {
	msgs, err := h.messages.ListReceivedBy(c.Request.Context(), c.Param("username"), callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func parseMessageID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return 0, false
	}
	return id, true
}
