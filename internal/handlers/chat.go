package handlers

import (
	"net/http"

	"storefront-backend/internal/chat"
	"storefront-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *chat.Service
}

func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat forwards the message plus prior history to the model and returns
// the reply string.
func (h *ChatHandler) Chat(c *gin.Context) {
	if !h.service.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat is not available"})
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.service.Reply(c.Request.Context(), req.Message, req.History)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reply"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}
