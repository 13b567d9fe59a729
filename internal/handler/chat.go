package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"motorchat/internal/model"
	"motorchat/internal/service"
)

// ChatHandler serves the conversational search endpoint.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mensagem vazia."})
		return
	}

	resp, err := h.chat.Respond(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao processar a mensagem."})
		return
	}
	c.JSON(http.StatusOK, resp)
}
