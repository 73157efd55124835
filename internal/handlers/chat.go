package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type ChatHandler struct {
  log         *logger.Logger
  chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
  return &ChatHandler{
    log:         log.With("handler", "ChatHandler"),
    chatService: chatService,
  }
}

type sendMessageBody struct {
  Message string `json:"message"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  var body sendMessageBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if body.Message == "" {
    RespondError(c, http.StatusBadRequest, "missing_message", nil)
    return
  }
  result, err := h.chatService.HandleTurn(c.Request.Context(), userID, body.Message)
  if err != nil {
    h.log.Error("SendMessage failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusInternalServerError, "chat_failed", err)
    return
  }
  RespondOK(c, result)
}

func (h *ChatHandler) History(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  messages, err := h.chatService.History(c.Request.Context(), userID)
  if err != nil {
    h.log.Error("History failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusInternalServerError, "load_history_failed", err)
    return
  }
  RespondOK(c, gin.H{"messages": messages})
}
