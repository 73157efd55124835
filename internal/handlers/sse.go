package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/sse"
)

type SSEHandler struct {
  log *logger.Logger
  hub *sse.Hub
}

func NewSSEHandler(log *logger.Logger, hub *sse.Hub) *SSEHandler {
  return &SSEHandler{
    log: log.With("handler", "SSEHandler"),
    hub: hub,
  }
}

// Stream holds the connection open and relays the user's events until the
// client hangs up.
func (h *SSEHandler) Stream(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  client := h.hub.Register(userID)
  defer h.hub.Unregister(client)
  h.hub.ServeHTTP(c.Writer, c.Request, client)
}
