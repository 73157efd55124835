package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type WeightHandler struct {
  log           *logger.Logger
  weightService services.WeightService
}

func NewWeightHandler(log *logger.Logger, weightService services.WeightService) *WeightHandler {
  return &WeightHandler{
    log:           log.With("handler", "WeightHandler"),
    weightService: weightService,
  }
}

type weightBody struct {
  WeightLbs float64 `json:"weightLbs"`
  Notes     *string `json:"notes,omitempty"`
}

func (h *WeightHandler) Log(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  var body weightBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  entry, err := h.weightService.Log(c.Request.Context(), userID, body.WeightLbs, body.Notes)
  if err != nil {
    h.log.Error("Log failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusBadRequest, "log_weight_failed", err)
    return
  }
  RespondOK(c, gin.H{"weight": entry})
}

func (h *WeightHandler) List(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  entries, err := h.weightService.List(c.Request.Context(), userID)
  if err != nil {
    h.log.Error("List failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusInternalServerError, "load_weights_failed", err)
    return
  }
  RespondOK(c, gin.H{"entries": entries})
}

func (h *WeightHandler) Update(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  logID, ok := PathID(c)
  if !ok {
    return
  }
  var body weightBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  entry, err := h.weightService.Update(c.Request.Context(), logID, userID, body.WeightLbs, body.Notes)
  if err != nil {
    h.log.Error("Update failed", "error", err, "user_id", userID, "log_id", logID)
    RespondError(c, http.StatusBadRequest, "update_weight_failed", err)
    return
  }
  RespondOK(c, gin.H{"weight": entry})
}

func (h *WeightHandler) Delete(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  logID, ok := PathID(c)
  if !ok {
    return
  }
  if err := h.weightService.Delete(c.Request.Context(), logID, userID); err != nil {
    h.log.Error("Delete failed", "error", err, "user_id", userID, "log_id", logID)
    RespondError(c, http.StatusBadRequest, "delete_weight_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
