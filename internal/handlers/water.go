package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type WaterHandler struct {
  log          *logger.Logger
  waterService services.WaterService
}

func NewWaterHandler(log *logger.Logger, waterService services.WaterService) *WaterHandler {
  return &WaterHandler{
    log:          log.With("handler", "WaterHandler"),
    waterService: waterService,
  }
}

type waterBody struct {
  Ounces float64 `json:"ounces"`
}

func (h *WaterHandler) Log(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  var body waterBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  entry, err := h.waterService.Log(c.Request.Context(), userID, body.Ounces)
  if err != nil {
    h.log.Error("Log failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusBadRequest, "log_water_failed", err)
    return
  }
  RespondOK(c, gin.H{"water": entry})
}

func (h *WaterHandler) ListDay(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  day, err := queryDay(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  entries, total, err := h.waterService.ListDay(c.Request.Context(), userID, day)
  if err != nil {
    h.log.Error("ListDay failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusInternalServerError, "load_water_failed", err)
    return
  }
  RespondOK(c, gin.H{"entries": entries, "totalOunces": total})
}

func (h *WaterHandler) Update(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  logID, ok := PathID(c)
  if !ok {
    return
  }
  var body waterBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  entry, err := h.waterService.Update(c.Request.Context(), logID, userID, body.Ounces)
  if err != nil {
    h.log.Error("Update failed", "error", err, "user_id", userID, "log_id", logID)
    RespondError(c, http.StatusBadRequest, "update_water_failed", err)
    return
  }
  RespondOK(c, gin.H{"water": entry})
}

func (h *WaterHandler) Delete(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  logID, ok := PathID(c)
  if !ok {
    return
  }
  if err := h.waterService.Delete(c.Request.Context(), logID, userID); err != nil {
    h.log.Error("Delete failed", "error", err, "user_id", userID, "log_id", logID)
    RespondError(c, http.StatusBadRequest, "delete_water_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
