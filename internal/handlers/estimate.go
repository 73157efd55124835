package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type EstimateHandler struct {
  log             *logger.Logger
  estimateService services.EstimateService
}

func NewEstimateHandler(log *logger.Logger, estimateService services.EstimateService) *EstimateHandler {
  return &EstimateHandler{
    log:             log.With("handler", "EstimateHandler"),
    estimateService: estimateService,
  }
}

type estimateBody struct {
  FoodName   string  `json:"foodName"`
  Weight     float64 `json:"weight"`
  WeightUnit string  `json:"weightUnit"`
}

func (h *EstimateHandler) EstimateMacros(c *gin.Context) {
  var body estimateBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  estimate, err := h.estimateService.EstimateMacros(c.Request.Context(), body.FoodName, body.Weight, body.WeightUnit)
  if err != nil {
    h.log.Error("EstimateMacros failed", "error", err, "food", body.FoodName)
    RespondError(c, http.StatusBadGateway, "estimate_failed", err)
    return
  }
  RespondOK(c, gin.H{"estimate": estimate})
}
