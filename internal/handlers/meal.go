package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type MealHandler struct {
  log         *logger.Logger
  mealService services.MealService
}

func NewMealHandler(log *logger.Logger, mealService services.MealService) *MealHandler {
  return &MealHandler{
    log:         log.With("handler", "MealHandler"),
    mealService: mealService,
  }
}

// queryDay reads an optional ?date=YYYY-MM-DD, defaulting to today.
func queryDay(c *gin.Context) (time.Time, error) {
  raw := c.Query("date")
  if raw == "" {
    return time.Now(), nil
  }
  return time.Parse("2006-01-02", raw)
}

func (h *MealHandler) Log(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  var input services.MealInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  meal, err := h.mealService.Log(c.Request.Context(), userID, input)
  if err != nil {
    h.log.Error("Log failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusBadRequest, "log_meal_failed", err)
    return
  }
  RespondOK(c, gin.H{"meal": meal})
}

func (h *MealHandler) ListDay(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  day, err := queryDay(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  meals, stats, err := h.mealService.ListDay(c.Request.Context(), userID, day)
  if err != nil {
    h.log.Error("ListDay failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusInternalServerError, "load_meals_failed", err)
    return
  }
  RespondOK(c, gin.H{"meals": meals, "totals": stats})
}

func (h *MealHandler) Update(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  mealID, ok := PathID(c)
  if !ok {
    return
  }
  var input services.MealInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  meal, err := h.mealService.Update(c.Request.Context(), mealID, userID, input)
  if err != nil {
    h.log.Error("Update failed", "error", err, "user_id", userID, "meal_id", mealID)
    RespondError(c, http.StatusBadRequest, "update_meal_failed", err)
    return
  }
  RespondOK(c, gin.H{"meal": meal})
}

func (h *MealHandler) Delete(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  mealID, ok := PathID(c)
  if !ok {
    return
  }
  if err := h.mealService.Delete(c.Request.Context(), mealID, userID); err != nil {
    h.log.Error("Delete failed", "error", err, "user_id", userID, "meal_id", mealID)
    RespondError(c, http.StatusBadRequest, "delete_meal_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
