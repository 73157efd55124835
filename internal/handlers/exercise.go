package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type ExerciseHandler struct {
  log             *logger.Logger
  exerciseService services.ExerciseService
}

func NewExerciseHandler(log *logger.Logger, exerciseService services.ExerciseService) *ExerciseHandler {
  return &ExerciseHandler{
    log:             log.With("handler", "ExerciseHandler"),
    exerciseService: exerciseService,
  }
}

func (h *ExerciseHandler) Log(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  var input services.ExerciseInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  entry, err := h.exerciseService.Log(c.Request.Context(), userID, input)
  if err != nil {
    h.log.Error("Log failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusBadRequest, "log_exercise_failed", err)
    return
  }
  RespondOK(c, gin.H{"exercise": entry})
}

func (h *ExerciseHandler) ListDay(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  day, err := queryDay(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  entries, err := h.exerciseService.ListDay(c.Request.Context(), userID, day)
  if err != nil {
    h.log.Error("ListDay failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusInternalServerError, "load_exercise_failed", err)
    return
  }
  RespondOK(c, gin.H{"entries": entries})
}

func (h *ExerciseHandler) Update(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  logID, ok := PathID(c)
  if !ok {
    return
  }
  var input services.ExerciseInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  entry, err := h.exerciseService.Update(c.Request.Context(), logID, userID, input)
  if err != nil {
    h.log.Error("Update failed", "error", err, "user_id", userID, "log_id", logID)
    RespondError(c, http.StatusBadRequest, "update_exercise_failed", err)
    return
  }
  RespondOK(c, gin.H{"exercise": entry})
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  logID, ok := PathID(c)
  if !ok {
    return
  }
  if err := h.exerciseService.Delete(c.Request.Context(), logID, userID); err != nil {
    h.log.Error("Delete failed", "error", err, "user_id", userID, "log_id", logID)
    RespondError(c, http.StatusBadRequest, "delete_exercise_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
