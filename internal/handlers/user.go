package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/services"
)

type UserHandler struct {
  log         *logger.Logger
  userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
  return &UserHandler{
    log:         log.With("handler", "UserHandler"),
    userService: userService,
  }
}

func (h *UserHandler) Onboard(c *gin.Context) {
  var input services.OnboardingInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  profile, targets, err := h.userService.Onboard(c.Request.Context(), input)
  if err != nil {
    h.log.Error("Onboard failed", "error", err)
    RespondError(c, http.StatusBadRequest, "onboard_failed", err)
    return
  }
  RespondOK(c, gin.H{"user": profile, "macros": targets})
}

func (h *UserHandler) Get(c *gin.Context) {
  userID, ok := PathUserID(c)
  if !ok {
    return
  }
  profile, err := h.userService.Get(c.Request.Context(), userID)
  if err != nil {
    h.log.Error("Get failed", "error", err, "user_id", userID)
    RespondError(c, http.StatusNotFound, "user_not_found", err)
    return
  }
  RespondOK(c, gin.H{"user": profile, "macros": h.userService.Targets(profile)})
}
