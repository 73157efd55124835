package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/chadfit/chad-backend/internal/handlers"
)

type RouterConfig struct {
  UserHandler     *handlers.UserHandler
  ChatHandler     *handlers.ChatHandler
  MealHandler     *handlers.MealHandler
  WaterHandler    *handlers.WaterHandler
  WeightHandler   *handlers.WeightHandler
  ExerciseHandler *handlers.ExerciseHandler
  EstimateHandler *handlers.EstimateHandler
  SSEHandler      *handlers.SSEHandler
  AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  origins := cfg.AllowOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:3000", "http://localhost:5173"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    api.POST("/users", cfg.UserHandler.Onboard)
    api.POST("/estimate-macros", cfg.EstimateHandler.EstimateMacros)

    user := api.Group("/users/:userId")
    {
      user.GET("", cfg.UserHandler.Get)

      user.POST("/chat", cfg.ChatHandler.SendMessage)
      user.GET("/chat", cfg.ChatHandler.History)

      user.POST("/meals", cfg.MealHandler.Log)
      user.GET("/meals", cfg.MealHandler.ListDay)
      user.PUT("/meals/:id", cfg.MealHandler.Update)
      user.DELETE("/meals/:id", cfg.MealHandler.Delete)

      user.POST("/water", cfg.WaterHandler.Log)
      user.GET("/water", cfg.WaterHandler.ListDay)
      user.PUT("/water/:id", cfg.WaterHandler.Update)
      user.DELETE("/water/:id", cfg.WaterHandler.Delete)

      user.POST("/weight", cfg.WeightHandler.Log)
      user.GET("/weight", cfg.WeightHandler.List)
      user.PUT("/weight/:id", cfg.WeightHandler.Update)
      user.DELETE("/weight/:id", cfg.WeightHandler.Delete)

      user.POST("/exercise", cfg.ExerciseHandler.Log)
      user.GET("/exercise", cfg.ExerciseHandler.ListDay)
      user.PUT("/exercise/:id", cfg.ExerciseHandler.Update)
      user.DELETE("/exercise/:id", cfg.ExerciseHandler.Delete)

      user.GET("/sse/stream", cfg.SSEHandler.Stream)
    }
  }

  return router
}
