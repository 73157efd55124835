package main

import (
  "fmt"
  "os"
  "strings"

  "github.com/joho/godotenv"

  "github.com/chadfit/chad-backend/internal/db"
  "github.com/chadfit/chad-backend/internal/handlers"
  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/server"
  "github.com/chadfit/chad-backend/internal/services"
  "github.com/chadfit/chad-backend/internal/sse"
  "github.com/chadfit/chad-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  port := utils.GetEnv("PORT", "8080", log)
  allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  profileRepo := repos.NewUserProfileRepo(thePG, log)
  messageRepo := repos.NewChatMessageRepo(thePG, log)
  mealRepo := repos.NewMealLogRepo(thePG, log)
  statsRepo := repos.NewDailyStatsRepo(thePG, log)
  waterRepo := repos.NewWaterLogRepo(thePG, log)
  weightRepo := repos.NewWeightLogRepo(thePG, log)
  exerciseRepo := repos.NewExerciseLogRepo(thePG, log)
  prefRepo := repos.NewUserPreferenceRepo(thePG, log)

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewHub(log)

  // Services
  log.Info("Setting up Services from main...")
  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Fatal("Could not init AIClient", "error", err)
  }
  statsService := services.NewDailyStatsService(log, statsRepo, mealRepo)
  prefService := services.NewPreferenceService(log, aiClient, prefRepo)
  userService := services.NewUserService(thePG, log, profileRepo, weightRepo)
  mealService := services.NewMealService(log, mealRepo, statsRepo, statsService)
  waterService := services.NewWaterService(log, waterRepo)
  weightService := services.NewWeightService(log, weightRepo)
  exerciseService := services.NewExerciseService(log, exerciseRepo)
  estimateService := services.NewEstimateService(log, aiClient)
  chatService := services.NewChatService(
    log, aiClient, sseHub, services.DefaultChadStyle(),
    profileRepo, messageRepo, mealRepo, statsRepo,
    waterRepo, weightRepo, exerciseRepo,
    statsService, prefService,
  )

  // Handlers
  log.Info("Setting up Handlers from main...")
  userHandler := handlers.NewUserHandler(log, userService)
  chatHandler := handlers.NewChatHandler(log, chatService)
  mealHandler := handlers.NewMealHandler(log, mealService)
  waterHandler := handlers.NewWaterHandler(log, waterService)
  weightHandler := handlers.NewWeightHandler(log, weightService)
  exerciseHandler := handlers.NewExerciseHandler(log, exerciseService)
  estimateHandler := handlers.NewEstimateHandler(log, estimateService)
  sseHandler := handlers.NewSSEHandler(log, sseHub)

  // Router
  cfg := server.RouterConfig{
    UserHandler:     userHandler,
    ChatHandler:     chatHandler,
    MealHandler:     mealHandler,
    WaterHandler:    waterHandler,
    WeightHandler:   weightHandler,
    ExerciseHandler: exerciseHandler,
    EstimateHandler: estimateHandler,
    SSEHandler:      sseHandler,
  }
  if allowOrigins != "" {
    cfg.AllowOrigins = strings.Split(allowOrigins, ",")
  }
  router := server.NewRouter(cfg)

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
