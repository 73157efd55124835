package testutil

import (
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormLogger "gorm.io/gorm/logger"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

func Logger(tb testing.TB) *logger.Logger {
  tb.Helper()
  log, err := logger.New("production")
  if err != nil {
    tb.Fatalf("failed to init logger: %v", err)
  }
  return log
}

// DB opens a fresh in-memory sqlite database with the full schema. Each test
// gets its own, so there is no cross-test state.
func DB(tb testing.TB) *gorm.DB {
  tb.Helper()
  dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormLogger.Default.LogMode(gormLogger.Silent),
  })
  if err != nil {
    tb.Fatalf("failed to open test db: %v", err)
  }
  err = db.AutoMigrate(
    &types.UserProfile{},
    &types.ChatMessage{},
    &types.MealLog{},
    &types.DailyStats{},
    &types.WaterLog{},
    &types.WeightLog{},
    &types.ExerciseLog{},
    &types.UserPreference{},
  )
  if err != nil {
    tb.Fatalf("failed to migrate test db: %v", err)
  }
  tb.Cleanup(func() {
    if sqlDB, err := db.DB(); err == nil {
      _ = sqlDB.Close()
    }
  })
  return db
}

func SeedProfile(tb testing.TB, db *gorm.DB, goalType string) *types.UserProfile {
  tb.Helper()
  p := &types.UserProfile{
    ID:            uuid.New(),
    Name:          "Test User",
    HeightInches:  70,
    WeightLbs:     180,
    GoalType:      goalType,
    DailyCalories: 2005,
    DailyProteinG: 180,
    DailyCarbsG:   181,
    DailyFatsG:    62,
    CreatedAt:     time.Now(),
    UpdatedAt:     time.Now(),
  }
  if err := db.Create(p).Error; err != nil {
    tb.Fatalf("seed profile: %v", err)
  }
  return p
}

func SeedMeal(tb testing.TB, db *gorm.DB, userID uuid.UUID, calories int, protein, carbs, fats float64) *types.MealLog {
  tb.Helper()
  m := &types.MealLog{
    ID:       uuid.New(),
    UserID:   userID,
    MealName: "seeded meal",
    Calories: calories,
    ProteinG: protein,
    CarbsG:   carbs,
    FatsG:    fats,
    LoggedAt: time.Now(),
  }
  if err := db.Create(m).Error; err != nil {
    tb.Fatalf("seed meal: %v", err)
  }
  return m
}
