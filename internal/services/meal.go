package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/types"
)

type MealInput struct {
  MealName string     `json:"mealName"`
  Calories int        `json:"calories"`
  ProteinG float64    `json:"proteinG"`
  CarbsG   float64    `json:"carbsG"`
  FatsG    float64    `json:"fatsG"`
  LoggedAt *time.Time `json:"loggedAt,omitempty"`
  Context  *string    `json:"context,omitempty"`
}

type MealService interface {
  Log(ctx context.Context, userID uuid.UUID, input MealInput) (*types.MealLog, error)
  ListDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.MealLog, *types.DailyStats, error)
  Update(ctx context.Context, mealID, userID uuid.UUID, input MealInput) (*types.MealLog, error)
  Delete(ctx context.Context, mealID, userID uuid.UUID) error
}

type mealService struct {
  log       *logger.Logger
  mealRepo  repos.MealLogRepo
  statsRepo repos.DailyStatsRepo
  stats     DailyStatsService
}

func NewMealService(log *logger.Logger, mealRepo repos.MealLogRepo, statsRepo repos.DailyStatsRepo, stats DailyStatsService) MealService {
  return &mealService{
    log:       log.With("service", "MealService"),
    mealRepo:  mealRepo,
    statsRepo: statsRepo,
    stats:     stats,
  }
}

func (s *mealService) Log(ctx context.Context, userID uuid.UUID, input MealInput) (*types.MealLog, error) {
  if input.MealName == "" {
    return nil, fmt.Errorf("missing required fields")
  }
  loggedAt := time.Now()
  if input.LoggedAt != nil {
    loggedAt = *input.LoggedAt
  }
  meal := &types.MealLog{
    UserID:   userID,
    MealName: input.MealName,
    Calories: input.Calories,
    ProteinG: input.ProteinG,
    CarbsG:   input.CarbsG,
    FatsG:    input.FatsG,
    Context:  input.Context,
    LoggedAt: loggedAt,
  }
  if _, err := s.mealRepo.Create(ctx, nil, meal); err != nil {
    return nil, err
  }
  err := s.stats.ApplyMealAdded(ctx, userID, dateKey(loggedAt), MacroDelta{
    Calories: input.Calories,
    ProteinG: input.ProteinG,
    CarbsG:   input.CarbsG,
    FatsG:    input.FatsG,
  })
  if err != nil {
    return nil, err
  }
  return meal, nil
}

func (s *mealService) ListDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.MealLog, *types.DailyStats, error) {
  from, to := todayBounds(day)
  meals, err := s.mealRepo.ListByUserAndRange(ctx, nil, userID, from, to)
  if err != nil {
    return nil, nil, err
  }
  stats, err := s.statsRepo.GetByUserAndDate(ctx, nil, userID, dateKey(day))
  if err != nil {
    return nil, nil, err
  }
  if stats == nil {
    stats = &types.DailyStats{UserID: userID, Date: dateKey(day)}
  }
  return meals, stats, nil
}

func (s *mealService) Update(ctx context.Context, mealID, userID uuid.UUID, input MealInput) (*types.MealLog, error) {
  meal, err := s.mealRepo.GetByID(ctx, nil, mealID)
  if err != nil {
    return nil, err
  }
  if meal.UserID != userID {
    return nil, fmt.Errorf("meal does not belong to user")
  }

  oldValues := MacroDelta{Calories: meal.Calories, ProteinG: meal.ProteinG, CarbsG: meal.CarbsG, FatsG: meal.FatsG}
  oldDate := dateKey(meal.LoggedAt)

  meal.MealName = input.MealName
  meal.Calories = input.Calories
  meal.ProteinG = input.ProteinG
  meal.CarbsG = input.CarbsG
  meal.FatsG = input.FatsG
  meal.Context = input.Context
  if input.LoggedAt != nil {
    meal.LoggedAt = *input.LoggedAt
  }
  if _, err := s.mealRepo.Update(ctx, nil, meal); err != nil {
    return nil, err
  }

  newValues := MacroDelta{Calories: input.Calories, ProteinG: input.ProteinG, CarbsG: input.CarbsG, FatsG: input.FatsG}
  newDate := dateKey(meal.LoggedAt)
  if newDate != oldDate {
    // Meal moved to another day: back it out of the old row and add it
    // to the new one, creating that row if it does not exist yet.
    if err := s.stats.ApplyMealRemoved(ctx, userID, oldDate, oldValues); err != nil {
      return nil, err
    }
    if err := s.stats.ApplyMealAdded(ctx, userID, newDate, newValues); err != nil {
      return nil, err
    }
    return meal, nil
  }
  if err := s.stats.ApplyMealUpdated(ctx, userID, newDate, oldValues, newValues); err != nil {
    return nil, err
  }
  return meal, nil
}

func (s *mealService) Delete(ctx context.Context, mealID, userID uuid.UUID) error {
  meal, err := s.mealRepo.GetByID(ctx, nil, mealID)
  if err != nil {
    return err
  }
  if meal.UserID != userID {
    return fmt.Errorf("meal does not belong to user")
  }
  if err := s.mealRepo.Delete(ctx, nil, mealID, userID); err != nil {
    return err
  }
  return s.stats.ApplyMealRemoved(ctx, userID, dateKey(meal.LoggedAt), MacroDelta{
    Calories: meal.Calories,
    ProteinG: meal.ProteinG,
    CarbsG:   meal.CarbsG,
    FatsG:    meal.FatsG,
  })
}
