package services

import (
  "context"
  "fmt"
  "sync"
  "time"

  "github.com/google/uuid"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/types"
)

// MacroDelta is the elementwise change a meal mutation applies to the
// owning day's totals.
type MacroDelta struct {
  Calories int
  ProteinG float64
  CarbsG   float64
  FatsG    float64
}

type DailyStatsService interface {
  ApplyMealAdded(ctx context.Context, userID uuid.UUID, date string, delta MacroDelta) error
  ApplyMealUpdated(ctx context.Context, userID uuid.UUID, date string, oldValues, newValues MacroDelta) error
  ApplyMealRemoved(ctx context.Context, userID uuid.UUID, date string, delta MacroDelta) error
  VerifyTotals(ctx context.Context, userID uuid.UUID, day time.Time) error
}

type dailyStatsService struct {
  log       *logger.Logger
  statsRepo repos.DailyStatsRepo
  mealRepo  repos.MealLogRepo

  mu    sync.Mutex
  locks map[string]*sync.Mutex
}

func NewDailyStatsService(log *logger.Logger, statsRepo repos.DailyStatsRepo, mealRepo repos.MealLogRepo) DailyStatsService {
  return &dailyStatsService{
    log:       log.With("service", "DailyStatsService"),
    statsRepo: statsRepo,
    mealRepo:  mealRepo,
    locks:     make(map[string]*sync.Mutex),
  }
}

// lockFor serializes read-modify-write cycles per (user, date). Concurrent
// turns for the same user on the same day would otherwise race on the
// totals row and break the sum invariant.
func (s *dailyStatsService) lockFor(userID uuid.UUID, date string) *sync.Mutex {
  key := userID.String() + "|" + date
  s.mu.Lock()
  defer s.mu.Unlock()
  l, ok := s.locks[key]
  if !ok {
    l = &sync.Mutex{}
    s.locks[key] = l
  }
  return l
}

func (s *dailyStatsService) ApplyMealAdded(ctx context.Context, userID uuid.UUID, date string, delta MacroDelta) error {
  l := s.lockFor(userID, date)
  l.Lock()
  defer l.Unlock()

  stats, err := s.statsRepo.GetByUserAndDate(ctx, nil, userID, date)
  if err != nil {
    return err
  }
  if stats == nil {
    _, err := s.statsRepo.Create(ctx, nil, newDayStats(userID, date, delta))
    return err
  }
  stats.TotalCalories += delta.Calories
  stats.TotalProteinG += delta.ProteinG
  stats.TotalCarbsG += delta.CarbsG
  stats.TotalFatsG += delta.FatsG
  stats.MealsLogged++
  _, err = s.statsRepo.Update(ctx, nil, stats)
  return err
}

func (s *dailyStatsService) ApplyMealUpdated(ctx context.Context, userID uuid.UUID, date string, oldValues, newValues MacroDelta) error {
  l := s.lockFor(userID, date)
  l.Lock()
  defer l.Unlock()

  stats, err := s.statsRepo.GetByUserAndDate(ctx, nil, userID, date)
  if err != nil {
    return err
  }
  if stats == nil {
    return nil
  }
  stats.TotalCalories = clampInt(stats.TotalCalories - oldValues.Calories + newValues.Calories)
  stats.TotalProteinG = clampFloat(stats.TotalProteinG - oldValues.ProteinG + newValues.ProteinG)
  stats.TotalCarbsG = clampFloat(stats.TotalCarbsG - oldValues.CarbsG + newValues.CarbsG)
  stats.TotalFatsG = clampFloat(stats.TotalFatsG - oldValues.FatsG + newValues.FatsG)
  _, err = s.statsRepo.Update(ctx, nil, stats)
  return err
}

func (s *dailyStatsService) ApplyMealRemoved(ctx context.Context, userID uuid.UUID, date string, delta MacroDelta) error {
  l := s.lockFor(userID, date)
  l.Lock()
  defer l.Unlock()

  stats, err := s.statsRepo.GetByUserAndDate(ctx, nil, userID, date)
  if err != nil {
    return err
  }
  if stats == nil {
    return nil
  }
  stats.TotalCalories = clampInt(stats.TotalCalories - delta.Calories)
  stats.TotalProteinG = clampFloat(stats.TotalProteinG - delta.ProteinG)
  stats.TotalCarbsG = clampFloat(stats.TotalCarbsG - delta.CarbsG)
  stats.TotalFatsG = clampFloat(stats.TotalFatsG - delta.FatsG)
  stats.MealsLogged = clampInt(stats.MealsLogged - 1)
  _, err = s.statsRepo.Update(ctx, nil, stats)
  return err
}

// VerifyTotals recomputes the day's sums from the surviving meal rows and
// compares them against the incrementally maintained row.
func (s *dailyStatsService) VerifyTotals(ctx context.Context, userID uuid.UUID, day time.Time) error {
  from, to := todayBounds(day)
  date := dateKey(day)

  l := s.lockFor(userID, date)
  l.Lock()
  defer l.Unlock()

  meals, err := s.mealRepo.ListByUserAndRange(ctx, nil, userID, from, to)
  if err != nil {
    return err
  }
  var want MacroDelta
  for _, m := range meals {
    want.Calories += m.Calories
    want.ProteinG += m.ProteinG
    want.CarbsG += m.CarbsG
    want.FatsG += m.FatsG
  }

  stats, err := s.statsRepo.GetByUserAndDate(ctx, nil, userID, date)
  if err != nil {
    return err
  }
  if stats == nil {
    if len(meals) == 0 {
      return nil
    }
    return fmt.Errorf("daily stats missing for %s with %d meal rows", date, len(meals))
  }

  if stats.TotalCalories != want.Calories ||
    !floatEqual(stats.TotalProteinG, want.ProteinG) ||
    !floatEqual(stats.TotalCarbsG, want.CarbsG) ||
    !floatEqual(stats.TotalFatsG, want.FatsG) ||
    stats.MealsLogged != len(meals) {
    return fmt.Errorf("daily stats diverged for %s: stored {%d %v %v %v n=%d} recomputed {%d %v %v %v n=%d}",
      date,
      stats.TotalCalories, stats.TotalProteinG, stats.TotalCarbsG, stats.TotalFatsG, stats.MealsLogged,
      want.Calories, want.ProteinG, want.CarbsG, want.FatsG, len(meals))
  }
  return nil
}

func newDayStats(userID uuid.UUID, date string, delta MacroDelta) *types.DailyStats {
  return &types.DailyStats{
    UserID:        userID,
    Date:          date,
    TotalCalories: delta.Calories,
    TotalProteinG: delta.ProteinG,
    TotalCarbsG:   delta.CarbsG,
    TotalFatsG:    delta.FatsG,
    MealsLogged:   1,
  }
}

func floatEqual(a, b float64) bool {
  diff := a - b
  if diff < 0 {
    diff = -diff
  }
  return diff < 1e-6
}

func clampInt(v int) int {
  if v < 0 {
    return 0
  }
  return v
}

func clampFloat(v float64) float64 {
  if v < 0 {
    return 0
  }
  return v
}
