package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/repos/testutil"
  "github.com/chadfit/chad-backend/internal/types"
)

type mealFixture struct {
  svc       MealService
  stats     DailyStatsService
  statsRepo repos.DailyStatsRepo
  profile   *types.UserProfile
}

func newMealFixture(t *testing.T) *mealFixture {
  t.Helper()
  db := testutil.DB(t)
  log := testutil.Logger(t)
  mealRepo := repos.NewMealLogRepo(db, log)
  statsRepo := repos.NewDailyStatsRepo(db, log)
  stats := NewDailyStatsService(log, statsRepo, mealRepo)
  return &mealFixture{
    svc:       NewMealService(log, mealRepo, statsRepo, stats),
    stats:     stats,
    statsRepo: statsRepo,
    profile:   testutil.SeedProfile(t, db, types.GoalCut),
  }
}

func TestMealLifecycleKeepsTotalsConsistent(t *testing.T) {
  f := newMealFixture(t)
  ctx := context.Background()
  day := time.Now()

  meal, err := f.svc.Log(ctx, f.profile.ID, MealInput{
    MealName: "chicken and rice",
    Calories: 650,
    ProteinG: 45,
    CarbsG:   70,
    FatsG:    15,
  })
  if err != nil {
    t.Fatalf("Log: %v", err)
  }
  if err := f.stats.VerifyTotals(ctx, f.profile.ID, day); err != nil {
    t.Fatalf("after log: %v", err)
  }

  if _, err := f.svc.Update(ctx, meal.ID, f.profile.ID, MealInput{
    MealName: "chicken, rice and veg",
    Calories: 700,
    ProteinG: 48,
    CarbsG:   80,
    FatsG:    16,
  }); err != nil {
    t.Fatalf("Update: %v", err)
  }
  if err := f.stats.VerifyTotals(ctx, f.profile.ID, day); err != nil {
    t.Fatalf("after update: %v", err)
  }

  meals, totals, err := f.svc.ListDay(ctx, f.profile.ID, day)
  if err != nil {
    t.Fatalf("ListDay: %v", err)
  }
  if len(meals) != 1 || totals.TotalCalories != 700 {
    t.Fatalf("ListDay = %d meals, totals %+v", len(meals), totals)
  }

  if err := f.svc.Delete(ctx, meal.ID, f.profile.ID); err != nil {
    t.Fatalf("Delete: %v", err)
  }
  if err := f.stats.VerifyTotals(ctx, f.profile.ID, day); err != nil {
    t.Fatalf("after delete: %v", err)
  }
  row, err := f.statsRepo.GetByUserAndDate(ctx, nil, f.profile.ID, dateKey(day))
  if err != nil {
    t.Fatalf("GetByUserAndDate: %v", err)
  }
  if row.TotalCalories != 0 || row.MealsLogged != 0 {
    t.Fatalf("totals after delete: %+v", row)
  }
}

func TestMealOwnershipChecks(t *testing.T) {
  f := newMealFixture(t)
  ctx := context.Background()

  meal, err := f.svc.Log(ctx, f.profile.ID, MealInput{MealName: "eggs", Calories: 210, ProteinG: 18, CarbsG: 2, FatsG: 14})
  if err != nil {
    t.Fatalf("Log: %v", err)
  }

  stranger := uuid.New()
  if _, err := f.svc.Update(ctx, meal.ID, stranger, MealInput{MealName: "eggs", Calories: 1}); err == nil {
    t.Fatalf("update by another user should fail")
  }
  if err := f.svc.Delete(ctx, meal.ID, stranger); err == nil {
    t.Fatalf("delete by another user should fail")
  }
  if err := f.stats.VerifyTotals(ctx, f.profile.ID, time.Now()); err != nil {
    t.Fatalf("rejected mutations must not touch totals: %v", err)
  }
}

func TestMealLogRequiresName(t *testing.T) {
  f := newMealFixture(t)
  if _, err := f.svc.Log(context.Background(), f.profile.ID, MealInput{Calories: 100}); err == nil {
    t.Fatalf("expected validation error")
  }
}

func TestListDayReturnsZeroTotalsForEmptyDay(t *testing.T) {
  f := newMealFixture(t)
  meals, totals, err := f.svc.ListDay(context.Background(), f.profile.ID, time.Now())
  if err != nil {
    t.Fatalf("ListDay: %v", err)
  }
  if len(meals) != 0 {
    t.Fatalf("expected no meals, got %d", len(meals))
  }
  if totals == nil || totals.TotalCalories != 0 || totals.MealsLogged != 0 {
    t.Fatalf("expected zero totals placeholder, got %+v", totals)
  }
}

func TestMealUpdateAcrossDaysMovesTotals(t *testing.T) {
  f := newMealFixture(t)
  ctx := context.Background()
  day := time.Now()
  nextDay := day.AddDate(0, 0, 1)

  meal, err := f.svc.Log(ctx, f.profile.ID, MealInput{
    MealName: "late night oats",
    Calories: 450,
    ProteinG: 30,
    CarbsG:   40,
    FatsG:    10,
  })
  if err != nil {
    t.Fatalf("Log: %v", err)
  }

  if _, err := f.svc.Update(ctx, meal.ID, f.profile.ID, MealInput{
    MealName: "late night oats",
    Calories: 450,
    ProteinG: 30,
    CarbsG:   40,
    FatsG:    10,
    LoggedAt: &nextDay,
  }); err != nil {
    t.Fatalf("Update: %v", err)
  }

  if err := f.stats.VerifyTotals(ctx, f.profile.ID, day); err != nil {
    t.Fatalf("old day after move: %v", err)
  }
  if err := f.stats.VerifyTotals(ctx, f.profile.ID, nextDay); err != nil {
    t.Fatalf("new day after move: %v", err)
  }

  oldStats, err := f.statsRepo.GetByUserAndDate(ctx, nil, f.profile.ID, dateKey(day))
  if err != nil {
    t.Fatalf("GetByUserAndDate old day: %v", err)
  }
  if oldStats == nil || oldStats.TotalCalories != 0 || oldStats.MealsLogged != 0 {
    t.Fatalf("old day still carries the meal: %+v", oldStats)
  }
  newStats, err := f.statsRepo.GetByUserAndDate(ctx, nil, f.profile.ID, dateKey(nextDay))
  if err != nil {
    t.Fatalf("GetByUserAndDate new day: %v", err)
  }
  if newStats == nil || newStats.TotalCalories != 450 || newStats.MealsLogged != 1 {
    t.Fatalf("new day row = %+v, want 450 cal / 1 meal", newStats)
  }
}
