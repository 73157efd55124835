package services

import (
  "context"
  "sync"
  "testing"
  "time"

  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/repos/testutil"
  "github.com/chadfit/chad-backend/internal/types"
)

type statsFixture struct {
  svc       DailyStatsService
  statsRepo repos.DailyStatsRepo
  mealRepo  repos.MealLogRepo
  profile   *types.UserProfile
}

func newStatsFixture(t *testing.T) *statsFixture {
  t.Helper()
  db := testutil.DB(t)
  log := testutil.Logger(t)
  statsRepo := repos.NewDailyStatsRepo(db, log)
  mealRepo := repos.NewMealLogRepo(db, log)
  return &statsFixture{
    svc:       NewDailyStatsService(log, statsRepo, mealRepo),
    statsRepo: statsRepo,
    mealRepo:  mealRepo,
    profile:   testutil.SeedProfile(t, db, types.GoalCut),
  }
}

func (f *statsFixture) stats(t *testing.T, date string) *types.DailyStats {
  t.Helper()
  stats, err := f.statsRepo.GetByUserAndDate(context.Background(), nil, f.profile.ID, date)
  if err != nil {
    t.Fatalf("GetByUserAndDate: %v", err)
  }
  return stats
}

func TestApplyMealAddedCreatesAndIncrements(t *testing.T) {
  f := newStatsFixture(t)
  ctx := context.Background()
  date := "2026-08-30"

  if err := f.svc.ApplyMealAdded(ctx, f.profile.ID, date, MacroDelta{Calories: 450, ProteinG: 30, CarbsG: 40, FatsG: 10}); err != nil {
    t.Fatalf("first add: %v", err)
  }
  row := f.stats(t, date)
  if row == nil {
    t.Fatalf("expected a day row after first meal")
  }
  if row.TotalCalories != 450 || row.MealsLogged != 1 {
    t.Fatalf("after first add: %+v", row)
  }

  if err := f.svc.ApplyMealAdded(ctx, f.profile.ID, date, MacroDelta{Calories: 650, ProteinG: 45, CarbsG: 70, FatsG: 15}); err != nil {
    t.Fatalf("second add: %v", err)
  }
  row = f.stats(t, date)
  if row.TotalCalories != 1100 || row.TotalProteinG != 75 || row.MealsLogged != 2 {
    t.Fatalf("after second add: %+v", row)
  }
}

func TestApplyMealUpdatedReplacesContribution(t *testing.T) {
  f := newStatsFixture(t)
  ctx := context.Background()
  date := "2026-08-30"
  old := MacroDelta{Calories: 450, ProteinG: 30, CarbsG: 40, FatsG: 10}

  if err := f.svc.ApplyMealAdded(ctx, f.profile.ID, date, old); err != nil {
    t.Fatalf("add: %v", err)
  }
  updated := MacroDelta{Calories: 500, ProteinG: 35, CarbsG: 45, FatsG: 12}
  if err := f.svc.ApplyMealUpdated(ctx, f.profile.ID, date, old, updated); err != nil {
    t.Fatalf("update: %v", err)
  }
  row := f.stats(t, date)
  if row.TotalCalories != 500 || row.TotalProteinG != 35 || row.MealsLogged != 1 {
    t.Fatalf("after update: %+v", row)
  }
}

func TestApplyMealRemovedClampsAtZero(t *testing.T) {
  f := newStatsFixture(t)
  ctx := context.Background()
  date := "2026-08-30"

  if err := f.svc.ApplyMealAdded(ctx, f.profile.ID, date, MacroDelta{Calories: 450, ProteinG: 30, CarbsG: 40, FatsG: 10}); err != nil {
    t.Fatalf("add: %v", err)
  }
  // remove more than was ever added; totals clamp instead of going negative
  if err := f.svc.ApplyMealRemoved(ctx, f.profile.ID, date, MacroDelta{Calories: 900, ProteinG: 60, CarbsG: 80, FatsG: 20}); err != nil {
    t.Fatalf("remove: %v", err)
  }
  row := f.stats(t, date)
  if row.TotalCalories != 0 || row.TotalProteinG != 0 || row.TotalCarbsG != 0 || row.TotalFatsG != 0 {
    t.Fatalf("totals went negative: %+v", row)
  }
  if row.MealsLogged != 0 {
    t.Fatalf("meal count went negative: %+v", row)
  }
}

func TestApplyMealRemovedWithoutRowIsNoop(t *testing.T) {
  f := newStatsFixture(t)
  if err := f.svc.ApplyMealRemoved(context.Background(), f.profile.ID, "2026-08-30", MacroDelta{Calories: 100}); err != nil {
    t.Fatalf("remove on missing row: %v", err)
  }
  if row := f.stats(t, "2026-08-30"); row != nil {
    t.Fatalf("noop remove created a row: %+v", row)
  }
}

func TestApplyMealAddedSerializesConcurrentTurns(t *testing.T) {
  f := newStatsFixture(t)
  ctx := context.Background()
  date := "2026-08-30"

  const n = 8
  var wg sync.WaitGroup
  for i := 0; i < n; i++ {
    wg.Add(1)
    go func() {
      defer wg.Done()
      if err := f.svc.ApplyMealAdded(ctx, f.profile.ID, date, MacroDelta{Calories: 100, ProteinG: 10, CarbsG: 10, FatsG: 5}); err != nil {
        t.Errorf("concurrent add: %v", err)
      }
    }()
  }
  wg.Wait()

  row := f.stats(t, date)
  if row.TotalCalories != n*100 || row.MealsLogged != n {
    t.Fatalf("lost updates under concurrency: %+v", row)
  }
}

func TestVerifyTotals(t *testing.T) {
  f := newStatsFixture(t)
  ctx := context.Background()
  day := time.Now()
  date := day.Format("2006-01-02")

  meal := &types.MealLog{
    UserID:   f.profile.ID,
    MealName: "chicken and rice",
    Calories: 650,
    ProteinG: 45,
    CarbsG:   70,
    FatsG:    15,
    LoggedAt: day,
  }
  if _, err := f.mealRepo.Create(ctx, nil, meal); err != nil {
    t.Fatalf("create meal: %v", err)
  }
  if err := f.svc.ApplyMealAdded(ctx, f.profile.ID, date, MacroDelta{Calories: 650, ProteinG: 45, CarbsG: 70, FatsG: 15}); err != nil {
    t.Fatalf("apply: %v", err)
  }

  if err := f.svc.VerifyTotals(ctx, f.profile.ID, day); err != nil {
    t.Fatalf("VerifyTotals on consistent state: %v", err)
  }

  // drift the stored row and the check must fail
  row := f.stats(t, date)
  row.TotalCalories += 100
  if _, err := f.statsRepo.Update(ctx, nil, row); err != nil {
    t.Fatalf("drift update: %v", err)
  }
  if err := f.svc.VerifyTotals(ctx, f.profile.ID, day); err == nil {
    t.Fatalf("VerifyTotals accepted diverged totals")
  }
}
