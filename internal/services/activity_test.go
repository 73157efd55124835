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

func TestWaterListDayTotals(t *testing.T) {
  db := testutil.DB(t)
  log := testutil.Logger(t)
  svc := NewWaterService(log, repos.NewWaterLogRepo(db, log))
  profile := testutil.SeedProfile(t, db, types.GoalCut)
  ctx := context.Background()

  for _, oz := range []float64{16, 12, 20} {
    if _, err := svc.Log(ctx, profile.ID, oz); err != nil {
      t.Fatalf("Log(%v): %v", oz, err)
    }
  }
  entries, total, err := svc.ListDay(ctx, profile.ID, time.Now())
  if err != nil {
    t.Fatalf("ListDay: %v", err)
  }
  if len(entries) != 3 || total != 48 {
    t.Fatalf("got %d entries totaling %v, want 3 and 48", len(entries), total)
  }

  if _, err := svc.Log(ctx, profile.ID, 0); err == nil {
    t.Fatalf("zero ounces should be rejected")
  }
}

func TestExerciseLogDefaultsType(t *testing.T) {
  db := testutil.DB(t)
  log := testutil.Logger(t)
  svc := NewExerciseService(log, repos.NewExerciseLogRepo(db, log))
  profile := testutil.SeedProfile(t, db, types.GoalCut)
  ctx := context.Background()

  entry, err := svc.Log(ctx, profile.ID, ExerciseInput{ExerciseName: "pickup basketball", DurationMinutes: 60, CaloriesBurned: 400})
  if err != nil {
    t.Fatalf("Log: %v", err)
  }
  if entry.ExerciseType != "other" {
    t.Fatalf("type = %q, want \"other\"", entry.ExerciseType)
  }
}

func TestWeightUpdateRejectsOtherUsers(t *testing.T) {
  db := testutil.DB(t)
  log := testutil.Logger(t)
  svc := NewWeightService(log, repos.NewWeightLogRepo(db, log))
  profile := testutil.SeedProfile(t, db, types.GoalCut)
  ctx := context.Background()

  entry, err := svc.Log(ctx, profile.ID, 180, nil)
  if err != nil {
    t.Fatalf("Log: %v", err)
  }
  if _, err := svc.Update(ctx, entry.ID, uuid.New(), 170, nil); err == nil {
    t.Fatalf("update by another user should fail")
  }
  // deletes are scoped by owner: a stranger's delete touches nothing
  if err := svc.Delete(ctx, entry.ID, uuid.New()); err != nil {
    t.Fatalf("scoped delete: %v", err)
  }
  entries, err := svc.List(ctx, profile.ID)
  if err != nil {
    t.Fatalf("List: %v", err)
  }
  if len(entries) != 1 {
    t.Fatalf("stranger delete removed the row")
  }
}
