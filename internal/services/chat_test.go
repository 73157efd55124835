package services

import (
  "context"
  "errors"
  "reflect"
  "testing"
  "time"

  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/repos/testutil"
  "github.com/chadfit/chad-backend/internal/sse"
  "github.com/chadfit/chad-backend/internal/types"
)

type chatFixture struct {
  svc       ChatService
  hub       *sse.Hub
  client    *stubAIClient
  profile   *types.UserProfile
  msgRepo   repos.ChatMessageRepo
  mealRepo  repos.MealLogRepo
  statsRepo repos.DailyStatsRepo
  profRepo  repos.UserProfileRepo
}

func newChatFixture(t *testing.T, client *stubAIClient) *chatFixture {
  t.Helper()
  db := testutil.DB(t)
  log := testutil.Logger(t)

  profRepo := repos.NewUserProfileRepo(db, log)
  msgRepo := repos.NewChatMessageRepo(db, log)
  mealRepo := repos.NewMealLogRepo(db, log)
  statsRepo := repos.NewDailyStatsRepo(db, log)
  waterRepo := repos.NewWaterLogRepo(db, log)
  weightRepo := repos.NewWeightLogRepo(db, log)
  exerciseRepo := repos.NewExerciseLogRepo(db, log)
  prefRepo := repos.NewUserPreferenceRepo(db, log)

  hub := sse.NewHub(log)
  statsService := NewDailyStatsService(log, statsRepo, mealRepo)
  prefService := NewPreferenceService(log, client, prefRepo)
  svc := NewChatService(
    log, client, hub, DefaultChadStyle(),
    profRepo, msgRepo, mealRepo, statsRepo,
    waterRepo, weightRepo, exerciseRepo,
    statsService, prefService,
  )

  return &chatFixture{
    svc:       svc,
    hub:       hub,
    client:    client,
    profile:   testutil.SeedProfile(t, db, types.GoalCut),
    msgRepo:   msgRepo,
    mealRepo:  mealRepo,
    statsRepo: statsRepo,
    profRepo:  profRepo,
  }
}

func TestHandleTurnPersistsOrderedBubbles(t *testing.T) {
  reply := "bet, logged it ||| Estimated: 450 cal | 30g protein | 40g carbs | 10g fat ||| solid protein hit"
  f := newChatFixture(t, &stubAIClient{replies: []string{reply}})
  ctx := context.Background()
  userMessage := "just had 8oz chicken breast with rice"

  result, err := f.svc.HandleTurn(ctx, f.profile.ID, userMessage)
  if err != nil {
    t.Fatalf("HandleTurn: %v", err)
  }

  wantParts := SegmentReply(reply)
  var gotParts []string
  for _, b := range result.Bubbles {
    if b.Role != types.RoleAssistant {
      t.Fatalf("bubble with role %q", b.Role)
    }
    gotParts = append(gotParts, b.Content)
  }
  if !reflect.DeepEqual(gotParts, wantParts) {
    t.Fatalf("bubbles = %v, want %v", gotParts, wantParts)
  }

  rows, err := f.msgRepo.ListByUser(ctx, nil, f.profile.ID)
  if err != nil {
    t.Fatalf("ListByUser: %v", err)
  }
  if len(rows) != len(wantParts)+1 {
    t.Fatalf("persisted %d rows, want %d", len(rows), len(wantParts)+1)
  }
  if rows[0].Role != types.RoleUser || rows[0].Content != userMessage {
    t.Fatalf("first row should be the user message: %+v", rows[0])
  }
  for i, part := range wantParts {
    if rows[i+1].Content != part {
      t.Fatalf("row %d = %q, want %q", i+1, rows[i+1].Content, part)
    }
  }
}

func TestHandleTurnLogsExtractedMeal(t *testing.T) {
  reply := "logged it ||| Estimated: 450 cal | 30g protein | 40g carbs | 10g fat ||| keep it up"
  f := newChatFixture(t, &stubAIClient{replies: []string{reply}})
  ctx := context.Background()
  userMessage := "just had 8oz chicken breast with rice"

  client := f.hub.Register(f.profile.ID)
  defer f.hub.Unregister(client)

  result, err := f.svc.HandleTurn(ctx, f.profile.ID, userMessage)
  if err != nil {
    t.Fatalf("HandleTurn: %v", err)
  }
  if result.Meal == nil {
    t.Fatalf("expected an extracted meal")
  }
  if result.Meal.Calories != 450 || result.Meal.ProteinG != 30 || result.Meal.CarbsG != 40 || result.Meal.FatsG != 10 {
    t.Fatalf("meal macros: %+v", result.Meal)
  }
  if result.Meal.MealName != userMessage {
    t.Fatalf("meal name = %q, want the user message", result.Meal.MealName)
  }
  if result.Meal.MessageID == nil || *result.Meal.MessageID != result.Bubbles[0].ID {
    t.Fatalf("meal should reference the first bubble of the turn")
  }

  stats, err := f.statsRepo.GetByUserAndDate(ctx, nil, f.profile.ID, dateKey(result.Meal.LoggedAt))
  if err != nil {
    t.Fatalf("GetByUserAndDate: %v", err)
  }
  if stats == nil || stats.TotalCalories != 450 || stats.MealsLogged != 1 {
    t.Fatalf("daily totals not maintained: %+v", stats)
  }

  var bubbleEvents, mealEvents int
  for len(client.Outbound) > 0 {
    msg := <-client.Outbound
    switch msg.Event {
    case sse.EventChatBubble:
      bubbleEvents++
    case sse.EventMealLogged:
      mealEvents++
    }
  }
  if bubbleEvents != len(result.Bubbles) || mealEvents != 1 {
    t.Fatalf("published %d bubble and %d meal events, want %d and 1", bubbleEvents, mealEvents, len(result.Bubbles))
  }
}

func TestHandleTurnWithoutEstimateLogsNothing(t *testing.T) {
  f := newChatFixture(t, &stubAIClient{replies: []string{"what's good ||| how was training"}})
  ctx := context.Background()

  result, err := f.svc.HandleTurn(ctx, f.profile.ID, "hey")
  if err != nil {
    t.Fatalf("HandleTurn: %v", err)
  }
  if result.Meal != nil {
    t.Fatalf("no estimate line should mean no meal, got %+v", result.Meal)
  }
  from, to := todayBounds(time.Now())
  meals, err := f.mealRepo.ListByUserAndRange(ctx, nil, f.profile.ID, from, to)
  if err != nil {
    t.Fatalf("list meals: %v", err)
  }
  if len(meals) != 0 {
    t.Fatalf("unexpected meal rows: %d", len(meals))
  }
}

func TestHandleTurnCompletionFailureKeepsUserMessage(t *testing.T) {
  f := newChatFixture(t, &stubAIClient{err: errors.New("upstream down")})
  ctx := context.Background()

  _, err := f.svc.HandleTurn(ctx, f.profile.ID, "hey chad")
  if err == nil {
    t.Fatalf("expected error when the completion fails")
  }
  if f.client.callCount() != 1 {
    t.Fatalf("expected a single attempt with no retry, got %d", f.client.callCount())
  }

  rows, listErr := f.msgRepo.ListByUser(ctx, nil, f.profile.ID)
  if listErr != nil {
    t.Fatalf("ListByUser: %v", listErr)
  }
  if len(rows) != 1 || rows[0].Role != types.RoleUser {
    t.Fatalf("only the user message should survive a failed turn: %+v", rows)
  }
}

func TestHandleTurnFlipsOnboardingForward(t *testing.T) {
  reply := "got everything i need ||| let's start tracking"
  f := newChatFixture(t, &stubAIClient{replies: []string{reply}})
  ctx := context.Background()

  result, err := f.svc.HandleTurn(ctx, f.profile.ID, "that's my whole routine")
  if err != nil {
    t.Fatalf("HandleTurn: %v", err)
  }
  if !result.OnboardingCompleted {
    t.Fatalf("expected onboarding to complete")
  }
  profile, err := f.profRepo.GetByID(ctx, nil, f.profile.ID)
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if !profile.OnboardingComplete {
    t.Fatalf("flag not persisted")
  }

  // another matching reply must not report a second flip
  f.client.mu.Lock()
  f.client.replies = []string{"we're all set ||| hit me when you eat"}
  f.client.mu.Unlock()
  again, err := f.svc.HandleTurn(ctx, f.profile.ID, "ok")
  if err != nil {
    t.Fatalf("second HandleTurn: %v", err)
  }
  if again.OnboardingCompleted {
    t.Fatalf("flag flipped twice")
  }
}

func TestHandleTurnRejectsEmptyMessage(t *testing.T) {
  f := newChatFixture(t, &stubAIClient{replies: []string{"yo"}})
  if _, err := f.svc.HandleTurn(context.Background(), f.profile.ID, ""); err == nil {
    t.Fatalf("expected error for empty message")
  }
  if f.client.callCount() != 0 {
    t.Fatalf("empty message should not reach the completion service")
  }
}
