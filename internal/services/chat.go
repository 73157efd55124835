package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/sse"
  "github.com/chadfit/chad-backend/internal/types"
)

// How much chat history rides along on the conversational completion.
const chatHistoryWindow = 20

type ChatTurnResult struct {
  Bubbles             []*types.ChatMessage `json:"messages"`
  Meal                *types.MealLog       `json:"meal,omitempty"`
  Targets             MacroTargets         `json:"macros"`
  OnboardingCompleted bool                 `json:"onboarding_completed"`
}

type ChatService interface {
  // HandleTurn runs one full request/response cycle: collect context,
  // compose the prompt, persist the user message, call the completion
  // service once, segment, persist bubbles, extract a meal if present, flip
  // onboarding state, and hand preference detection off to the background.
  HandleTurn(ctx context.Context, userID uuid.UUID, userMessage string) (*ChatTurnResult, error)
  History(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatService struct {
  log          *logger.Logger
  aiClient     AIClient
  hub          *sse.Hub
  style        PromptStyle
  profileRepo  repos.UserProfileRepo
  messageRepo  repos.ChatMessageRepo
  mealRepo     repos.MealLogRepo
  statsRepo    repos.DailyStatsRepo
  waterRepo    repos.WaterLogRepo
  weightRepo   repos.WeightLogRepo
  exerciseRepo repos.ExerciseLogRepo
  stats        DailyStatsService
  preferences  PreferenceService
}

func NewChatService(
  log *logger.Logger,
  aiClient AIClient,
  hub *sse.Hub,
  style PromptStyle,
  profileRepo repos.UserProfileRepo,
  messageRepo repos.ChatMessageRepo,
  mealRepo repos.MealLogRepo,
  statsRepo repos.DailyStatsRepo,
  waterRepo repos.WaterLogRepo,
  weightRepo repos.WeightLogRepo,
  exerciseRepo repos.ExerciseLogRepo,
  stats DailyStatsService,
  preferences PreferenceService,
) ChatService {
  return &chatService{
    log:          log.With("service", "ChatService"),
    aiClient:     aiClient,
    hub:          hub,
    style:        style,
    profileRepo:  profileRepo,
    messageRepo:  messageRepo,
    mealRepo:     mealRepo,
    statsRepo:    statsRepo,
    waterRepo:    waterRepo,
    weightRepo:   weightRepo,
    exerciseRepo: exerciseRepo,
    stats:        stats,
    preferences:  preferences,
  }
}

func (s *chatService) HandleTurn(ctx context.Context, userID uuid.UUID, userMessage string) (*ChatTurnResult, error) {
  if userMessage == "" {
    return nil, fmt.Errorf("missing required fields")
  }

  profile, err := s.profileRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load profile: %w", err)
  }
  targets := CalculateMacros(profile)

  digest, prefs, recent, err := s.collectContext(ctx, userID)
  if err != nil {
    return nil, fmt.Errorf("collect context: %w", err)
  }

  systemPrompt := ComposeSystemPrompt(profile, targets, s.style, prefs, digest)
  history := historyToAIMessages(recent)
  history = append(history, AIMessage{Role: types.RoleUser, Content: userMessage})

  // The user's own message is durable before the completion call; a failed
  // completion must not lose what they typed.
  userRow := &types.ChatMessage{UserID: userID, Role: types.RoleUser, Content: userMessage, CreatedAt: time.Now()}
  if _, err := s.messageRepo.Create(ctx, nil, []*types.ChatMessage{userRow}); err != nil {
    return nil, fmt.Errorf("persist user message: %w", err)
  }

  raw, err := s.aiClient.Chat(ctx, systemPrompt, history, AIOptions{Temperature: 0.7, MaxTokens: 300})
  if err != nil {
    s.log.Warn("Completion failed", "userID", userID, "error", err)
    return nil, fmt.Errorf("completion service: %w", err)
  }

  parts := SegmentReply(raw)
  if len(parts) == 0 {
    return nil, fmt.Errorf("completion service returned empty reply")
  }

  bubbles := make([]*types.ChatMessage, 0, len(parts))
  base := time.Now()
  for i, part := range parts {
    bubbles = append(bubbles, &types.ChatMessage{
      UserID:  userID,
      Role:    types.RoleAssistant,
      Content: part,
      // spread timestamps so insertion order stays the display order
      CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
    })
  }
  if _, err := s.messageRepo.Create(ctx, nil, bubbles); err != nil {
    return nil, fmt.Errorf("persist assistant messages: %w", err)
  }
  for _, bubble := range bubbles {
    s.hub.Publish(userID, sse.Message{Event: sse.EventChatBubble, Data: bubble})
  }

  result := &ChatTurnResult{Bubbles: bubbles, Targets: targets}

  meal, err := s.extractAndLogMeal(ctx, userID, userMessage, raw, bubbles[0].ID)
  if err != nil {
    return nil, err
  }
  result.Meal = meal

  if !profile.OnboardingComplete && ContainsOnboardingCompletePhrase(raw) {
    if err := s.profileRepo.MarkOnboardingComplete(ctx, nil, userID); err != nil {
      s.log.Warn("Failed to mark onboarding complete", "userID", userID, "error", err)
    } else {
      result.OnboardingCompleted = true
    }
  }

  // Detached: the learner's outcome never gates the reply.
  s.preferences.DetectAndSaveDetached(userID, userMessage, history)

  return result, nil
}

func (s *chatService) History(ctx context.Context, userID uuid.UUID) ([]*types.ChatMessage, error) {
  return s.messageRepo.ListByUser(ctx, nil, userID)
}

// collectContext gathers the same-day activity snapshot, the learned
// preferences, and the recent history in one concurrent pass.
func (s *chatService) collectContext(ctx context.Context, userID uuid.UUID) (*ActivityDigest, []*types.UserPreference, []*types.ChatMessage, error) {
  now := time.Now()
  from, to := todayBounds(now)
  weekAgo := now.AddDate(0, 0, -7)

  digest := &ActivityDigest{}
  var prefs []*types.UserPreference
  var recent []*types.ChatMessage

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    meals, err := s.mealRepo.ListByUserAndRange(gctx, nil, userID, from, to)
    digest.Meals = meals
    return err
  })
  g.Go(func() error {
    stats, err := s.statsRepo.GetByUserAndDate(gctx, nil, userID, dateKey(now))
    digest.Stats = stats
    return err
  })
  g.Go(func() error {
    water, err := s.waterRepo.ListByUserAndRange(gctx, nil, userID, from, to)
    digest.Water = water
    return err
  })
  g.Go(func() error {
    exercise, err := s.exerciseRepo.ListByUserAndRange(gctx, nil, userID, from, to)
    digest.Exercise = exercise
    return err
  })
  g.Go(func() error {
    weights, err := s.weightRepo.ListSince(gctx, nil, userID, weekAgo, 7)
    digest.Weights = weights
    return err
  })
  g.Go(func() error {
    var err error
    prefs, err = s.preferences.ListForPrompt(gctx, userID)
    return err
  })
  g.Go(func() error {
    var err error
    recent, err = s.messageRepo.ListRecent(gctx, nil, userID, chatHistoryWindow)
    return err
  })
  if err := g.Wait(); err != nil {
    return nil, nil, nil, err
  }
  return digest, prefs, recent, nil
}

func (s *chatService) extractAndLogMeal(ctx context.Context, userID uuid.UUID, userMessage, raw string, messageID uuid.UUID) (*types.MealLog, error) {
  estimate, ok := ExtractMealEstimate(raw)
  if !ok {
    // most replies aren't about food
    return nil, nil
  }

  now := time.Now()
  meal := &types.MealLog{
    UserID:    userID,
    MessageID: &messageID,
    MealName:  MealNameFromMessage(userMessage),
    Calories:  estimate.Calories,
    ProteinG:  estimate.ProteinG,
    CarbsG:    estimate.CarbsG,
    FatsG:     estimate.FatsG,
    LoggedAt:  now,
  }
  if _, err := s.mealRepo.Create(ctx, nil, meal); err != nil {
    return nil, fmt.Errorf("persist extracted meal: %w", err)
  }
  err := s.stats.ApplyMealAdded(ctx, userID, dateKey(now), MacroDelta{
    Calories: estimate.Calories,
    ProteinG: estimate.ProteinG,
    CarbsG:   estimate.CarbsG,
    FatsG:    estimate.FatsG,
  })
  if err != nil {
    return nil, fmt.Errorf("update daily totals: %w", err)
  }
  s.hub.Publish(userID, sse.Message{Event: sse.EventMealLogged, Data: meal})
  return meal, nil
}

// historyToAIMessages reverses newest-first rows into chronological prompt
// messages.
func historyToAIMessages(recent []*types.ChatMessage) []AIMessage {
  out := make([]AIMessage, 0, len(recent))
  for i := len(recent) - 1; i >= 0; i-- {
    out = append(out, AIMessage{Role: recent[i].Role, Content: recent[i].Content})
  }
  return out
}
