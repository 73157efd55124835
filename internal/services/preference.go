package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/types"
)

// Preferences detected below this confidence are discarded outright.
const preferenceSaveMinConfidence = 0.5

// How many recent turns of conversation the extraction prompt sees.
const preferenceContextTurns = 4

type DetectedPreference struct {
  Type       string  `json:"type"`
  Key        string  `json:"key"`
  Value      string  `json:"value"`
  Confidence float64 `json:"confidence"`
  Source     string  `json:"source"`
}

type PreferenceService interface {
  // DetectAndSave runs one extraction completion over the latest user
  // utterance plus recent context and upserts everything above the
  // confidence floor. Parse failures come back as an empty list, never an
  // error that could fail a turn.
  DetectAndSave(ctx context.Context, userID uuid.UUID, userMessage string, history []AIMessage) ([]DetectedPreference, error)
  // DetectAndSaveDetached runs DetectAndSave on its own goroutine with its
  // own deadline; the caller never waits on it and never sees its errors.
  DetectAndSaveDetached(userID uuid.UUID, userMessage string, history []AIMessage)
  ListForPrompt(ctx context.Context, userID uuid.UUID) ([]*types.UserPreference, error)
}

type preferenceService struct {
  log      *logger.Logger
  aiClient AIClient
  prefRepo repos.UserPreferenceRepo
}

func NewPreferenceService(log *logger.Logger, aiClient AIClient, prefRepo repos.UserPreferenceRepo) PreferenceService {
  return &preferenceService{
    log:      log.With("service", "PreferenceService"),
    aiClient: aiClient,
    prefRepo: prefRepo,
  }
}

func (s *preferenceService) DetectAndSave(ctx context.Context, userID uuid.UUID, userMessage string, history []AIMessage) ([]DetectedPreference, error) {
  prompt := buildPreferenceExtractionPrompt(userMessage, history)

  raw, err := s.aiClient.Chat(ctx, prompt, []AIMessage{{Role: "user", Content: userMessage}}, AIOptions{
    Temperature: 0.3,
    MaxTokens:   400,
    JSONMode:    true,
  })
  if err != nil {
    return nil, err
  }

  prefs := parseDetectedPreferences(raw, s.log)
  for _, pref := range prefs {
    if pref.Confidence < preferenceSaveMinConfidence {
      continue
    }
    if err := s.upsert(ctx, userID, pref); err != nil {
      s.log.Warn("Failed to save detected preference", "key", pref.Key, "error", err)
    }
  }
  return prefs, nil
}

func (s *preferenceService) DetectAndSaveDetached(userID uuid.UUID, userMessage string, history []AIMessage) {
  go func() {
    defer func() {
      if r := recover(); r != nil {
        s.log.Error("Preference detection panicked", "recover", r)
      }
    }()
    ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
    defer cancel()
    if _, err := s.DetectAndSave(ctx, userID, userMessage, history); err != nil {
      s.log.Warn("Preference detection failed", "userID", userID, "error", err)
    }
  }()
}

func (s *preferenceService) ListForPrompt(ctx context.Context, userID uuid.UUID) ([]*types.UserPreference, error) {
  return s.prefRepo.ListConfident(ctx, nil, userID, promptPreferenceMinConfidence)
}

func (s *preferenceService) upsert(ctx context.Context, userID uuid.UUID, pref DetectedPreference) error {
  existing, err := s.prefRepo.GetByUserAndKey(ctx, nil, userID, pref.Key)
  if err != nil {
    return err
  }
  now := time.Now()
  if existing != nil {
    existing.Value = pref.Value
    existing.Confidence = pref.Confidence
    existing.Source = pref.Source
    existing.UpdatedAt = now
    _, err = s.prefRepo.Update(ctx, nil, existing)
    return err
  }
  _, err = s.prefRepo.Create(ctx, nil, &types.UserPreference{
    UserID:     userID,
    Type:       pref.Type,
    Key:        pref.Key,
    Value:      pref.Value,
    Confidence: pref.Confidence,
    Source:     pref.Source,
    LearnedAt:  now,
    UpdatedAt:  now,
  })
  return err
}

// parseDetectedPreferences treats the completion as untrusted text: shape
// mismatches yield an empty list, logged for diagnostics only.
func parseDetectedPreferences(raw string, log *logger.Logger) []DetectedPreference {
  cleaned := stripCodeFences(raw)
  var payload struct {
    Preferences []DetectedPreference `json:"preferences"`
  }
  if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
    if log != nil {
      log.Debug("Preference extraction returned unparseable JSON", "error", err)
    }
    return nil
  }
  var out []DetectedPreference
  for _, p := range payload.Preferences {
    if p.Key == "" || p.Value == "" {
      continue
    }
    if !validPreferenceType(p.Type) {
      continue
    }
    out = append(out, p)
  }
  return out
}

func validPreferenceType(t string) bool {
  switch t {
  case types.PreferenceExplicit, types.PreferenceImplicit, types.PreferenceLifestyle, types.PreferenceCommunication:
    return true
  }
  return false
}

func buildPreferenceExtractionPrompt(userMessage string, history []AIMessage) string {
  contextTurns := history
  if len(contextTurns) > preferenceContextTurns {
    contextTurns = contextTurns[len(contextTurns)-preferenceContextTurns:]
  }
  var contextLines []string
  for _, msg := range contextTurns {
    contextLines = append(contextLines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
  }

  return fmt.Sprintf(`Analyze this user message and detect any preferences, instructions, or personal details that should be remembered for future conversations.

User message: %q

Recent conversation context:
%s

Detect and extract:
1. **Explicit instructions** - User directly telling you what to do/remember
   Examples: "I want you to be more direct", "Remember I workout 5x/week", "Don't use emojis"

2. **Implicit preferences** - Preferences shown through behavior or context
   Examples: User always mentions grams -> prefer metric, User mentions time constraints -> busy lifestyle

3. **Lifestyle details** - Personal info about routine, activity, goals
   Examples: "I play basketball", "I work night shifts", "I'm vegetarian"

4. **Communication style** - How they want to be talked to
   Examples: "Keep it short", "Be more casual", "Don't sugarcoat"

Return a JSON array of preferences found. Each preference should have:
- type: "explicit" | "implicit" | "lifestyle" | "communication"
- key: Short identifier (e.g., "workout_frequency", "preferred_units", "communication_style")
- value: The actual preference (e.g., "5x per week with weights and basketball", "grams", "direct and honest")
- confidence: 0.0-1.0 (how confident you are this is a real preference)
- source: Brief explanation of where this came from

Return ONLY valid JSON in this exact format:
{"preferences": [{"type": "explicit", "key": "workout_frequency", "value": "Works out 5x per week", "confidence": 1.0, "source": "User explicitly stated workout routine"}]}

If no preferences detected, return: {"preferences": []}`, userMessage, strings.Join(contextLines, "\n"))
}
