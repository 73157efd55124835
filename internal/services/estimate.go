package services

import (
  "context"
  "encoding/json"
  "fmt"
  "math"
  "strings"

  "github.com/chadfit/chad-backend/internal/logger"
)

type MacroEstimate struct {
  Calories int     `json:"calories"`
  Protein  float64 `json:"protein"`
  Carbs    float64 `json:"carbs"`
  Fats     float64 `json:"fats"`
}

type EstimateService interface {
  // EstimateMacros asks the completion service for a macro breakdown of one
  // food item. The reply must be a bare JSON object with four numeric
  // fields; anything else is rejected.
  EstimateMacros(ctx context.Context, foodName string, weight float64, weightUnit string) (*MacroEstimate, error)
}

type estimateService struct {
  log      *logger.Logger
  aiClient AIClient
}

func NewEstimateService(log *logger.Logger, aiClient AIClient) EstimateService {
  return &estimateService{
    log:      log.With("service", "EstimateService"),
    aiClient: aiClient,
  }
}

func (s *estimateService) EstimateMacros(ctx context.Context, foodName string, weight float64, weightUnit string) (*MacroEstimate, error) {
  if foodName == "" || weight <= 0 || weightUnit == "" {
    return nil, fmt.Errorf("missing required fields")
  }

  prompt := fmt.Sprintf(`You are a nutrition expert. Estimate the nutritional information for the following food item.

Food: %s
Amount: %g %s

Provide accurate estimates for:
- Calories (integer)
- Protein in grams (decimal)
- Carbs in grams (decimal)
- Fats in grams (decimal)

Respond ONLY with a JSON object in this exact format (no markdown, no extra text):
{"calories": 250, "protein": 30.5, "carbs": 0.0, "fats": 12.0}`, foodName, weight, weightUnit)

  raw, err := s.aiClient.Chat(ctx,
    "You are a nutrition expert who provides accurate macro estimates. Always respond with only valid JSON, no markdown formatting.",
    []AIMessage{{Role: "user", Content: prompt}},
    AIOptions{Temperature: 0.3, MaxTokens: 150})
  if err != nil {
    return nil, err
  }

  return parseMacroEstimate(raw)
}

func parseMacroEstimate(raw string) (*MacroEstimate, error) {
  cleaned := stripCodeFences(raw)

  var fields map[string]json.RawMessage
  if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
    return nil, fmt.Errorf("invalid response format from AI: %w", err)
  }

  numbers := make(map[string]float64, 4)
  for _, name := range []string{"calories", "protein", "carbs", "fats"} {
    rawField, ok := fields[name]
    if !ok {
      return nil, fmt.Errorf("invalid macro data from AI: missing %s", name)
    }
    var v float64
    if err := json.Unmarshal(rawField, &v); err != nil {
      return nil, fmt.Errorf("invalid macro data from AI: %s is not numeric", name)
    }
    numbers[name] = v
  }

  return &MacroEstimate{
    Calories: int(math.Round(numbers["calories"])),
    Protein:  math.Round(numbers["protein"]*10) / 10,
    Carbs:    math.Round(numbers["carbs"]*10) / 10,
    Fats:     math.Round(numbers["fats"]*10) / 10,
  }, nil
}

// stripCodeFences removes markdown code fences some models wrap around JSON
// even when told not to.
func stripCodeFences(s string) string {
  s = strings.ReplaceAll(s, "```json", "")
  s = strings.ReplaceAll(s, "```", "")
  return strings.TrimSpace(s)
}
