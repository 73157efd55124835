package services

import (
  "regexp"
  "strconv"
  "strings"
)

// Assistant replies that logged a meal carry a single estimate line, e.g.
// "Estimated: 450 cal | 30g protein | 40g carbs | 10g fat". Most replies do
// not contain one; that is the normal case, not an error.
var mealEstimateRe = regexp.MustCompile(`(?i)Estimated:\s*(\d+)\s*cal\s*\|\s*(\d+)g\s*protein\s*\|\s*(\d+)g\s*carbs\s*\|\s*(\d+)g\s*fat`)

type MealEstimate struct {
  Calories int
  ProteinG float64
  CarbsG   float64
  FatsG    float64
}

// ExtractMealEstimate scans the raw (unsegmented) completion text and
// returns the estimate when present.
func ExtractMealEstimate(raw string) (*MealEstimate, bool) {
  m := mealEstimateRe.FindStringSubmatch(raw)
  if m == nil {
    return nil, false
  }
  calories, _ := strconv.Atoi(m[1])
  protein, _ := strconv.ParseFloat(m[2], 64)
  carbs, _ := strconv.ParseFloat(m[3], 64)
  fats, _ := strconv.ParseFloat(m[4], 64)
  return &MealEstimate{
    Calories: calories,
    ProteinG: protein,
    CarbsG:   carbs,
    FatsG:    fats,
  }, true
}

// MealNameFromMessage derives a meal name from the user message that
// triggered the estimate: plain truncation, no summarization.
func MealNameFromMessage(userMessage string) string {
  runes := []rune(userMessage)
  if len(runes) > 100 {
    return string(runes[:100])
  }
  return userMessage
}

// Phrases the assistant uses to wrap up onboarding. The first occurrence
// while onboarding is still incomplete flips the profile flag; it never
// flips back.
var onboardingCompletePhrases = []string{
  "let's start tracking",
  "lets start tracking",
  "got what i need",
  "got everything i need",
  "we're all set",
  "start logging",
}

func ContainsOnboardingCompletePhrase(raw string) bool {
  lower := strings.ToLower(raw)
  for _, phrase := range onboardingCompletePhrases {
    if strings.Contains(lower, phrase) {
      return true
    }
  }
  return false
}
