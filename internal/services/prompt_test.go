package services

import (
  "strings"
  "testing"
  "time"

  "github.com/chadfit/chad-backend/internal/types"
)

func promptFixtureProfile() *types.UserProfile {
  return &types.UserProfile{
    Name:         "Alex",
    HeightInches: 70,
    WeightLbs:    180,
    GoalType:     types.GoalCut,
  }
}

func TestComposeSystemPromptBasics(t *testing.T) {
  profile := promptFixtureProfile()
  targets := CalculateMacros(profile)
  prompt := ComposeSystemPrompt(profile, targets, DefaultChadStyle(), nil, &ActivityDigest{})

  for _, want := range []string{
    "Alex",
    "5'10\"",
    "Calories: 2005 cal",
    "Protein: 180g",
    "\"||| \"",
    "Estimated: XXX cal | XXg protein | XXg carbs | XXg fat",
  } {
    if !strings.Contains(prompt, want) {
      t.Fatalf("prompt missing %q:\n%s", want, prompt)
    }
  }
}

func TestComposeSystemPromptOnboardingSection(t *testing.T) {
  profile := promptFixtureProfile()
  targets := CalculateMacros(profile)
  style := DefaultChadStyle()

  incomplete := ComposeSystemPrompt(profile, targets, style, nil, &ActivityDigest{})
  if !strings.Contains(incomplete, "ONBOARDING:") {
    t.Fatalf("expected onboarding section for a fresh profile")
  }
  if !strings.Contains(incomplete, "let's start tracking") {
    t.Fatalf("onboarding section should name the completion phrase")
  }

  profile.OnboardingComplete = true
  complete := ComposeSystemPrompt(profile, targets, style, nil, &ActivityDigest{})
  if strings.Contains(complete, "ONBOARDING:") {
    t.Fatalf("onboarded profile should not get the onboarding section")
  }
}

func TestComposeSystemPromptPreferenceGating(t *testing.T) {
  profile := promptFixtureProfile()
  targets := CalculateMacros(profile)
  prefs := []*types.UserPreference{
    {Type: types.PreferenceCommunication, Key: "tone", Value: "keep it blunt", Confidence: 0.8},
    {Type: types.PreferenceLifestyle, Key: "sport", Value: "plays basketball", Confidence: 0.55},
  }

  prompt := ComposeSystemPrompt(profile, targets, DefaultChadStyle(), prefs, &ActivityDigest{})
  if !strings.Contains(prompt, "LEARNED USER PREFERENCES") {
    t.Fatalf("expected preference block")
  }
  if !strings.Contains(prompt, "keep it blunt") {
    t.Fatalf("confident preference should render")
  }
  if strings.Contains(prompt, "plays basketball") {
    t.Fatalf("0.55 confidence preference should not render")
  }

  bare := ComposeSystemPrompt(profile, targets, DefaultChadStyle(), nil, &ActivityDigest{})
  if strings.Contains(bare, "LEARNED USER PREFERENCES") {
    t.Fatalf("no preferences should mean no preference block")
  }
}

func TestComposeSystemPromptActivityDigest(t *testing.T) {
  profile := promptFixtureProfile()
  targets := CalculateMacros(profile)
  loggedAt := time.Date(2026, 8, 30, 12, 30, 0, 0, time.Local)
  digest := &ActivityDigest{
    Meals: []*types.MealLog{{
      MealName: "chicken and rice",
      Calories: 650,
      ProteinG: 45,
      CarbsG:   70,
      FatsG:    15,
      LoggedAt: loggedAt,
    }},
    Stats: &types.DailyStats{
      TotalCalories: 650,
      TotalProteinG: 45,
      TotalCarbsG:   70,
      TotalFatsG:    15,
      MealsLogged:   1,
    },
    Water: []*types.WaterLog{{Ounces: 32, LoggedAt: loggedAt}},
  }

  prompt := ComposeSystemPrompt(profile, targets, DefaultChadStyle(), nil, digest)
  for _, want := range []string{
    "USER'S ACTIVITY TODAY",
    "chicken and rice",
    "Current totals: 650cal",
    "Remaining: 1355cal",
    "WATER INTAKE TODAY",
    "32oz / 64oz goal",
  } {
    if !strings.Contains(prompt, want) {
      t.Fatalf("prompt missing %q", want)
    }
  }

  empty := ComposeSystemPrompt(profile, targets, DefaultChadStyle(), nil, &ActivityDigest{})
  if strings.Contains(empty, "USER'S ACTIVITY TODAY") {
    t.Fatalf("empty digest should not render an activity section")
  }
}
