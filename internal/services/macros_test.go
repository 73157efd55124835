package services

import (
  "testing"

  "github.com/chadfit/chad-backend/internal/types"
)

func TestCalculateMacros(t *testing.T) {
  cases := []struct {
    name    string
    profile types.UserProfile
    want    MacroTargets
  }{
    {
      name:    "cut at 180lbs 70in",
      profile: types.UserProfile{HeightInches: 70, WeightLbs: 180, GoalType: types.GoalCut},
      want:    MacroTargets{Calories: 2005, Protein: 180, Carbs: 181, Fats: 62},
    },
    {
      name:    "maintain at 180lbs 70in",
      profile: types.UserProfile{HeightInches: 70, WeightLbs: 180, GoalType: types.GoalMaintain},
      want:    MacroTargets{Calories: 2506, Protein: 144, Carbs: 307, Fats: 78},
    },
    {
      name:    "bulk at 180lbs 70in",
      profile: types.UserProfile{HeightInches: 70, WeightLbs: 180, GoalType: types.GoalBulk},
      want:    MacroTargets{Calories: 2882, Protein: 144, Carbs: 375, Fats: 90},
    },
    {
      name:    "unknown goal falls back to maintain",
      profile: types.UserProfile{HeightInches: 70, WeightLbs: 180, GoalType: "shred"},
      want:    MacroTargets{Calories: 2506, Protein: 144, Carbs: 307, Fats: 78},
    },
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := CalculateMacros(&tc.profile)
      if got != tc.want {
        t.Fatalf("CalculateMacros() = %+v, want %+v", got, tc.want)
      }
    })
  }
}

func TestCalculateMacrosIsDeterministic(t *testing.T) {
  profile := types.UserProfile{HeightInches: 66, WeightLbs: 145.5, GoalType: types.GoalCut}
  first := CalculateMacros(&profile)
  for i := 0; i < 10; i++ {
    if got := CalculateMacros(&profile); got != first {
      t.Fatalf("run %d produced %+v, first run produced %+v", i, got, first)
    }
  }
  if profile.WeightLbs != 145.5 || profile.HeightInches != 66 {
    t.Fatalf("profile mutated: %+v", profile)
  }
}
