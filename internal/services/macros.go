package services

import (
  "math"

  "github.com/chadfit/chad-backend/internal/types"
)

type MacroTargets struct {
  Calories int `json:"calories"`
  Protein  int `json:"protein"`
  Carbs    int `json:"carbs"`
  Fats     int `json:"fats"`
}

// CalculateMacros derives daily targets from a profile. Mifflin-St Jeor BMR
// with female coefficients and a fixed age of 30 (the product never collects
// sex or age), moderate-activity multiplier, then goal adjustment. Pure and
// deterministic: same profile in, same targets out.
func CalculateMacros(profile *types.UserProfile) MacroTargets {
  weightKg := profile.WeightLbs * 0.453592
  heightCm := float64(profile.HeightInches) * 2.54

  const age = 30
  bmr := 10*weightKg + 6.25*heightCm - 5*age - 161

  const activityMultiplier = 1.55
  tdee := bmr * activityMultiplier

  var dailyCalories int
  var proteinGramsPerLb float64
  switch profile.GoalType {
  case types.GoalCut:
    dailyCalories = int(math.Round(tdee * 0.8))
    proteinGramsPerLb = 1.0
  case types.GoalBulk:
    dailyCalories = int(math.Round(tdee * 1.15))
    proteinGramsPerLb = 0.8
  default:
    dailyCalories = int(math.Round(tdee))
    proteinGramsPerLb = 0.8
  }

  protein := int(math.Round(profile.WeightLbs * proteinGramsPerLb))

  fatCalories := float64(dailyCalories) * 0.28
  fats := int(math.Round(fatCalories / 9))

  proteinCalories := float64(protein * 4)
  remainingCalories := float64(dailyCalories) - proteinCalories - fatCalories
  carbs := int(math.Round(remainingCalories / 4))

  return MacroTargets{
    Calories: dailyCalories,
    Protein:  protein,
    Carbs:    carbs,
    Fats:     fats,
  }
}
