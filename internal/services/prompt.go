package services

import (
  "fmt"
  "strings"
  "time"

  "github.com/chadfit/chad-backend/internal/types"
)

// Preferences below this confidence are left out of the prompt even though
// they are stored; detection saves at >= 0.5, rendering requires >= 0.6.
const promptPreferenceMinConfidence = 0.6

const dailyWaterGoalOz = 64.0

// PromptStyle collects the tone knobs that used to be copy-pasted across
// prompt variants: one composer, many styles.
type PromptStyle struct {
  Persona        string
  Delimiter      string
  MinBubbles     int
  MaxBubbles     int
  WordsPerBubble string
  AllowEmoji     bool
}

func DefaultChadStyle() PromptStyle {
  return PromptStyle{
    Persona:        "Chad, a chill fitness buddy who texts like a real person",
    Delimiter:      "||| ",
    MinBubbles:     3,
    MaxBubbles:     5,
    WordsPerBubble: "5-10 words",
    AllowEmoji:     false,
  }
}

// ActivityDigest is the same-day snapshot the orchestrator collects before
// composing the prompt. Weights cover the last 7 days, newest first.
type ActivityDigest struct {
  Meals    []*types.MealLog
  Stats    *types.DailyStats
  Water    []*types.WaterLog
  Exercise []*types.ExerciseLog
  Weights  []*types.WeightLog
}

func (d *ActivityDigest) IsEmpty() bool {
  if d == nil {
    return true
  }
  return len(d.Meals) == 0 && len(d.Water) == 0 && len(d.Exercise) == 0 && len(d.Weights) == 0
}

// ComposeSystemPrompt assembles the full instruction block for a turn. Pure
// string work; every collaborator input is passed in.
func ComposeSystemPrompt(profile *types.UserProfile, targets MacroTargets, style PromptStyle, prefs []*types.UserPreference, digest *ActivityDigest) string {
  var b strings.Builder

  goalText := "Maintain current physique"
  switch profile.GoalType {
  case types.GoalCut:
    goalText = "Lose fat while maintaining muscle"
  case types.GoalBulk:
    goalText = "Build muscle and size"
  }

  fmt.Fprintf(&b, "You are %s. You help %s track meals and hit macro targets.\n\n", style.Persona, profile.Name)

  fmt.Fprintf(&b, "USER PROFILE:\n")
  fmt.Fprintf(&b, "- Name: %s\n", profile.Name)
  fmt.Fprintf(&b, "- Height: %d'%d\"\n", profile.HeightInches/12, profile.HeightInches%12)
  fmt.Fprintf(&b, "- Weight: %.0f lbs\n", profile.WeightLbs)
  fmt.Fprintf(&b, "- Goal: %s\n", goalText)
  if profile.TargetWeight != nil {
    fmt.Fprintf(&b, "- Target Weight: %.0f lbs\n", *profile.TargetWeight)
  }

  fmt.Fprintf(&b, "\nDAILY MACRO TARGETS:\n")
  fmt.Fprintf(&b, "- Calories: %d cal\n", targets.Calories)
  fmt.Fprintf(&b, "- Protein: %dg\n", targets.Protein)
  fmt.Fprintf(&b, "- Carbs: %dg\n", targets.Carbs)
  fmt.Fprintf(&b, "- Fats: %dg\n", targets.Fats)

  emojiRule := "- NO emojis whatsoever\n"
  if style.AllowEmoji {
    emojiRule = "- Emojis are fine in moderation\n"
  }

  fmt.Fprintf(&b, "\nHOW YOU TEXT:\n")
  fmt.Fprintf(&b, "- Super short messages - break up EVERY thought into separate messages\n")
  fmt.Fprintf(&b, "- Use %q to separate each message\n", style.Delimiter)
  fmt.Fprintf(&b, "- Each message = ONE short sentence or phrase (not 2-3 sentences!)\n")
  b.WriteString(emojiRule)
  fmt.Fprintf(&b, "- Casual, straightforward language\n")
  fmt.Fprintf(&b, "- Don't be overly enthusiastic or use forced slang\n")

  fmt.Fprintf(&b, "\nMEAL TRACKING:\n")
  fmt.Fprintf(&b, "When they tell you what they ate:\n")
  fmt.Fprintf(&b, "1. Confirm you logged it\n")
  fmt.Fprintf(&b, "2. Give the macro estimate in ONE line: \"Estimated: XXX cal | XXg protein | XXg carbs | XXg fat\"\n")
  fmt.Fprintf(&b, "3. Tell them where they're at for the day\n")
  fmt.Fprintf(&b, "4. Quick encouragement or tip (optional, keep it short)\n")

  fmt.Fprintf(&b, "\nIMPORTANT RULES:\n")
  fmt.Fprintf(&b, "- ALWAYS use %q to separate EVERY message\n", style.Delimiter)
  fmt.Fprintf(&b, "- Break up your response into %d-%d short messages\n", style.MinBubbles, style.MaxBubbles)
  fmt.Fprintf(&b, "- Each message = ONE short sentence or phrase (%s)\n", style.WordsPerBubble)
  fmt.Fprintf(&b, "- Be realistic with portions - ask if unsure\n")
  fmt.Fprintf(&b, "- Don't be preachy or overly enthusiastic\n")
  fmt.Fprintf(&b, "- Track by TIME not meal names (breakfast/lunch/dinner)\n")
  fmt.Fprintf(&b, "- Keep it super chill and straightforward\n")

  if !profile.OnboardingComplete {
    fmt.Fprintf(&b, "\nONBOARDING:\n")
    fmt.Fprintf(&b, "%s just signed up and hasn't finished setup. Introduce yourself, ask about their routine and eating habits, one question at a time. Once you have what you need, say \"let's start tracking\" so they know setup is done.\n", profile.Name)
  }

  b.WriteString(renderPreferences(prefs))
  b.WriteString(renderActivityDigest(profile, targets, digest))

  fmt.Fprintf(&b, "\nYour job: make tracking easy, text like a normal person who sends multiple short texts.")
  return b.String()
}

func renderPreferences(prefs []*types.UserPreference) string {
  var explicit, lifestyle, communication, implicit []*types.UserPreference
  for _, p := range prefs {
    if p.Confidence < promptPreferenceMinConfidence {
      continue
    }
    switch p.Type {
    case types.PreferenceExplicit:
      explicit = append(explicit, p)
    case types.PreferenceLifestyle:
      lifestyle = append(lifestyle, p)
    case types.PreferenceCommunication:
      communication = append(communication, p)
    case types.PreferenceImplicit:
      implicit = append(implicit, p)
    }
  }
  if len(explicit)+len(lifestyle)+len(communication)+len(implicit) == 0 {
    return ""
  }

  var b strings.Builder
  b.WriteString("\n\n**LEARNED USER PREFERENCES:**\n")
  writeGroup := func(heading string, group []*types.UserPreference) {
    if len(group) == 0 {
      return
    }
    fmt.Fprintf(&b, "\n%s:\n", heading)
    for _, p := range group {
      fmt.Fprintf(&b, "- %s\n", p.Value)
    }
  }
  writeGroup("User Instructions", explicit)
  writeGroup("Lifestyle Details", lifestyle)
  writeGroup("Communication Preferences", communication)
  writeGroup("Observed Patterns", implicit)
  b.WriteString("\n**IMPORTANT: Adapt your responses based on these learned preferences. The user taught you this through conversation.**\n")
  return b.String()
}

func renderActivityDigest(profile *types.UserProfile, targets MacroTargets, digest *ActivityDigest) string {
  if digest.IsEmpty() {
    return ""
  }

  var sections []string

  if len(digest.Meals) > 0 {
    var lines []string
    for _, meal := range digest.Meals {
      contextStr := ""
      if meal.Context != nil && *meal.Context != "" {
        contextStr = fmt.Sprintf(" [%s]", *meal.Context)
      }
      lines = append(lines, fmt.Sprintf("- %s%s: %s - %dcal, %.0fg protein, %.0fg carbs, %.0fg fat",
        meal.LoggedAt.Format("3:04 PM"), contextStr, meal.MealName, meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatsG))
    }

    totals := "No meals logged yet today"
    var remaining string
    if digest.Stats != nil {
      totals = fmt.Sprintf("Current totals: %dcal, %.0fg protein, %.0fg carbs, %.0fg fat",
        digest.Stats.TotalCalories, digest.Stats.TotalProteinG, digest.Stats.TotalCarbsG, digest.Stats.TotalFatsG)
      remaining = fmt.Sprintf("\nRemaining: %dcal, %.0fg protein, %.0fg carbs, %.0fg fat",
        targets.Calories-digest.Stats.TotalCalories,
        float64(targets.Protein)-digest.Stats.TotalProteinG,
        float64(targets.Carbs)-digest.Stats.TotalCarbsG,
        float64(targets.Fats)-digest.Stats.TotalFatsG)
    }
    sections = append(sections, fmt.Sprintf("**MEALS TODAY:**\n%s\n\n%s%s", strings.Join(lines, "\n"), totals, remaining))
  }

  if len(digest.Water) > 0 {
    var totalOz float64
    for _, w := range digest.Water {
      totalOz += w.Ounces
    }
    sections = append(sections, fmt.Sprintf("**WATER INTAKE TODAY:**\nTotal: %.0foz / %.0foz goal (%d%%)\nLogs: %d entries",
      totalOz, dailyWaterGoalOz, int(totalOz/dailyWaterGoalOz*100+0.5), len(digest.Water)))
  }

  if len(digest.Exercise) > 0 {
    var lines []string
    totalMinutes := 0
    totalBurned := 0
    for _, ex := range digest.Exercise {
      lines = append(lines, fmt.Sprintf("- %s (%s): %dmin, %dcal burned",
        ex.ExerciseName, ex.ExerciseType, ex.DurationMinutes, ex.CaloriesBurned))
      totalMinutes += ex.DurationMinutes
      totalBurned += ex.CaloriesBurned
    }
    sections = append(sections, fmt.Sprintf("**EXERCISE TODAY:**\n%s\n\nTotal: %d minutes, %d calories burned",
      strings.Join(lines, "\n"), totalMinutes, totalBurned))
  }

  if len(digest.Weights) > 0 {
    latest := digest.Weights[0]
    oldest := digest.Weights[len(digest.Weights)-1]
    change := latest.WeightLbs - oldest.WeightLbs
    changeStr := fmt.Sprintf("%.1f", change)
    if change > 0 {
      changeStr = "+" + changeStr
    }
    goalWeight := profile.WeightLbs
    if profile.TargetWeight != nil {
      goalWeight = *profile.TargetWeight
    }
    sections = append(sections, fmt.Sprintf("**WEIGHT TRACKING:**\nCurrent: %.1flbs (logged %s)\n7-day change: %slbs\nGoal: %.0flbs",
      latest.WeightLbs, latest.LoggedAt.Format("1/2/2006"), changeStr, goalWeight))
  }

  return fmt.Sprintf("\n\n**IMPORTANT - USER'S ACTIVITY TODAY:**\n\n%s\n\nWhen the user asks about their progress, meals, water, exercise, or weight, reference this data. Provide encouragement and coaching based on their actual logged data. If they're doing well, praise them. If they're behind on goals, motivate them gently.", strings.Join(sections, "\n\n"))
}

// todayBounds returns the half-open [start, end) window for the local
// calendar day.
func todayBounds(now time.Time) (time.Time, time.Time) {
  start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
  return start, start.AddDate(0, 0, 1)
}

func dateKey(now time.Time) string {
  return now.Format("2006-01-02")
}
