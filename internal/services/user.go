package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/types"
)

type OnboardingInput struct {
  Name           string   `json:"name"`
  HeightInches   int      `json:"heightInches"`
  WeightLbs      float64  `json:"weightLbs"`
  CurrentBodyFat *float64 `json:"currentBodyFat,omitempty"`
  GoalType       string   `json:"goalType"`
  TargetWeight   *float64 `json:"targetWeight,omitempty"`
  TargetBodyFat  *float64 `json:"targetBodyFat,omitempty"`
}

type UserService interface {
  // Onboard creates the profile, snapshots the computed macro targets onto
  // it, and seeds the first weight log.
  Onboard(ctx context.Context, input OnboardingInput) (*types.UserProfile, MacroTargets, error)
  Get(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
  Targets(profile *types.UserProfile) MacroTargets
}

type userService struct {
  db          *gorm.DB
  log         *logger.Logger
  profileRepo repos.UserProfileRepo
  weightRepo  repos.WeightLogRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, profileRepo repos.UserProfileRepo, weightRepo repos.WeightLogRepo) UserService {
  return &userService{
    db:          db,
    log:         log.With("service", "UserService"),
    profileRepo: profileRepo,
    weightRepo:  weightRepo,
  }
}

func (s *userService) Onboard(ctx context.Context, input OnboardingInput) (*types.UserProfile, MacroTargets, error) {
  if input.Name == "" || input.HeightInches <= 0 || input.WeightLbs <= 0 {
    return nil, MacroTargets{}, fmt.Errorf("missing required fields")
  }
  switch input.GoalType {
  case types.GoalCut, types.GoalBulk, types.GoalMaintain:
  default:
    return nil, MacroTargets{}, fmt.Errorf("invalid goal type %q", input.GoalType)
  }

  profile := &types.UserProfile{
    Name:           input.Name,
    HeightInches:   input.HeightInches,
    WeightLbs:      input.WeightLbs,
    CurrentBodyFat: input.CurrentBodyFat,
    GoalType:       input.GoalType,
    TargetWeight:   input.TargetWeight,
    TargetBodyFat:  input.TargetBodyFat,
  }
  targets := CalculateMacros(profile)
  profile.DailyCalories = targets.Calories
  profile.DailyProteinG = targets.Protein
  profile.DailyCarbsG = targets.Carbs
  profile.DailyFatsG = targets.Fats

  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.profileRepo.Create(ctx, tx, profile); err != nil {
      return err
    }
    _, err := s.weightRepo.Create(ctx, tx, &types.WeightLog{
      UserID:    profile.ID,
      WeightLbs: input.WeightLbs,
      BodyFat:   input.CurrentBodyFat,
      LoggedAt:  time.Now(),
    })
    return err
  })
  if err != nil {
    return nil, MacroTargets{}, err
  }
  s.log.Info("User onboarded", "userID", profile.ID, "goal", profile.GoalType)
  return profile, targets, nil
}

func (s *userService) Get(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
  return s.profileRepo.GetByID(ctx, nil, userID)
}

// Targets recomputes live targets; the daily_* columns on the profile stay
// as the onboarding-time snapshot and may drift if the engine changes.
func (s *userService) Targets(profile *types.UserProfile) MacroTargets {
  return CalculateMacros(profile)
}
