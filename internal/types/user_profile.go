package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

const (
  GoalCut      = "cut"
  GoalBulk     = "bulk"
  GoalMaintain = "maintain"
)

// UserProfile is created once at onboarding. Weight and target changes are
// recorded as WeightLog rows; the daily_* columns are a snapshot of the macro
// targets computed at onboarding time.
type UserProfile struct {
  ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Name               string     `gorm:"column:name;not null" json:"name"`
  HeightInches       int        `gorm:"column:height_inches;not null" json:"height_inches"`
  WeightLbs          float64    `gorm:"column:weight_lbs;not null" json:"weight_lbs"`
  CurrentBodyFat     *float64   `gorm:"column:current_body_fat" json:"current_body_fat,omitempty"`
  GoalType           string     `gorm:"column:goal_type;not null" json:"goal_type"`
  TargetWeight       *float64   `gorm:"column:target_weight" json:"target_weight,omitempty"`
  TargetBodyFat      *float64   `gorm:"column:target_body_fat" json:"target_body_fat,omitempty"`
  DailyCalories      int        `gorm:"column:daily_calories" json:"daily_calories"`
  DailyProteinG      int        `gorm:"column:daily_protein_g" json:"daily_protein_g"`
  DailyCarbsG        int        `gorm:"column:daily_carbs_g" json:"daily_carbs_g"`
  DailyFatsG         int        `gorm:"column:daily_fats_g" json:"daily_fats_g"`
  OnboardingComplete bool       `gorm:"column:onboarding_complete;not null;default:false" json:"onboarding_complete"`
  CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt          time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
  if p.ID == uuid.Nil {
    p.ID = uuid.New()
  }
  return nil
}
