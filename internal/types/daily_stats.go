package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// DailyStats holds running sums for one (user, calendar date). The row must
// always equal the elementwise sum over the surviving meal_log rows of that
// day; maintenance is incremental and clamped at zero.
type DailyStats struct {
  ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_daily_stats_user_date" json:"user_id"`
  User          *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Date          string       `gorm:"column:date;not null;uniqueIndex:idx_daily_stats_user_date" json:"date"`
  TotalCalories int          `gorm:"column:total_calories;not null;default:0" json:"total_calories"`
  TotalProteinG float64      `gorm:"column:total_protein_g;not null;default:0" json:"total_protein_g"`
  TotalCarbsG   float64      `gorm:"column:total_carbs_g;not null;default:0" json:"total_carbs_g"`
  TotalFatsG    float64      `gorm:"column:total_fats_g;not null;default:0" json:"total_fats_g"`
  MealsLogged   int          `gorm:"column:meals_logged;not null;default:0" json:"meals_logged"`
  CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

func (DailyStats) TableName() string { return "daily_stats" }

func (s *DailyStats) BeforeCreate(tx *gorm.DB) error {
  if s.ID == uuid.Nil {
    s.ID = uuid.New()
  }
  return nil
}
