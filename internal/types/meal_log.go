package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

const (
  MealContextPreWorkout  = "pre-workout"
  MealContextPostWorkout = "post-workout"
  MealContextBeforeBed   = "before-bed"
)

// MealLog rows come from the manual food form or from a meal estimate
// extracted out of an assistant reply. MessageID is a weak back-reference to
// the first assistant bubble of the turn that logged the meal; no cascade.
type MealLog struct {
  ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
  User      *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  MessageID *uuid.UUID   `gorm:"type:uuid" json:"message_id,omitempty"`
  MealName  string       `gorm:"column:meal_name;not null" json:"meal_name"`
  Calories  int          `gorm:"column:calories;not null;default:0" json:"calories"`
  ProteinG  float64      `gorm:"column:protein_g;not null;default:0" json:"protein_g"`
  CarbsG    float64      `gorm:"column:carbs_g;not null;default:0" json:"carbs_g"`
  FatsG     float64      `gorm:"column:fats_g;not null;default:0" json:"fats_g"`
  Context   *string      `gorm:"column:context" json:"context,omitempty"`
  LoggedAt  time.Time    `gorm:"column:logged_at;not null;index" json:"logged_at"`
  CreatedAt time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (MealLog) TableName() string { return "meal_log" }

func (m *MealLog) BeforeCreate(tx *gorm.DB) error {
  if m.ID == uuid.Nil {
    m.ID = uuid.New()
  }
  return nil
}
