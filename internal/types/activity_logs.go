package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type WaterLog struct {
  ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
  User      *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Ounces    float64      `gorm:"column:ounces;not null" json:"ounces"`
  LoggedAt  time.Time    `gorm:"column:logged_at;not null;index" json:"logged_at"`
  CreatedAt time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (WaterLog) TableName() string { return "water_log" }

func (w *WaterLog) BeforeCreate(tx *gorm.DB) error {
  if w.ID == uuid.Nil {
    w.ID = uuid.New()
  }
  return nil
}

type WeightLog struct {
  ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
  User      *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  WeightLbs float64      `gorm:"column:weight_lbs;not null" json:"weight_lbs"`
  BodyFat   *float64     `gorm:"column:body_fat" json:"body_fat,omitempty"`
  Notes     *string      `gorm:"column:notes" json:"notes,omitempty"`
  LoggedAt  time.Time    `gorm:"column:logged_at;not null;index" json:"logged_at"`
  CreatedAt time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (WeightLog) TableName() string { return "weight_log" }

func (w *WeightLog) BeforeCreate(tx *gorm.DB) error {
  if w.ID == uuid.Nil {
    w.ID = uuid.New()
  }
  return nil
}

type ExerciseLog struct {
  ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
  User            *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  ExerciseName    string       `gorm:"column:exercise_name;not null" json:"exercise_name"`
  ExerciseType    string       `gorm:"column:exercise_type;not null;default:'other'" json:"exercise_type"`
  DurationMinutes int          `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
  CaloriesBurned  int          `gorm:"column:calories_burned;not null;default:0" json:"calories_burned"`
  LoggedAt        time.Time    `gorm:"column:logged_at;not null;index" json:"logged_at"`
  CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

func (ExerciseLog) TableName() string { return "exercise_log" }

func (e *ExerciseLog) BeforeCreate(tx *gorm.DB) error {
  if e.ID == uuid.Nil {
    e.ID = uuid.New()
  }
  return nil
}
