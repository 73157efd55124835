package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

const (
  PreferenceExplicit      = "explicit"
  PreferenceImplicit      = "implicit"
  PreferenceLifestyle     = "lifestyle"
  PreferenceCommunication = "communication"
)

// UserPreference is upserted by (user, key): a later detection with the same
// key overwrites value/confidence/source instead of adding a row. Rows are
// never deleted, only superseded.
type UserPreference struct {
  ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_preference_user_key" json:"user_id"`
  User       *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Type       string       `gorm:"column:preference_type;not null" json:"preference_type"`
  Key        string       `gorm:"column:preference_key;not null;uniqueIndex:idx_user_preference_user_key" json:"preference_key"`
  Value      string       `gorm:"column:preference_value;not null" json:"preference_value"`
  Confidence float64      `gorm:"column:confidence;not null;default:0" json:"confidence"`
  Source     string       `gorm:"column:source" json:"source"`
  LearnedAt  time.Time    `gorm:"column:learned_at;not null" json:"learned_at"`
  UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}

func (UserPreference) TableName() string { return "user_preference" }

func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
  if p.ID == uuid.Nil {
    p.ID = uuid.New()
  }
  return nil
}
