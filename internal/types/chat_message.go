package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

const (
  RoleUser      = "user"
  RoleAssistant = "assistant"
)

// ChatMessage is an append-only log. Insertion order is chronological order;
// one assistant completion may produce several rows (one per bubble).
type ChatMessage struct {
  ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
  User      *UserProfile `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Role      string       `gorm:"column:role;not null" json:"role"`
  Content   string       `gorm:"column:content;not null" json:"content"`
  CreatedAt time.Time    `gorm:"not null;index" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
  if m.ID == uuid.Nil {
    m.ID = uuid.New()
  }
  return nil
}
