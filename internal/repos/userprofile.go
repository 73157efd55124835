package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type UserProfileRepo interface {
  Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error)
  GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error)
  MarkOnboardingComplete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userProfileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
  return &userProfileRepo{db: db, log: baseLog.With("repo", "UserProfileRepo")}
}

func (r *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
    return nil, err
  }
  return profile, nil
}

func (r *userProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var profile types.UserProfile
  if err := transaction.WithContext(ctx).
    Where("id = ?", userID).
    First(&profile).Error; err != nil {
    return nil, err
  }
  return &profile, nil
}

// MarkOnboardingComplete only ever moves the flag forward; a row that is
// already complete is left untouched.
func (r *userProfileRepo) MarkOnboardingComplete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Model(&types.UserProfile{}).
    Where("id = ? AND onboarding_complete = ?", userID, false).
    Update("onboarding_complete", true).Error
}
