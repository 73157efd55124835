package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type UserPreferenceRepo interface {
  GetByUserAndKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, key string) (*types.UserPreference, error)
  Create(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (*types.UserPreference, error)
  Update(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (*types.UserPreference, error)
  ListConfident(ctx context.Context, tx *gorm.DB, userID uuid.UUID, minConfidence float64) ([]*types.UserPreference, error)
}

type userPreferenceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) UserPreferenceRepo {
  return &userPreferenceRepo{db: db, log: baseLog.With("repo", "UserPreferenceRepo")}
}

// GetByUserAndKey returns (nil, nil) when the key has not been learned yet.
func (r *userPreferenceRepo) GetByUserAndKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, key string) (*types.UserPreference, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var pref types.UserPreference
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND preference_key = ?", userID, key).
    First(&pref).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &pref, nil
}

func (r *userPreferenceRepo) Create(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (*types.UserPreference, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(pref).Error; err != nil {
    return nil, err
  }
  return pref, nil
}

func (r *userPreferenceRepo) Update(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (*types.UserPreference, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Save(pref).Error; err != nil {
    return nil, err
  }
  return pref, nil
}

func (r *userPreferenceRepo) ListConfident(ctx context.Context, tx *gorm.DB, userID uuid.UUID, minConfidence float64) ([]*types.UserPreference, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.UserPreference
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND confidence >= ?", userID, minConfidence).
    Order("learned_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
