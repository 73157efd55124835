package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type WeightLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, log *types.WeightLog) (*types.WeightLog, error)
  GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.WeightLog, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WeightLog, error)
  ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.WeightLog, error)
  Update(ctx context.Context, tx *gorm.DB, log *types.WeightLog) (*types.WeightLog, error)
  Delete(ctx context.Context, tx *gorm.DB, logID, userID uuid.UUID) error
}

type weightLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWeightLogRepo(db *gorm.DB, baseLog *logger.Logger) WeightLogRepo {
  return &weightLogRepo{db: db, log: baseLog.With("repo", "WeightLogRepo")}
}

func (r *weightLogRepo) Create(ctx context.Context, tx *gorm.DB, weightLog *types.WeightLog) (*types.WeightLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(weightLog).Error; err != nil {
    return nil, err
  }
  return weightLog, nil
}

func (r *weightLogRepo) GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.WeightLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var weightLog types.WeightLog
  if err := transaction.WithContext(ctx).
    Where("id = ?", logID).
    First(&weightLog).Error; err != nil {
    return nil, err
  }
  return &weightLog, nil
}

func (r *weightLogRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WeightLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.WeightLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("logged_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *weightLogRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.WeightLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.WeightLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND logged_at >= ?", userID, since).
    Order("logged_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *weightLogRepo) Update(ctx context.Context, tx *gorm.DB, weightLog *types.WeightLog) (*types.WeightLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Save(weightLog).Error; err != nil {
    return nil, err
  }
  return weightLog, nil
}

func (r *weightLogRepo) Delete(ctx context.Context, tx *gorm.DB, logID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", logID, userID).
    Delete(&types.WeightLog{}).Error
}
