package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type WaterLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, log *types.WaterLog) (*types.WaterLog, error)
  GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.WaterLog, error)
  ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.WaterLog, error)
  Update(ctx context.Context, tx *gorm.DB, log *types.WaterLog) (*types.WaterLog, error)
  Delete(ctx context.Context, tx *gorm.DB, logID, userID uuid.UUID) error
}

type waterLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWaterLogRepo(db *gorm.DB, baseLog *logger.Logger) WaterLogRepo {
  return &waterLogRepo{db: db, log: baseLog.With("repo", "WaterLogRepo")}
}

func (r *waterLogRepo) Create(ctx context.Context, tx *gorm.DB, waterLog *types.WaterLog) (*types.WaterLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(waterLog).Error; err != nil {
    return nil, err
  }
  return waterLog, nil
}

func (r *waterLogRepo) GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.WaterLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var waterLog types.WaterLog
  if err := transaction.WithContext(ctx).
    Where("id = ?", logID).
    First(&waterLog).Error; err != nil {
    return nil, err
  }
  return &waterLog, nil
}

func (r *waterLogRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.WaterLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.WaterLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
    Order("logged_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *waterLogRepo) Update(ctx context.Context, tx *gorm.DB, waterLog *types.WaterLog) (*types.WaterLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Save(waterLog).Error; err != nil {
    return nil, err
  }
  return waterLog, nil
}

func (r *waterLogRepo) Delete(ctx context.Context, tx *gorm.DB, logID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", logID, userID).
    Delete(&types.WaterLog{}).Error
}
