package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type DailyStatsRepo interface {
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (*types.DailyStats, error)
  Create(ctx context.Context, tx *gorm.DB, stats *types.DailyStats) (*types.DailyStats, error)
  Update(ctx context.Context, tx *gorm.DB, stats *types.DailyStats) (*types.DailyStats, error)
}

type dailyStatsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyStatsRepo(db *gorm.DB, baseLog *logger.Logger) DailyStatsRepo {
  return &dailyStatsRepo{db: db, log: baseLog.With("repo", "DailyStatsRepo")}
}

// GetByUserAndDate returns (nil, nil) when no row exists for the day yet.
func (r *dailyStatsRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (*types.DailyStats, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var stats types.DailyStats
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", userID, date).
    First(&stats).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &stats, nil
}

func (r *dailyStatsRepo) Create(ctx context.Context, tx *gorm.DB, stats *types.DailyStats) (*types.DailyStats, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(stats).Error; err != nil {
    return nil, err
  }
  return stats, nil
}

func (r *dailyStatsRepo) Update(ctx context.Context, tx *gorm.DB, stats *types.DailyStats) (*types.DailyStats, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Save(stats).Error; err != nil {
    return nil, err
  }
  return stats, nil
}
