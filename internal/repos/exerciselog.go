package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type ExerciseLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, log *types.ExerciseLog) (*types.ExerciseLog, error)
  GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.ExerciseLog, error)
  ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.ExerciseLog, error)
  Update(ctx context.Context, tx *gorm.DB, log *types.ExerciseLog) (*types.ExerciseLog, error)
  Delete(ctx context.Context, tx *gorm.DB, logID, userID uuid.UUID) error
}

type exerciseLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewExerciseLogRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseLogRepo {
  return &exerciseLogRepo{db: db, log: baseLog.With("repo", "ExerciseLogRepo")}
}

func (r *exerciseLogRepo) Create(ctx context.Context, tx *gorm.DB, exerciseLog *types.ExerciseLog) (*types.ExerciseLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(exerciseLog).Error; err != nil {
    return nil, err
  }
  return exerciseLog, nil
}

func (r *exerciseLogRepo) GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.ExerciseLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var exerciseLog types.ExerciseLog
  if err := transaction.WithContext(ctx).
    Where("id = ?", logID).
    First(&exerciseLog).Error; err != nil {
    return nil, err
  }
  return &exerciseLog, nil
}

func (r *exerciseLogRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.ExerciseLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.ExerciseLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
    Order("logged_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *exerciseLogRepo) Update(ctx context.Context, tx *gorm.DB, exerciseLog *types.ExerciseLog) (*types.ExerciseLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Save(exerciseLog).Error; err != nil {
    return nil, err
  }
  return exerciseLog, nil
}

func (r *exerciseLogRepo) Delete(ctx context.Context, tx *gorm.DB, logID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", logID, userID).
    Delete(&types.ExerciseLog{}).Error
}
