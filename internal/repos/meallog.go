package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/types"
)

type MealLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, meal *types.MealLog) (*types.MealLog, error)
  GetByID(ctx context.Context, tx *gorm.DB, mealID uuid.UUID) (*types.MealLog, error)
  ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.MealLog, error)
  Update(ctx context.Context, tx *gorm.DB, meal *types.MealLog) (*types.MealLog, error)
  Delete(ctx context.Context, tx *gorm.DB, mealID, userID uuid.UUID) error
}

type mealLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMealLogRepo(db *gorm.DB, baseLog *logger.Logger) MealLogRepo {
  return &mealLogRepo{db: db, log: baseLog.With("repo", "MealLogRepo")}
}

func (r *mealLogRepo) Create(ctx context.Context, tx *gorm.DB, meal *types.MealLog) (*types.MealLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Create(meal).Error; err != nil {
    return nil, err
  }
  return meal, nil
}

func (r *mealLogRepo) GetByID(ctx context.Context, tx *gorm.DB, mealID uuid.UUID) (*types.MealLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var meal types.MealLog
  if err := transaction.WithContext(ctx).
    Where("id = ?", mealID).
    First(&meal).Error; err != nil {
    return nil, err
  }
  return &meal, nil
}

func (r *mealLogRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.MealLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.MealLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
    Order("logged_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *mealLogRepo) Update(ctx context.Context, tx *gorm.DB, meal *types.MealLog) (*types.MealLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if err := transaction.WithContext(ctx).Save(meal).Error; err != nil {
    return nil, err
  }
  return meal, nil
}

func (r *mealLogRepo) Delete(ctx context.Context, tx *gorm.DB, mealID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", mealID, userID).
    Delete(&types.MealLog{}).Error
}
