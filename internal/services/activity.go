package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"

  "github.com/chadfit/chad-backend/internal/logger"
  "github.com/chadfit/chad-backend/internal/repos"
  "github.com/chadfit/chad-backend/internal/types"
)

// WaterService, WeightService and ExerciseService are plain keyed CRUD; the
// only shared rule is user scoping on every mutation.

type WaterService interface {
  Log(ctx context.Context, userID uuid.UUID, ounces float64) (*types.WaterLog, error)
  ListDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.WaterLog, float64, error)
  Update(ctx context.Context, logID, userID uuid.UUID, ounces float64) (*types.WaterLog, error)
  Delete(ctx context.Context, logID, userID uuid.UUID) error
}

type waterService struct {
  log       *logger.Logger
  waterRepo repos.WaterLogRepo
}

func NewWaterService(log *logger.Logger, waterRepo repos.WaterLogRepo) WaterService {
  return &waterService{log: log.With("service", "WaterService"), waterRepo: waterRepo}
}

func (s *waterService) Log(ctx context.Context, userID uuid.UUID, ounces float64) (*types.WaterLog, error) {
  if ounces <= 0 {
    return nil, fmt.Errorf("missing required fields")
  }
  return s.waterRepo.Create(ctx, nil, &types.WaterLog{
    UserID:   userID,
    Ounces:   ounces,
    LoggedAt: time.Now(),
  })
}

func (s *waterService) ListDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.WaterLog, float64, error) {
  from, to := todayBounds(day)
  logs, err := s.waterRepo.ListByUserAndRange(ctx, nil, userID, from, to)
  if err != nil {
    return nil, 0, err
  }
  var total float64
  for _, l := range logs {
    total += l.Ounces
  }
  return logs, total, nil
}

func (s *waterService) Update(ctx context.Context, logID, userID uuid.UUID, ounces float64) (*types.WaterLog, error) {
  if ounces <= 0 {
    return nil, fmt.Errorf("missing required fields")
  }
  waterLog, err := s.waterRepo.GetByID(ctx, nil, logID)
  if err != nil {
    return nil, err
  }
  if waterLog.UserID != userID {
    return nil, fmt.Errorf("water log does not belong to user")
  }
  waterLog.Ounces = ounces
  return s.waterRepo.Update(ctx, nil, waterLog)
}

func (s *waterService) Delete(ctx context.Context, logID, userID uuid.UUID) error {
  return s.waterRepo.Delete(ctx, nil, logID, userID)
}

type WeightService interface {
  Log(ctx context.Context, userID uuid.UUID, weightLbs float64, notes *string) (*types.WeightLog, error)
  List(ctx context.Context, userID uuid.UUID) ([]*types.WeightLog, error)
  Update(ctx context.Context, logID, userID uuid.UUID, weightLbs float64, notes *string) (*types.WeightLog, error)
  Delete(ctx context.Context, logID, userID uuid.UUID) error
}

type weightService struct {
  log        *logger.Logger
  weightRepo repos.WeightLogRepo
}

func NewWeightService(log *logger.Logger, weightRepo repos.WeightLogRepo) WeightService {
  return &weightService{log: log.With("service", "WeightService"), weightRepo: weightRepo}
}

func (s *weightService) Log(ctx context.Context, userID uuid.UUID, weightLbs float64, notes *string) (*types.WeightLog, error) {
  if weightLbs <= 0 {
    return nil, fmt.Errorf("missing required fields")
  }
  return s.weightRepo.Create(ctx, nil, &types.WeightLog{
    UserID:    userID,
    WeightLbs: weightLbs,
    Notes:     notes,
    LoggedAt:  time.Now(),
  })
}

func (s *weightService) List(ctx context.Context, userID uuid.UUID) ([]*types.WeightLog, error) {
  return s.weightRepo.ListByUser(ctx, nil, userID)
}

func (s *weightService) Update(ctx context.Context, logID, userID uuid.UUID, weightLbs float64, notes *string) (*types.WeightLog, error) {
  if weightLbs <= 0 {
    return nil, fmt.Errorf("missing required fields")
  }
  weightLog, err := s.weightRepo.GetByID(ctx, nil, logID)
  if err != nil {
    return nil, err
  }
  if weightLog.UserID != userID {
    return nil, fmt.Errorf("weight log does not belong to user")
  }
  weightLog.WeightLbs = weightLbs
  weightLog.Notes = notes
  return s.weightRepo.Update(ctx, nil, weightLog)
}

func (s *weightService) Delete(ctx context.Context, logID, userID uuid.UUID) error {
  return s.weightRepo.Delete(ctx, nil, logID, userID)
}

type ExerciseInput struct {
  ExerciseName    string `json:"exerciseName"`
  ExerciseType    string `json:"exerciseType"`
  DurationMinutes int    `json:"durationMinutes"`
  CaloriesBurned  int    `json:"caloriesBurned"`
}

type ExerciseService interface {
  Log(ctx context.Context, userID uuid.UUID, input ExerciseInput) (*types.ExerciseLog, error)
  ListDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.ExerciseLog, error)
  Update(ctx context.Context, logID, userID uuid.UUID, input ExerciseInput) (*types.ExerciseLog, error)
  Delete(ctx context.Context, logID, userID uuid.UUID) error
}

type exerciseService struct {
  log          *logger.Logger
  exerciseRepo repos.ExerciseLogRepo
}

func NewExerciseService(log *logger.Logger, exerciseRepo repos.ExerciseLogRepo) ExerciseService {
  return &exerciseService{log: log.With("service", "ExerciseService"), exerciseRepo: exerciseRepo}
}

func (s *exerciseService) Log(ctx context.Context, userID uuid.UUID, input ExerciseInput) (*types.ExerciseLog, error) {
  if input.ExerciseName == "" {
    return nil, fmt.Errorf("missing required fields")
  }
  exerciseType := input.ExerciseType
  if exerciseType == "" {
    exerciseType = "other"
  }
  return s.exerciseRepo.Create(ctx, nil, &types.ExerciseLog{
    UserID:          userID,
    ExerciseName:    input.ExerciseName,
    ExerciseType:    exerciseType,
    DurationMinutes: input.DurationMinutes,
    CaloriesBurned:  input.CaloriesBurned,
    LoggedAt:        time.Now(),
  })
}

func (s *exerciseService) ListDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.ExerciseLog, error) {
  from, to := todayBounds(day)
  return s.exerciseRepo.ListByUserAndRange(ctx, nil, userID, from, to)
}

func (s *exerciseService) Update(ctx context.Context, logID, userID uuid.UUID, input ExerciseInput) (*types.ExerciseLog, error) {
  if input.ExerciseName == "" {
    return nil, fmt.Errorf("missing required fields")
  }
  exerciseLog, err := s.exerciseRepo.GetByID(ctx, nil, logID)
  if err != nil {
    return nil, err
  }
  if exerciseLog.UserID != userID {
    return nil, fmt.Errorf("exercise log does not belong to user")
  }
  exerciseLog.ExerciseName = input.ExerciseName
  if input.ExerciseType != "" {
    exerciseLog.ExerciseType = input.ExerciseType
  }
  exerciseLog.DurationMinutes = input.DurationMinutes
  exerciseLog.CaloriesBurned = input.CaloriesBurned
  return s.exerciseRepo.Update(ctx, nil, exerciseLog)
}

func (s *exerciseService) Delete(ctx context.Context, logID, userID uuid.UUID) error {
  return s.exerciseRepo.Delete(ctx, nil, logID, userID)
}
