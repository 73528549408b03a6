package service

import (
	"context"
	"errors"

	"github.com/helferherz/karmalama/internal/middleware"
	"github.com/helferherz/karmalama/internal/models"
	"github.com/helferherz/karmalama/internal/repository"
)

// progressRetries bounds the optimistic-update loop for concurrent awards.
const progressRetries = 5

// AwardResult reports the outcome of a points award.
type AwardResult struct {
	User      *models.User
	OldLevel  int
	NewLevel  int
	LeveledUp bool
}

// ProgressService provides points, hours, and level business logic.
type ProgressService struct {
	userRepo  repository.UserRepository
	levelRepo repository.LevelRepository
}

// NewProgressService returns a new ProgressService.
func NewProgressService(userRepo repository.UserRepository, levelRepo repository.LevelRepository) *ProgressService {
	return &ProgressService{
		userRepo:  userRepo,
		levelRepo: levelRepo,
	}
}

// Levels returns the level thresholds in ascending order.
func (s *ProgressService) Levels(ctx context.Context) ([]models.Level, error) {
	return s.levelRepo.List(ctx)
}

// AwardPoints adds points and worked hours to the user and recomputes the
// level from the threshold table. The write is a conditional update guarded
// by the previously read points value, retried a bounded number of times, so
// two concurrent awards never clobber each other. Zero points and zero hours
// is a no-op; negative amounts are rejected.
func (s *ProgressService) AwardPoints(ctx context.Context, userID uint, points, hours int) (*AwardResult, error) {
	if points < 0 || hours < 0 {
		return nil, models.NewInvalidAmountError("Points and hours must not be negative")
	}

	table, err := s.levelRepo.Table(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < progressRetries; attempt++ {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}

		oldLevel := user.Level
		if points == 0 && hours == 0 {
			return &AwardResult{User: user, OldLevel: oldLevel, NewLevel: oldLevel}, nil
		}

		newPoints := user.Points + points
		newHours := user.HoursWorked + hours
		newLevel := table.ForPoints(newPoints)

		ok, err := s.userRepo.UpdateProgress(ctx, userID, user.Points, newPoints, newLevel, newHours)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		user.Points = newPoints
		user.HoursWorked = newHours
		user.Level = newLevel

		middleware.PointsAwarded.Add(float64(points))
		if newLevel > oldLevel {
			middleware.LevelUps.Inc()
			middleware.Logger.InfoContext(ctx, "user leveled up",
				"user_id", userID,
				"old_level", oldLevel,
				"new_level", newLevel,
				"points", newPoints)
		}

		return &AwardResult{
			User:      user,
			OldLevel:  oldLevel,
			NewLevel:  newLevel,
			LeveledUp: newLevel > oldLevel,
		}, nil
	}

	return nil, models.NewInternalError(errTooMuchContention)
}

var errTooMuchContention = errors.New("progress update lost the race too many times")
