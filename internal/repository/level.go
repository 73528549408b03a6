package repository

import (
	"context"

	"github.com/helferherz/karmalama/internal/cache"
	"github.com/helferherz/karmalama/internal/models"

	"gorm.io/gorm"
)

// LevelRepository provides access to the level threshold table.
type LevelRepository interface {
	List(ctx context.Context) ([]models.Level, error)
	// Table returns the lookup table built from the stored rows, falling
	// back to the built-in defaults when nothing has been seeded.
	Table(ctx context.Context) (*models.LevelTable, error)
	// Replace swaps the whole threshold table in one transaction.
	Replace(ctx context.Context, levels []models.Level) error
}

type levelRepository struct {
	db *gorm.DB
}

// NewLevelRepository returns a new LevelRepository implementation.
func NewLevelRepository(db *gorm.DB) LevelRepository {
	return &levelRepository{db: db}
}

func (r *levelRepository) List(ctx context.Context) ([]models.Level, error) {
	var levels []models.Level

	err := cache.Aside(ctx, cache.LevelTableKey, &levels, cache.LevelTableTTL, func() error {
		if err := r.db.WithContext(ctx).Order("points ASC").Find(&levels).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *levelRepository) Table(ctx context.Context) (*models.LevelTable, error) {
	levels, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		levels = models.DefaultLevels()
	}
	return models.NewLevelTable(levels), nil
}

func (r *levelRepository) Replace(ctx context.Context, levels []models.Level) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Level{}).Error; err != nil {
			return err
		}
		if len(levels) == 0 {
			return nil
		}
		return tx.Create(&levels).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLevelTable(ctx)
	return nil
}
