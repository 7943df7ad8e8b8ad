// repository/stats.go
package repository

import (
	"context"

	"clubhouse/models"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) FindAll(ctx context.Context) ([]models.Stats, error) {
	var stats []models.Stats
	err := r.db.WithContext(ctx).Order("player_id ASC, id ASC").Find(&stats).Error
	return stats, err
}

func (r *StatsRepository) FindByID(ctx context.Context, id uint) (*models.Stats, error) {
	var stats models.Stats
	if err := r.db.WithContext(ctx).First(&stats, id).Error; err != nil {
		return nil, translate(err)
	}
	return &stats, nil
}

func (r *StatsRepository) Create(ctx context.Context, stats *models.Stats) error {
	return r.db.WithContext(ctx).Create(stats).Error
}

func (r *StatsRepository) Update(ctx context.Context, stats *models.Stats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}

func (r *StatsRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Stats{}, id)
}
