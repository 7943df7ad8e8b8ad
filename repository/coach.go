// repository/coach.go
package repository

import (
	"context"

	"clubhouse/models"

	"gorm.io/gorm"
)

type CoachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) FindAll(ctx context.Context) ([]models.Coach, error) {
	var coaches []models.Coach
	err := r.db.WithContext(ctx).Order("name ASC").Find(&coaches).Error
	return coaches, err
}

func (r *CoachRepository) FindByID(ctx context.Context, id uint) (*models.Coach, error) {
	var coach models.Coach
	if err := r.db.WithContext(ctx).First(&coach, id).Error; err != nil {
		return nil, translate(err)
	}
	return &coach, nil
}

func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	return r.db.WithContext(ctx).Create(coach).Error
}

func (r *CoachRepository) Update(ctx context.Context, coach *models.Coach) error {
	return r.db.WithContext(ctx).Save(coach).Error
}

func (r *CoachRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Coach{}, id)
}
