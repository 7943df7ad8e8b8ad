// repository/team.go
package repository

import (
	"context"

	"clubhouse/models"

	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Preload("Players").
		Preload("Coaches").
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

// Standings returns teams ordered as a league table: points, goal
// difference, goals scored, then name.
func (r *TeamRepository) Standings(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Order("points DESC").
		Order("(goals_for - goals_ag) DESC").
		Order("goals_for DESC").
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	return translate(r.db.WithContext(ctx).Omit("Players", "Coaches").Create(team).Error)
}

func (r *TeamRepository) Update(ctx context.Context, team *models.Team) error {
	return translate(r.db.WithContext(ctx).Omit("Players", "Coaches").Save(team).Error)
}

// Delete removes the team and leaves its players and coaches unassigned.
func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The partial updates below would otherwise run the full-record hooks.
		unhooked := tx.Session(&gorm.Session{SkipHooks: true})
		if err := unhooked.Model(&models.Player{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := unhooked.Model(&models.Coach{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Team{}, id)
	})
}
