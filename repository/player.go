// repository/player.go
package repository

import (
	"context"

	"clubhouse/models"

	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) FindAll(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	err := r.db.WithContext(ctx).
		Preload("Stats").
		Order("number ASC").
		Find(&players).Error
	return players, err
}

func (r *PlayerRepository) FindByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).
		Preload("Stats").
		First(&player, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (r *PlayerRepository) FindByNumber(ctx context.Context, number int) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&player).Error
	if err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

// FindByIDs returns the players that exist among ids.
func (r *PlayerRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Player, error) {
	var players []models.Player
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&players).Error
	return players, err
}

func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Omit("Stats", "Matches").Create(player).Error
}

// Update saves the player and, when stats is non-nil, that stats row in the
// same transaction. The stats row must belong to the player.
func (r *PlayerRepository) Update(ctx context.Context, player *models.Player, stats *models.Stats) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stats", "Matches").Save(player).Error; err != nil {
			return err
		}
		if stats == nil {
			return nil
		}

		var existing models.Stats
		if err := tx.Where("id = ? AND player_id = ?", stats.ID, player.ID).First(&existing).Error; err != nil {
			return translate(err)
		}
		stats.PlayerID = player.ID
		stats.CreatedAt = existing.CreatedAt
		return tx.Save(stats).Error
	})
}

// Delete removes the player together with its stats and match lineups.
func (r *PlayerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player := models.Player{ID: id}
		if err := tx.Model(&player).Association("Matches").Clear(); err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", id).Delete(&models.Stats{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Player{}, id)
	})
}
