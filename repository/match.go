// repository/match.go
package repository

import (
	"context"
	"fmt"

	"clubhouse/models"

	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) FindAll(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("Players").
		Order("date DESC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepository) FindByID(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).
		Preload("Players").
		First(&match, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &match, nil
}

// FindPlayers returns the lineup of a match.
func (r *MatchRepository) FindPlayers(ctx context.Context, matchID uint) ([]models.Player, error) {
	match, err := r.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Players == nil {
		return []models.Player{}, nil
	}
	return match.Players, nil
}

func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Omit("Players").Create(match).Error
}

func (r *MatchRepository) Update(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Omit("Players").Save(match).Error
}

// Delete removes the match and its lineup rows.
func (r *MatchRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		match := models.Match{ID: id}
		if err := tx.Model(&match).Association("Players").Clear(); err != nil {
			return err
		}
		return deleteByID(tx, &models.Match{}, id)
	})
}

// AddPlayers links every player in playerIDs to the match. Players already in
// the lineup are left as they are. The updated match is returned.
func (r *MatchRepository) AddPlayers(ctx context.Context, matchID uint, playerIDs []uint) (*models.Match, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.First(&match, matchID).Error; err != nil {
			return translate(err)
		}

		var players []models.Player
		if err := tx.Where("id IN ?", playerIDs).Find(&players).Error; err != nil {
			return err
		}
		if missing := missingIDs(playerIDs, players); len(missing) > 0 {
			return fmt.Errorf("players %v: %w", missing, ErrNotFound)
		}

		return tx.Model(&match).Omit("Players.*").Association("Players").Append(&players)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, matchID)
}

func missingIDs(want []uint, found []models.Player) []uint {
	have := make(map[uint]struct{}, len(found))
	for _, p := range found {
		have[p.ID] = struct{}{}
	}
	var missing []uint
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
