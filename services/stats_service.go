// services/stats_service.go
package services

import (
	"context"

	"clubhouse/auth"
	"clubhouse/models"
)

type StatsStore interface {
	FindAll(ctx context.Context) ([]models.Stats, error)
	FindByID(ctx context.Context, id uint) (*models.Stats, error)
	Create(ctx context.Context, stats *models.Stats) error
	Update(ctx context.Context, stats *models.Stats) error
	Delete(ctx context.Context, id uint) error
}

// PlayerLookup checks that a player exists before stats are attached to it.
type PlayerLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Player, error)
}

type StatsInput struct {
	Appearances int `json:"appearances" validate:"gte=0"`
	Goals       int `json:"goals" validate:"gte=0"`
	Assists     int `json:"assists" validate:"gte=0"`
}

type StatsUpdate struct {
	ID          uint `json:"id"`
	Appearances *int `json:"appearances" validate:"omitempty,gte=0"`
	Goals       *int `json:"goals" validate:"omitempty,gte=0"`
	Assists     *int `json:"assists" validate:"omitempty,gte=0"`
}

func (u StatsUpdate) apply(s *models.Stats) {
	if u.Appearances != nil {
		s.Appearances = *u.Appearances
	}
	if u.Goals != nil {
		s.Goals = *u.Goals
	}
	if u.Assists != nil {
		s.Assists = *u.Assists
	}
}

type StatsService struct {
	stats   StatsStore
	players PlayerLookup
}

func NewStatsService(stats StatsStore, players PlayerLookup) *StatsService {
	return &StatsService{stats: stats, players: players}
}

func (s *StatsService) GetAll(ctx context.Context, id auth.Identity) ([]models.Stats, error) {
	if err := Authorize(id, ViewStats); err != nil {
		return nil, err
	}
	return s.stats.FindAll(ctx)
}

// AddToPlayer opens a new stats line for an existing player.
func (s *StatsService) AddToPlayer(ctx context.Context, id auth.Identity, playerID uint, in StatsInput) (*models.Stats, error) {
	if err := Authorize(id, ManageStats); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := s.players.FindByID(ctx, playerID); err != nil {
		return nil, storeError(err, "player with id %d not found", playerID)
	}

	stats := &models.Stats{
		PlayerID:    playerID,
		Appearances: in.Appearances,
		Goals:       in.Goals,
		Assists:     in.Assists,
	}
	if err := s.stats.Create(ctx, stats); err != nil {
		return nil, storeError(err, "stats could not be created")
	}
	return stats, nil
}

func (s *StatsService) Update(ctx context.Context, id auth.Identity, statsID uint, in StatsUpdate) (*models.Stats, error) {
	if err := Authorize(id, ManageStats); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	stats, err := s.stats.FindByID(ctx, statsID)
	if err != nil {
		return nil, storeError(err, "stats with id %d not found", statsID)
	}
	in.apply(stats)
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, storeError(err, "stats with id %d not found", statsID)
	}
	return stats, nil
}

func (s *StatsService) Remove(ctx context.Context, id auth.Identity, statsID uint) error {
	if err := Authorize(id, RemoveStats); err != nil {
		return err
	}
	return storeError(s.stats.Delete(ctx, statsID), "stats with id %d not found", statsID)
}
