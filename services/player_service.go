// services/player_service.go - Player roster business logic
package services

import (
	"context"
	"errors"
	"time"

	"clubhouse/auth"
	"clubhouse/models"
	"clubhouse/repository"
	"clubhouse/validation"
)

type PlayerStore interface {
	FindAll(ctx context.Context) ([]models.Player, error)
	FindByID(ctx context.Context, id uint) (*models.Player, error)
	FindByNumber(ctx context.Context, number int) (*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player, stats *models.Stats) error
	Delete(ctx context.Context, id uint) error
}

// TeamLookup resolves the team a player or coach is assigned to.
type TeamLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Team, error)
}

type PlayerInput struct {
	Name      string    `json:"name" validate:"required,max=100"`
	Number    *int      `json:"number" validate:"required,gte=0"`
	Position  string    `json:"position" validate:"required,max=50"`
	Birthdate time.Time `json:"birthdate" validate:"required"`
	ImageURL  string    `json:"imageUrl" validate:"omitempty,max=500"`
	TeamID    *uint     `json:"teamId"`
}

// PlayerUpdate changes only the fields that are present. When Stat carries
// an id, that stats line is updated in the same transaction.
type PlayerUpdate struct {
	Name      *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Number    *int         `json:"number" validate:"omitempty,gte=0"`
	Position  *string      `json:"position" validate:"omitempty,min=1,max=50"`
	Birthdate *time.Time   `json:"birthdate"`
	ImageURL  *string      `json:"imageUrl" validate:"omitempty,max=500"`
	TeamID    *uint        `json:"teamId"`
	Stat      *StatsUpdate `json:"stat"`
}

type PlayerService struct {
	players PlayerStore
	teams   TeamLookup
}

func NewPlayerService(players PlayerStore, teams TeamLookup) *PlayerService {
	return &PlayerService{players: players, teams: teams}
}

func (s *PlayerService) GetAll(ctx context.Context, id auth.Identity) ([]models.Player, error) {
	if err := Authorize(id, ViewPlayers); err != nil {
		return nil, err
	}
	return s.players.FindAll(ctx)
}

func (s *PlayerService) GetByID(ctx context.Context, id auth.Identity, playerID uint) (*models.Player, error) {
	if err := Authorize(id, ViewPlayers); err != nil {
		return nil, err
	}
	player, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, storeError(err, "player with id %d not found", playerID)
	}
	return player, nil
}

func (s *PlayerService) Add(ctx context.Context, id auth.Identity, in PlayerInput) (*models.Player, error) {
	if err := Authorize(id, ManagePlayers); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := s.checkNumberFree(ctx, *in.Number, 0); err != nil {
		return nil, err
	}
	if err := checkTeam(ctx, s.teams, in.TeamID); err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:      in.Name,
		Number:    *in.Number,
		Position:  in.Position,
		Birthdate: in.Birthdate,
		ImageURL:  in.ImageURL,
		TeamID:    in.TeamID,
	}
	if err := s.players.Create(ctx, player); err != nil {
		return nil, storeError(err, "player could not be created")
	}
	return player, nil
}

func (s *PlayerService) Update(ctx context.Context, id auth.Identity, playerID uint, in PlayerUpdate) (*models.Player, error) {
	if err := Authorize(id, ManagePlayers); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	player, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, storeError(err, "player with id %d not found", playerID)
	}

	if in.Number != nil && *in.Number != player.Number {
		if err := s.checkNumberFree(ctx, *in.Number, player.ID); err != nil {
			return nil, err
		}
		player.Number = *in.Number
	}
	if in.TeamID != nil {
		if err := checkTeam(ctx, s.teams, in.TeamID); err != nil {
			return nil, err
		}
		player.TeamID = in.TeamID
	}
	if in.Name != nil {
		player.Name = *in.Name
	}
	if in.Position != nil {
		player.Position = *in.Position
	}
	if in.Birthdate != nil {
		player.Birthdate = *in.Birthdate
	}
	if in.ImageURL != nil {
		player.ImageURL = *in.ImageURL
	}

	var stats *models.Stats
	if in.Stat != nil && in.Stat.ID != 0 {
		stats = findStats(player.Stats, in.Stat.ID)
		if stats == nil {
			return nil, newError(ErrNotFound, "stats with id %d not found for player %d", in.Stat.ID, playerID)
		}
		in.Stat.apply(stats)
	}

	player.Stats = nil
	if err := s.players.Update(ctx, player, stats); err != nil {
		return nil, storeError(err, "player with id %d not found", playerID)
	}
	return s.players.FindByID(ctx, playerID)
}

func (s *PlayerService) Remove(ctx context.Context, id auth.Identity, playerID uint) error {
	if err := Authorize(id, RemovePlayers); err != nil {
		return err
	}
	return storeError(s.players.Delete(ctx, playerID), "player with id %d not found", playerID)
}

// checkNumberFree fails when another player than self wears number.
func (s *PlayerService) checkNumberFree(ctx context.Context, number int, self uint) error {
	existing, err := s.players.FindByNumber(ctx, number)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return newError(ErrConflict, "player with number %d already exists", number)
	}
	return nil
}

func findStats(lines []models.Stats, id uint) *models.Stats {
	for i := range lines {
		if lines[i].ID == id {
			line := lines[i]
			return &line
		}
	}
	return nil
}

// validate runs the request tag rules and reports failures as ErrInvalid.
func validate(v interface{}) error {
	if err := validation.Struct(v); err != nil {
		return &Error{Kind: ErrInvalid, Msg: err.Error()}
	}
	return nil
}
