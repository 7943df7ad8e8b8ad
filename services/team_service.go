// services/team_service.go - Team and league table business logic
package services

import (
	"context"
	"errors"

	"clubhouse/auth"
	"clubhouse/models"
	"clubhouse/repository"
)

type TeamStore interface {
	FindAll(ctx context.Context) ([]models.Team, error)
	Standings(ctx context.Context) ([]models.Team, error)
	FindByID(ctx context.Context, id uint) (*models.Team, error)
	FindByName(ctx context.Context, name string) (*models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uint) error
}

type TeamInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	GoalsFor int    `json:"goalsFor" validate:"gte=0"`
	GoalsAg  int    `json:"goalsAg" validate:"gte=0"`
	Points   int    `json:"points" validate:"gte=0"`
}

type TeamUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	GoalsFor *int    `json:"goalsFor" validate:"omitempty,gte=0"`
	GoalsAg  *int    `json:"goalsAg" validate:"omitempty,gte=0"`
	Points   *int    `json:"points" validate:"omitempty,gte=0"`
}

// Standing is one row of the league table.
type Standing struct {
	Position       int    `json:"position"`
	TeamID         uint   `json:"teamId"`
	Name           string `json:"name"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAg        int    `json:"goalsAg"`
	GoalDifference int    `json:"goalDifference"`
}

type TeamService struct {
	teams TeamStore
}

func NewTeamService(teams TeamStore) *TeamService {
	return &TeamService{teams: teams}
}

func (s *TeamService) GetAll(ctx context.Context, id auth.Identity) ([]models.Team, error) {
	if err := Authorize(id, ViewTeams); err != nil {
		return nil, err
	}
	return s.teams.FindAll(ctx)
}

// Standings returns the league table, best team first.
func (s *TeamService) Standings(ctx context.Context, id auth.Identity) ([]Standing, error) {
	if err := Authorize(id, ViewTeams); err != nil {
		return nil, err
	}
	teams, err := s.teams.Standings(ctx)
	if err != nil {
		return nil, err
	}

	table := make([]Standing, 0, len(teams))
	for i, t := range teams {
		table = append(table, Standing{
			Position:       i + 1,
			TeamID:         t.ID,
			Name:           t.Name,
			Points:         t.Points,
			GoalsFor:       t.GoalsFor,
			GoalsAg:        t.GoalsAg,
			GoalDifference: t.GoalDifference(),
		})
	}
	return table, nil
}

func (s *TeamService) Add(ctx context.Context, id auth.Identity, in TeamInput) (*models.Team, error) {
	if err := Authorize(id, ManageTeams); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:     in.Name,
		GoalsFor: in.GoalsFor,
		GoalsAg:  in.GoalsAg,
		Points:   in.Points,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, storeError(err, "team with name %s already exists", in.Name)
	}
	return team, nil
}

func (s *TeamService) Update(ctx context.Context, id auth.Identity, teamID uint, in TeamUpdate) (*models.Team, error) {
	if err := Authorize(id, ManageTeams); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, storeError(err, "team with id %d not found", teamID)
	}
	if in.Name != nil && *in.Name != team.Name {
		if err := s.checkNameFree(ctx, *in.Name, team.ID); err != nil {
			return nil, err
		}
		team.Name = *in.Name
	}
	if in.GoalsFor != nil {
		team.GoalsFor = *in.GoalsFor
	}
	if in.GoalsAg != nil {
		team.GoalsAg = *in.GoalsAg
	}
	if in.Points != nil {
		team.Points = *in.Points
	}

	if err := s.teams.Update(ctx, team); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "team with name %s already exists", team.Name)
		}
		return nil, storeError(err, "team with id %d not found", teamID)
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, id auth.Identity, teamID uint) error {
	if err := Authorize(id, ManageTeams); err != nil {
		return err
	}
	return storeError(s.teams.Delete(ctx, teamID), "team with id %d not found", teamID)
}

func (s *TeamService) checkNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.teams.FindByName(ctx, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return newError(ErrConflict, "team with name %s already exists", name)
	}
	return nil
}

// checkTeam verifies an optional team reference from a request body.
func checkTeam(ctx context.Context, teams TeamLookup, teamID *uint) error {
	if teamID == nil || teams == nil {
		return nil
	}
	if _, err := teams.FindByID(ctx, *teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrInvalid, "team with id %d does not exist", *teamID)
		}
		return err
	}
	return nil
}
